package game

import (
	"fmt"

	"github.com/vancomm/minefield/internal/minefield"
	"github.com/vancomm/minefield/internal/repository"
)

// Session is a stored game session with its decoded board.
type Session struct {
	repository.GameSession
	Board *minefield.Board
}

func decodeSession(r *repository.GameSession) (*Session, error) {
	board, err := minefield.Decode(r.State)
	if err != nil {
		return nil, fmt.Errorf(
			"game session %d holds an invalid board: %w", r.GameSessionId, err,
		)
	}
	return &Session{GameSession: *r, Board: board}, nil
}

func (s *Session) Over() bool {
	return s.Forfeited || s.Board.Over()
}

// View is what the player may see: everything once the game is over.
func (s *Session) View() minefield.Grid {
	return s.Board.View(s.Over())
}
