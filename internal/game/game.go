package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/minefield"
	"github.com/vancomm/minefield/internal/repository"
)

var (
	ErrInvalidParams = errors.New("invalid game parameters")
	ErrNotFound      = errors.New("game session not found")
	ErrForbidden     = errors.New("game session belongs to another player")
	ErrGameOver      = errors.New("game is over")
	ErrOutOfBounds   = errors.New("cell is out of bounds")
)

// Store persists game sessions. Implemented by [repository.Store].
type Store interface {
	CreateGameSession(ctx context.Context, params repository.CreateGameSessionParams) (*repository.GameSession, error)
	FetchGameSession(ctx context.Context, id int64) (*repository.GameSession, error)
	ListPlayerGameSessions(ctx context.Context, playerId int64) ([]repository.GameSession, error)
	ModifyGameSession(ctx context.Context, id int64, fn func(*repository.GameSession) error) (*repository.GameSession, error)
}

type Params struct {
	Rows      int `schema:"rows,required"`
	Columns   int `schema:"columns,required"`
	MineCount int `schema:"mine_count,required"`
}

type Service struct {
	log    logrus.FieldLogger
	store  Store
	limits config.Limits
	now    func() time.Time

	mu  sync.Mutex // guards rnd
	rnd *rand.Rand
}

func NewService(
	log logrus.FieldLogger, store Store, limits config.Limits, rnd *rand.Rand,
) *Service {
	return &Service{
		log:    log,
		store:  store,
		limits: limits,
		now:    func() time.Time { return time.Now().UTC() },
		rnd:    rnd,
	}
}

func (s *Service) validate(p Params) error {
	if p.Rows <= 0 || p.Rows > s.limits.MaxRows {
		return fmt.Errorf("%w: rows must be in [1, %d]", ErrInvalidParams, s.limits.MaxRows)
	}
	if p.Columns <= 0 || p.Columns > s.limits.MaxColumns {
		return fmt.Errorf("%w: columns must be in [1, %d]", ErrInvalidParams, s.limits.MaxColumns)
	}
	// keep at least one safe cell so placement stays cheap and the game
	// is not won on creation
	if p.MineCount < 0 || p.MineCount >= p.Rows*p.Columns {
		return fmt.Errorf(
			"%w: mine_count must be in [0, %d]", ErrInvalidParams, p.Rows*p.Columns-1,
		)
	}
	return nil
}

func (s *Service) newBoard(p Params) (*minefield.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return minefield.New(p.Rows, p.Columns, p.MineCount, s.rnd)
}

// NewGame creates a session for playerId, or an anonymous one when
// playerId is nil.
func (s *Service) NewGame(ctx context.Context, p Params, playerId *int64) (*Session, error) {
	if err := s.validate(p); err != nil {
		return nil, err
	}
	board, err := s.newBoard(p)
	if err != nil {
		return nil, err
	}
	state, err := board.Bytes()
	if err != nil {
		return nil, fmt.Errorf("unable to encode board: %w", err)
	}

	record, err := s.store.CreateGameSession(ctx, repository.CreateGameSessionParams{
		PlayerId:    playerId,
		RowCount:    board.Rows(),
		ColumnCount: board.Columns(),
		MineCount:   board.MineCount(),
		State:       state,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create game session: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"game_session_id": record.GameSessionId,
		"rows":            p.Rows,
		"columns":         p.Columns,
		"mine_count":      p.MineCount,
		"anonymous":       playerId == nil,
	}).Debug("created game session")

	return &Session{GameSession: *record, Board: board}, nil
}

func (s *Service) Fetch(ctx context.Context, id int64) (*Session, error) {
	record, err := s.store.FetchGameSession(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("unable to fetch game session: %w", err)
	}
	return decodeSession(record)
}

// modify runs move against the session's board under the session lock and
// stores the outcome.
func (s *Service) modify(
	ctx context.Context, id int64, playerId *int64, move func(*Session) error,
) (*Session, error) {
	var session *Session
	record, err := s.store.ModifyGameSession(ctx, id, func(r *repository.GameSession) error {
		if r.PlayerId != nil && (playerId == nil || *playerId != *r.PlayerId) {
			return ErrForbidden
		}
		var err error
		session, err = decodeSession(r)
		if err != nil {
			return err
		}
		if session.Over() {
			return ErrGameOver
		}
		if err := move(session); err != nil {
			return err
		}

		r.Dead = session.Board.Lost() || session.Forfeited
		r.Won = session.Board.Won()
		r.Forfeited = session.Forfeited
		if r.Dead || r.Won {
			now := s.now()
			r.EndedAt = &now
		}
		r.State, err = session.Board.Bytes()
		if err != nil {
			return fmt.Errorf("unable to encode board: %w", err)
		}
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	session.GameSession = *record
	return session, nil
}

func (s *Service) Reveal(
	ctx context.Context, id int64, playerId *int64, row, col int,
) (*Session, error) {
	return s.modify(ctx, id, playerId, func(session *Session) error {
		if !session.Board.InBounds(row, col) {
			return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
		}
		revealed := session.Board.Reveal(row, col)
		s.log.WithFields(logrus.Fields{
			"game_session_id": session.GameSessionId,
			"row":             row,
			"col":             col,
			"revealed":        revealed,
			"lost":            session.Board.Lost(),
			"won":             session.Board.Won(),
		}).Debug("revealed cell")
		return nil
	})
}

// Forfeit ends the game as lost. The board itself is left untouched.
func (s *Service) Forfeit(ctx context.Context, id int64, playerId *int64) (*Session, error) {
	return s.modify(ctx, id, playerId, func(session *Session) error {
		session.Forfeited = true
		s.log.WithField("game_session_id", session.GameSessionId).Debug("forfeited")
		return nil
	})
}

func (s *Service) PlayerGames(ctx context.Context, playerId int64) ([]Session, error) {
	records, err := s.store.ListPlayerGameSessions(ctx, playerId)
	if err != nil {
		return nil, fmt.Errorf("unable to list player game sessions: %w", err)
	}
	sessions := make([]Session, 0, len(records))
	for i := range records {
		session, err := decodeSession(&records[i])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, nil
}
