package handlers

import (
	"strconv"

	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/minefield"
)

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

type GameSessionDTO struct {
	GameSessionId string         `json:"game_session_id"`
	Grid          minefield.Grid `json:"grid"`
	Rows          int            `json:"rows"`
	Columns       int            `json:"columns"`
	MineCount     int            `json:"mine_count"`
	Dead          bool           `json:"dead"`
	Won           bool           `json:"won"`
	Forfeited     bool           `json:"forfeited"`
	StartedAt     int64          `json:"started_at"`
	EndedAt       *int64         `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(s *game.Session) *GameSessionDTO {
	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId: strconv.FormatInt(s.GameSessionId, 10),
		Grid:          s.View(),
		Rows:          s.Board.Rows(),
		Columns:       s.Board.Columns(),
		MineCount:     s.Board.MineCount(),
		Dead:          s.Dead,
		Won:           s.Won,
		Forfeited:     s.Forfeited,
		StartedAt:     s.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
}
