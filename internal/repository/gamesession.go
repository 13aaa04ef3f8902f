package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type GameSession struct {
	GameSessionId int64      `db:"game_session_id" json:"game_session_id"`
	PlayerId      *int64     `db:"player_id" json:"player_id,omitempty"`
	RowCount      int        `db:"row_count" json:"row_count"`
	ColumnCount   int        `db:"column_count" json:"column_count"`
	MineCount     int        `db:"mine_count" json:"mine_count"`
	Dead          bool       `db:"dead" json:"dead"`
	Won           bool       `db:"won" json:"won"`
	Forfeited     bool       `db:"forfeited" json:"forfeited"`
	State         []byte     `db:"state" json:"-"`
	StartedAt     time.Time  `db:"started_at" json:"started_at"`
	EndedAt       *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"-"`
	UpdatedAt     time.Time  `db:"updated_at" json:"-"`
}

type CreateGameSessionParams struct {
	PlayerId    *int64
	RowCount    int
	ColumnCount int
	MineCount   int
	Dead        bool
	Won         bool
	State       []byte
}

func (q *Queries) CreateGameSession(
	ctx context.Context, params CreateGameSessionParams,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, row_count, column_count, mine_count, dead, won, state
		)
		VALUES (
			@player_id, @row_count, @column_count, @mine_count, @dead, @won, @state
		)
		RETURNING *`,
		pgx.NamedArgs{
			"player_id":    params.PlayerId,
			"row_count":    params.RowCount,
			"column_count": params.ColumnCount,
			"mine_count":   params.MineCount,
			"dead":         params.Dead,
			"won":          params.Won,
			"state":        params.State,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q *Queries) FetchGameSession(ctx context.Context, id int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM game_session WHERE game_session_id = $1", id,
	)
	session, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
	return session, notFound(err)
}

func (q *Queries) lockGameSession(ctx context.Context, id int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM game_session WHERE game_session_id = $1 FOR UPDATE", id,
	)
	session, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
	return session, notFound(err)
}

func (q *Queries) ListPlayerGameSessions(ctx context.Context, playerId int64) ([]GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT * FROM game_session
		WHERE player_id = $1
		ORDER BY started_at DESC`,
		playerId,
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[GameSession])
}

type UpdateGameSessionParams struct {
	Dead      *bool
	Won       *bool
	Forfeited *bool
	EndedAt   *time.Time
	State     *[]byte
}

func (p UpdateGameSessionParams) SetClause() (string, pgx.NamedArgs) {
	parts := []string{"updated_at = now()"}
	args := pgx.NamedArgs{}

	if p.Dead != nil {
		parts = append(parts, "dead = @dead")
		args["dead"] = *p.Dead
	}
	if p.Won != nil {
		parts = append(parts, "won = @won")
		args["won"] = *p.Won
	}
	if p.Forfeited != nil {
		parts = append(parts, "forfeited = @forfeited")
		args["forfeited"] = *p.Forfeited
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q *Queries) UpdateGameSession(
	ctx context.Context, id int64, params UpdateGameSessionParams,
) (*GameSession, error) {
	setClause, args := params.SetClause()
	args["game_session_id"] = id
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_session SET "+setClause+
			" WHERE game_session_id = @game_session_id RETURNING *",
		args,
	)
	session, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
	return session, notFound(err)
}

// ModifyGameSession locks the session row, lets fn change it and stores the
// result. Concurrent modifications of one session are serialized.
func (s *Store) ModifyGameSession(
	ctx context.Context, id int64, fn func(*GameSession) error,
) (*GameSession, error) {
	var updated *GameSession
	err := s.InTx(ctx, func(q *Queries) error {
		session, err := q.lockGameSession(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(session); err != nil {
			return err
		}
		updated, err = q.UpdateGameSession(ctx, id, UpdateGameSessionParams{
			Dead:      &session.Dead,
			Won:       &session.Won,
			Forfeited: &session.Forfeited,
			EndedAt:   session.EndedAt,
			State:     &session.State,
		})
		if err != nil {
			return fmt.Errorf("unable to update game session: %w", err)
		}
		return nil
	})
	return updated, err
}
