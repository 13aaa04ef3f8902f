// Package gametest provides an in-memory [game.Store] for tests.
package gametest

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/vancomm/minefield/internal/repository"
)

type Store struct {
	mu       sync.Mutex
	nextId   int64
	sessions map[int64]repository.GameSession
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]repository.GameSession)}
}

func (s *Store) CreateGameSession(
	_ context.Context, params repository.CreateGameSessionParams,
) (*repository.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	now := time.Now().UTC()
	session := repository.GameSession{
		GameSessionId: s.nextId,
		PlayerId:      params.PlayerId,
		RowCount:      params.RowCount,
		ColumnCount:   params.ColumnCount,
		MineCount:     params.MineCount,
		Dead:          params.Dead,
		Won:           params.Won,
		State:         slices.Clone(params.State),
		StartedAt:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.sessions[session.GameSessionId] = session
	return &session, nil
}

// Put stores session as is, replacing any session with the same id.
func (s *Store) Put(session repository.GameSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.GameSessionId] = session
	s.nextId = max(s.nextId, session.GameSessionId)
}

func (s *Store) FetchGameSession(_ context.Context, id int64) (*repository.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &session, nil
}

func (s *Store) ListPlayerGameSessions(_ context.Context, playerId int64) ([]repository.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sessions []repository.GameSession
	for _, session := range s.sessions {
		if session.PlayerId != nil && *session.PlayerId == playerId {
			sessions = append(sessions, session)
		}
	}
	slices.SortFunc(sessions, func(a, b repository.GameSession) int {
		return cmp.Compare(b.GameSessionId, a.GameSessionId)
	})
	return sessions, nil
}

func (s *Store) ModifyGameSession(
	_ context.Context, id int64, fn func(*repository.GameSession) error,
) (*repository.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	session.State = slices.Clone(session.State)
	if err := fn(&session); err != nil {
		return nil, err
	}
	session.UpdatedAt = time.Now().UTC()
	s.sessions[id] = session
	return &session, nil
}
