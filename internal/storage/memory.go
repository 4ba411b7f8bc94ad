package storage

import (
	"sync"
	"time"

	"folding-rewards/internal/common"
)

// RoundResult es el resultado de una ronda de puntuacion tal como lo ve la API.
type RoundResult struct {
	RoundID  string              `json:"round_id"`
	PDBID    string              `json:"pdb_id"`
	UIDs     []common.WorkerID   `json:"uids"`
	Rewards  common.RewardVector `json:"rewards"`
	Events   common.Diagnostics  `json:"events"`
	Error    string              `json:"error,omitempty"`
	ScoredAt time.Time           `json:"scored_at"`
}

// RoundStore guarda en memoria las ultimas rondas para consultarlas por ID.
// No es persistencia: al superar Limit se descarta la ronda mas antigua.
type RoundStore struct {
	mu     sync.RWMutex
	rounds map[string]RoundResult
	order  []string // Orden de llegada, para descartar la mas antigua
	Limit  int
}

func NewRoundStore(limit int) *RoundStore {
	if limit <= 0 {
		limit = 1
	}
	return &RoundStore{
		rounds: make(map[string]RoundResult),
		order:  make([]string, 0, limit),
		Limit:  limit,
	}
}

func (s *RoundStore) SaveRound(r RoundResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rounds[r.RoundID]; !exists {
		s.order = append(s.order, r.RoundID)
	}
	s.rounds[r.RoundID] = r

	for len(s.order) > s.Limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.rounds, oldest)
	}
}

func (s *RoundStore) GetRound(roundID string) (RoundResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rounds[roundID]
	return r, ok
}

// RecentRounds devuelve los IDs guardados, del mas antiguo al mas reciente.
func (s *RoundStore) RecentRounds() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}
