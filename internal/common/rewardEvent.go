package common

import "sort"

// RewardEvent es la salida de un modelo de recompensa para todos los workers de una ronda.
// Invariante: cada criterio cubre exactamente el mismo conjunto de workers (el roster).
type RewardEvent struct {
	Model   string                          `json:"model"`
	Rewards map[string]map[WorkerID]float64 `json:"rewards"` // criterio -> uid -> recompensa
	Extra   map[string]any                  `json:"extra,omitempty"`
}

// NewRewardEvent crea un evento vacio para el modelo.
func NewRewardEvent(model string) RewardEvent {
	return RewardEvent{
		Model:   model,
		Rewards: make(map[string]map[WorkerID]float64),
		Extra:   make(map[string]any),
	}
}

// Set registra la recompensa de un worker para un criterio.
func (e RewardEvent) Set(criterion string, uid WorkerID, reward float64) {
	m, ok := e.Rewards[criterion]
	if !ok {
		m = make(map[WorkerID]float64)
		e.Rewards[criterion] = m
	}
	m[uid] = reward
}

// Criteria devuelve los criterios del evento en orden.
func (e RewardEvent) Criteria() []string {
	names := make([]string, 0, len(e.Rewards))
	for name := range e.Rewards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RewardFor es la media de las recompensas del worker sobre los criterios del evento.
// ok es false si algun criterio no cubre al worker o el evento no tiene criterios.
func (e RewardEvent) RewardFor(uid WorkerID) (float64, bool) {
	criteria := e.Criteria()
	if len(criteria) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, c := range criteria {
		r, ok := e.Rewards[c][uid]
		if !ok {
			return 0, false
		}
		sum += r
	}
	return sum / float64(len(criteria)), true
}

// RewardVector son las puntuaciones finales, alineadas con el roster.
type RewardVector []float64

// Diagnostics es el registro plano de la ronda. Las claves de los eventos
// tienen la forma "<modelo>.<campo>".
type Diagnostics map[string]any
