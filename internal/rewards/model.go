// Package rewards contiene los modelos de recompensa, el pipeline que los
// ejecuta sobre una misma instantanea de datos y el agregador que combina
// sus eventos en un unico vector por worker.
package rewards

import (
	"sort"

	"folding-rewards/internal/common"
)

// RewardModel calcula un criterio de puntuacion para todos los workers de una ronda.
// Apply debe ser una funcion pura y determinista de data.
type RewardModel interface {
	Name() string
	Apply(data common.TaskData) common.RewardEvent
}

// metricFn extrae la metrica de un worker; menor es mejor. ok=false degrada al worker.
type metricFn func(d common.Dataset) (value float64, ok bool)

// scoreCriterion puntua un criterio para todo el roster y devuelve las metricas validas.
//   - NoData            -> RewardFloor
//   - metrica no usable -> RewardDegraded
//   - metrica valida    -> ranking en [RewardValidMin, RewardMax]
func scoreCriterion(event common.RewardEvent, criterion string, data common.TaskData, metric metricFn) map[common.WorkerID]float64 {
	values := make(map[common.WorkerID]float64)
	for _, uid := range data.Roster() {
		d := data.Get(uid)
		if !d.Valid() {
			event.Set(criterion, uid, common.RewardFloor)
			continue
		}
		v, ok := metric(d)
		if !ok {
			event.Set(criterion, uid, common.RewardDegraded)
			continue
		}
		values[uid] = v
	}
	for uid, r := range rankRewards(values) {
		event.Set(criterion, uid, r)
	}
	return values
}

// rankRewards ordena las metricas de menor a mayor y reparte el rango
// [RewardValidMin, RewardMax] linealmente entre los valores distintos.
// Valores iguales comparten recompensa.
func rankRewards(values map[common.WorkerID]float64) map[common.WorkerID]float64 {
	distinct := make([]float64, 0, len(values))
	seen := make(map[float64]bool, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	sort.Float64s(distinct)

	rewards := make(map[common.WorkerID]float64, len(values))
	steps := len(distinct) - 1
	for uid, v := range values {
		if steps == 0 {
			rewards[uid] = common.RewardMax
			continue
		}
		rank := sort.SearchFloat64s(distinct, v)
		rewards[uid] = common.RewardMax - float64(rank)*(common.RewardMax-common.RewardValidMin)/float64(steps)
	}
	return rewards
}

// bestWorker devuelve el worker con la menor metrica; los empates se resuelven por orden de roster.
func bestWorker(roster []common.WorkerID, values map[common.WorkerID]float64) (common.WorkerID, bool) {
	var best common.WorkerID
	found := false
	for _, uid := range roster {
		v, ok := values[uid]
		if !ok {
			continue
		}
		if !found || v < values[best] {
			best, found = uid, true
		}
	}
	return best, found
}
