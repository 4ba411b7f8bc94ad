package rewards

import (
	"fmt"
	"math"

	"folding-rewards/internal/common"
)

// Aggregator combina los eventos de todos los modelos en un RewardVector.
// Sin pesos es la media aritmetica por worker; Weights permite ponderar
// modelos cuyas escalas o importancia difieren (los modelos ausentes pesan 1).
type Aggregator struct {
	Weights map[string]float64
}

// Aggregate devuelve una recompensa por worker del roster, en el mismo orden.
//
// Los campos de diagnostico se aplanan como "<modelo>.<campo>". Si dos eventos
// del mismo modelo emiten el mismo campo, gana el ultimo.
func (a *Aggregator) Aggregate(roster []common.WorkerID, events []common.RewardEvent) (common.RewardVector, common.Diagnostics, error) {
	if len(events) == 0 {
		return nil, nil, common.ErrNoRewardModels
	}
	for _, event := range events {
		if err := validateEvent(roster, event); err != nil {
			return nil, nil, err
		}
	}

	sums := make([]float64, len(roster))
	totalWeight := 0.0
	diag := make(common.Diagnostics)

	for _, event := range events {
		w := a.weight(event.Model)
		totalWeight += w

		combined := make([]float64, len(roster))
		for i, uid := range roster {
			r, _ := event.RewardFor(uid)
			combined[i] = r
			sums[i] += w * r
		}

		diag[event.Model+".reward"] = combined
		for _, criterion := range event.Criteria() {
			aligned := make([]float64, len(roster))
			for i, uid := range roster {
				aligned[i] = event.Rewards[criterion][uid]
			}
			diag[event.Model+"."+criterion] = aligned
		}
		for field, value := range event.Extra {
			diag[event.Model+"."+field] = value
		}
	}

	if totalWeight <= 0 {
		return nil, nil, fmt.Errorf("aggregation weights sum to %v", totalWeight)
	}
	rewards := make(common.RewardVector, len(roster))
	for i := range sums {
		rewards[i] = sums[i] / totalWeight
	}
	return rewards, diag, nil
}

func (a *Aggregator) weight(model string) float64 {
	if a == nil || a.Weights == nil {
		return 1
	}
	if w, ok := a.Weights[model]; ok {
		return w
	}
	return 1
}

// validateEvent exige que cada criterio cubra exactamente el roster con valores finitos.
// Con roster vacio un evento sin criterios es valido.
func validateEvent(roster []common.WorkerID, event common.RewardEvent) error {
	criteria := event.Criteria()
	if len(criteria) == 0 && len(roster) > 0 {
		return common.Malformed("model %q produced no criteria", event.Model)
	}
	for _, criterion := range criteria {
		rewards := event.Rewards[criterion]
		if len(rewards) != len(roster) {
			return common.Malformed("model %q criterion %q covers %d workers, roster has %d",
				event.Model, criterion, len(rewards), len(roster))
		}
		for _, uid := range roster {
			r, ok := rewards[uid]
			if !ok {
				return common.Malformed("model %q criterion %q is missing uid %d", event.Model, criterion, uid)
			}
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return common.Malformed("model %q criterion %q has non-finite reward for uid %d", event.Model, criterion, uid)
			}
		}
	}
	return nil
}
