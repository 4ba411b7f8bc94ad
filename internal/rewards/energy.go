package rewards

import "folding-rewards/internal/common"

const (
	CriterionFinalEnergy = "final_energy"
	CriterionProdEnergy  = "prod_energy"
)

// EnergyRewardModel premia la menor energia potencial: la ultima muestra de la
// minimizacion y la media de la fase de produccion.
type EnergyRewardModel struct{}

func (EnergyRewardModel) Name() string { return "energy" }

func (m EnergyRewardModel) Apply(data common.TaskData) common.RewardEvent {
	event := common.NewRewardEvent(m.Name())

	finals := scoreCriterion(event, CriterionFinalEnergy, data, func(d common.Dataset) (float64, bool) {
		return d.Last(common.QuantityEnergy)
	})
	prods := scoreCriterion(event, CriterionProdEnergy, data, func(d common.Dataset) (float64, bool) {
		return d.Mean(common.QuantityProdEnergy)
	})

	event.Extra["energies"] = finals
	event.Extra["prod_energies"] = prods
	if uid, ok := bestWorker(data.Roster(), finals); ok {
		event.Extra["best_uid"] = uid
	}
	return event
}
