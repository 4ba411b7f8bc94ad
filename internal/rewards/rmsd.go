package rewards

import "folding-rewards/internal/common"

const CriterionRMSD = "rmsd"

// RMSDRewardModel premia la menor desviacion estructural respecto a la referencia.
type RMSDRewardModel struct{}

func (RMSDRewardModel) Name() string { return "rmsd" }

func (m RMSDRewardModel) Apply(data common.TaskData) common.RewardEvent {
	event := common.NewRewardEvent(m.Name())
	values := scoreCriterion(event, CriterionRMSD, data, func(d common.Dataset) (float64, bool) {
		v, ok := d.Last(common.QuantityRMSD)
		if !ok || v < 0 {
			return 0, false
		}
		return v, true
	})
	event.Extra["rmsd_values"] = values
	return event
}
