package rewards

import (
	"math"

	"folding-rewards/internal/common"
)

// ThermoRewardModel mide la estabilidad termodinamica: la desviacion media
// absoluta de temperatura, presion y densidad respecto a sus objetivos.
type ThermoRewardModel struct {
	TargetTemperature float64 // K
	TargetPressure    float64 // bar
	TargetDensity     float64 // kg/m^3
}

func (ThermoRewardModel) Name() string { return "thermo" }

func (m ThermoRewardModel) Apply(data common.TaskData) common.RewardEvent {
	event := common.NewRewardEvent(m.Name())
	targets := []struct {
		quantity string
		target   float64
	}{
		{common.QuantityTemperature, m.TargetTemperature},
		{common.QuantityPressure, m.TargetPressure},
		{common.QuantityDensity, m.TargetDensity},
	}
	for _, tg := range targets {
		deviations := scoreCriterion(event, tg.quantity, data, meanAbsDeviation(tg.quantity, tg.target))
		event.Extra[tg.quantity+"_deviation"] = deviations
	}
	return event
}

func meanAbsDeviation(quantity string, target float64) metricFn {
	return func(d common.Dataset) (float64, bool) {
		values, ok := d.Series(quantity)
		if !ok || len(values) == 0 {
			return 0, false
		}
		sum := 0.0
		for _, v := range values {
			sum += math.Abs(v - target)
		}
		dev := sum / float64(len(values))
		if math.IsNaN(dev) || math.IsInf(dev, 0) {
			return 0, false
		}
		return dev, true
	}
}
