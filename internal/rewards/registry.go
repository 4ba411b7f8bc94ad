package rewards

import (
	"fmt"
	"strings"
)

// ModelConfig agrupa los parametros que necesitan algunos modelos.
type ModelConfig struct {
	TargetTemperature float64
	TargetPressure    float64
	TargetDensity     float64
}

// DefaultModels es el pipeline por defecto de la ronda.
var DefaultModels = []string{"energy", "rmsd"}

// ModelRegistry asocia el nombre configurable de cada modelo con su constructor.
var ModelRegistry = map[string]func(ModelConfig) RewardModel{
	"energy": func(ModelConfig) RewardModel { return EnergyRewardModel{} },
	"rmsd":   func(ModelConfig) RewardModel { return RMSDRewardModel{} },
	"thermo": func(cfg ModelConfig) RewardModel {
		return ThermoRewardModel{
			TargetTemperature: cfg.TargetTemperature,
			TargetPressure:    cfg.TargetPressure,
			TargetDensity:     cfg.TargetDensity,
		}
	},
}

// Lookup construye el modelo registrado con ese nombre.
func Lookup(name string, cfg ModelConfig) (RewardModel, error) {
	ctor, ok := ModelRegistry[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("reward model %q not found", name)
	}
	return ctor(cfg), nil
}

// BuildPipeline construye un pipeline con los modelos en el orden dado.
// Una lista vacia produce un pipeline vacio; es GetRewards quien lo rechaza.
func BuildPipeline(names []string, cfg ModelConfig) (*Pipeline, error) {
	models := make([]RewardModel, 0, len(names))
	for _, name := range names {
		m, err := Lookup(name, cfg)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return NewPipeline(models...), nil
}
