package rewards

import "folding-rewards/internal/common"

// Pipeline ejecuta una lista ordenada de modelos sobre la misma instantanea de datos.
type Pipeline struct {
	models []RewardModel
}

func NewPipeline(models ...RewardModel) *Pipeline {
	return &Pipeline{models: append([]RewardModel(nil), models...)}
}

// Len es el numero de modelos configurados.
func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	return len(p.models)
}

// Names devuelve los nombres de los modelos en orden de ejecucion.
func (p *Pipeline) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, len(p.models))
	for i, m := range p.models {
		names[i] = m.Name()
	}
	return names
}

// Run devuelve un evento por modelo, en el mismo orden que los modelos.
// TaskData y Dataset son de solo lectura, asi que ningun modelo puede
// alterar lo que ven los siguientes.
func (p *Pipeline) Run(data common.TaskData) []common.RewardEvent {
	events := make([]common.RewardEvent, 0, p.Len())
	if p == nil {
		return events
	}
	for _, m := range p.models {
		event := m.Apply(data)
		if event.Model == "" {
			event.Model = m.Name()
		}
		events = append(events, event)
	}
	return events
}
