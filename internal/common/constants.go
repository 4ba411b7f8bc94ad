package common

import "fmt"

// --- Constantes del pipeline de recompensas ---

// Nombres de las magnitudes fisicas que produce el extractor (Dataset.Series)
const (
	QuantityEnergy      = "energy"      // Energia potencial de la minimizacion
	QuantityTemperature = "temperature" // T-rest
	QuantityPressure    = "pressure"
	QuantityDensity     = "density"
	QuantityProdEnergy  = "prod_energy" // Energia potencial de la fase de produccion
	QuantityRMSD        = "rmsd"        // Desviacion estructural respecto a la referencia (nm)
)

// Codigo de estado que el transporte entrega cuando el worker respondio bien
const StatusCodeSuccess = 200

// Escala de recompensas compartida por todos los modelos
const (
	RewardFloor    = 0.0  // Worker sin datos (fallo de transporte o extraccion)
	RewardDegraded = 0.05 // Worker con datos pero sin serie utilizable para el criterio
	RewardValidMin = 0.1  // Peor recompensa posible para un worker con datos validos
	RewardMax      = 1.0
)

// Estados terminales de un worker dentro de una ronda
type WorkerState string

const (
	WorkerStateReceived  WorkerState = "received"
	WorkerStateFailed    WorkerState = "failed"
	WorkerStateStaged    WorkerState = "staged"
	WorkerStateExtracted WorkerState = "extracted"
	WorkerStateEmpty     WorkerState = "empty" // Extraido, pero sin muestras utilizables
)

// EmptyDataPolicy decide como se puntua un worker que respondio con exito
// pero cuyo dataset no tiene ninguna muestra utilizable.
type EmptyDataPolicy string

const (
	// EmptyAsFailure puntua al worker igual que un fallo de transporte (RewardFloor).
	EmptyAsFailure EmptyDataPolicy = "failure"
	// EmptyAsDegraded conserva el dataset vacio: cada modelo le asigna RewardDegraded.
	EmptyAsDegraded EmptyDataPolicy = "degraded"
)

// ParseEmptyDataPolicy acepta "failure" o "degraded"; cualquier otro valor es un error.
func ParseEmptyDataPolicy(s string) (EmptyDataPolicy, error) {
	switch EmptyDataPolicy(s) {
	case EmptyAsFailure, EmptyAsDegraded:
		return EmptyDataPolicy(s), nil
	case "":
		return EmptyAsFailure, nil
	}
	return "", fmt.Errorf("politica de datos vacios desconocida: %q", s)
}
