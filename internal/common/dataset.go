package common

import (
	"math"
	"sort"
)

// Dataset es la tabla de magnitudes fisicas extraida de la salida de un worker.
// Es una variante etiquetada: NoData() (el worker no produjo nada) o un dataset
// valido, que puede tener series vacias. Es inmutable; los accesores devuelven copias.
type Dataset struct {
	valid  bool
	series map[string][]float64
}

// NoData es el centinela de "worker sin datos".
func NoData() Dataset {
	return Dataset{}
}

// NewDataset crea un dataset valido copiando las series recibidas.
func NewDataset(series map[string][]float64) Dataset {
	d := Dataset{valid: true, series: make(map[string][]float64, len(series))}
	for name, values := range series {
		d.series[name] = append([]float64(nil), values...)
	}
	return d
}

// Valid es false solo para NoData().
func (d Dataset) Valid() bool { return d.valid }

// Series devuelve una copia de la serie pedida y si existe.
func (d Dataset) Series(name string) ([]float64, bool) {
	values, ok := d.series[name]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), values...), true
}

// Quantities devuelve los nombres de las series en orden.
func (d Dataset) Quantities() []string {
	names := make([]string, 0, len(d.series))
	for name := range d.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Usable indica si el dataset es valido y tiene al menos una serie con muestras.
func (d Dataset) Usable() bool {
	if !d.valid {
		return false
	}
	for _, values := range d.series {
		if len(values) > 0 {
			return true
		}
	}
	return false
}

// Last devuelve la ultima muestra finita de la serie. ok es false si la serie
// falta, esta vacia o su ultima muestra es NaN/Inf.
func (d Dataset) Last(name string) (float64, bool) {
	values := d.series[name]
	if len(values) == 0 {
		return 0, false
	}
	v := values[len(values)-1]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Mean devuelve la media de la serie; ok es false si falta, esta vacia o no es finita.
func (d Dataset) Mean(name string) (float64, bool) {
	values := d.series[name]
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0, false
	}
	return mean, true
}

// TaskData es la instantanea de solo lectura que recibe cada modelo de recompensa:
// el roster canonico de la ronda y un Dataset por worker.
type TaskData struct {
	roster   []WorkerID
	datasets map[WorkerID]Dataset
}

// NewTaskData copia el roster; los workers sin entrada en datasets se leen como NoData().
func NewTaskData(roster []WorkerID, datasets map[WorkerID]Dataset) TaskData {
	td := TaskData{
		roster:   append([]WorkerID(nil), roster...),
		datasets: make(map[WorkerID]Dataset, len(roster)),
	}
	for _, uid := range roster {
		if d, ok := datasets[uid]; ok {
			td.datasets[uid] = d
		} else {
			td.datasets[uid] = NoData()
		}
	}
	return td
}

// Roster devuelve una copia del orden canonico de workers.
func (t TaskData) Roster() []WorkerID {
	return append([]WorkerID(nil), t.roster...)
}

// Len es el numero de workers de la ronda.
func (t TaskData) Len() int { return len(t.roster) }

// Get devuelve el dataset del worker (NoData() si no pertenece al roster).
func (t TaskData) Get(uid WorkerID) Dataset {
	return t.datasets[uid]
}
