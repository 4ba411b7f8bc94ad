package common

import (
	"sort"
	"time"
)

// WorkerID es el uid del worker dentro de la red.
type WorkerID int

// WorkerResponse es la respuesta de un worker a una tarea, tal como la entrega el transporte.
type WorkerResponse struct {
	UID           WorkerID          `json:"uid"`
	Hotkey        string            `json:"hotkey"`         // Identidad de red, se usa para el directorio de staging
	StatusCode    int               `json:"status_code"`    // 200 = exito
	StatusMessage string            `json:"status_message"` // Solo diagnostico
	MDOutput      map[string]string `json:"md_output"`      // Nombre de archivo -> contenido
	ProcessTime   float64           `json:"process_time"`   // Segundos, solo diagnostico
	ReceivedAt    time.Time         `json:"received_at"`
}

// Succeeded indica si el transporte clasifico la respuesta como exitosa.
func (r WorkerResponse) Succeeded() bool {
	return r.StatusCode == StatusCodeSuccess
}

// PayloadSizes devuelve el tamaño en bytes (UTF-8) de cada archivo de salida.
func (r WorkerResponse) PayloadSizes() map[string]int {
	sizes := make(map[string]int, len(r.MDOutput))
	for name, content := range r.MDOutput {
		sizes[name] = len(content)
	}
	return sizes
}

// FileNames devuelve los nombres de archivo ordenados.
func (r WorkerResponse) FileNames() []string {
	names := make([]string, 0, len(r.MDOutput))
	for name := range r.MDOutput {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
