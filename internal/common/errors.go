package common

import (
	"errors"
	"fmt"
)

// Taxonomia de errores del pipeline. Los fallos por worker (transporte,
// staging, extraccion) se recuperan localmente; los estructurales se
// devuelven al llamador.
var (
	ErrTransportFailure     = errors.New("transport failure")
	ErrStagingFailure       = errors.New("staging failure")
	ErrExtractionFailure    = errors.New("extraction failure")
	ErrMalformedRewardEvent = errors.New("malformed reward event")
	ErrNoRewardModels       = errors.New("no reward models configured")
	ErrInvalidRoster        = errors.New("invalid worker roster")
)

// RewardError adjunta contexto (worker, modelo) a uno de los errores base.
type RewardError struct {
	Kind error
	UID  *WorkerID
	Msg  string
}

func (e *RewardError) Error() string {
	if e == nil {
		return ""
	}
	prefix := e.Kind.Error()
	if e.UID != nil {
		prefix = fmt.Sprintf("%s (uid %d)", prefix, *e.UID)
	}
	if e.Msg == "" {
		return prefix
	}
	return fmt.Sprintf("%s: %s", prefix, e.Msg)
}

func (e *RewardError) Unwrap() error { return e.Kind }

// WorkerError construye un error de un worker concreto.
func WorkerError(kind error, uid WorkerID, format string, args ...any) error {
	return &RewardError{Kind: kind, UID: &uid, Msg: fmt.Sprintf(format, args...)}
}

// TaskError construye un error de la tarea, sin worker asociado.
func TaskError(kind error, format string, args ...any) error {
	return &RewardError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Malformed devuelve un ErrMalformedRewardEvent con mensaje.
func Malformed(format string, args ...any) error {
	return &RewardError{Kind: ErrMalformedRewardEvent, Msg: fmt.Sprintf(format, args...)}
}

// InvalidRoster devuelve un ErrInvalidRoster con mensaje.
func InvalidRoster(format string, args ...any) error {
	return &RewardError{Kind: ErrInvalidRoster, Msg: fmt.Sprintf(format, args...)}
}
