// Package validator puntua las respuestas de los workers de una ronda:
// valida, deja los archivos en disco, extrae las series y ejecuta el
// pipeline de recompensas y el agregador.
package validator

import (
	"errors"
	"path/filepath"

	"go.uber.org/zap"

	"folding-rewards/internal/common"
	"folding-rewards/internal/extractor"
	"folding-rewards/internal/rewards"
)

const DefaultStagingPrefixLen = 8

var errNoDataset = errors.New("el extractor no devolvio dataset")

// Validator orquesta una ronda. Todo el I/O pasa por Stager, Extractor y Logger.
type Validator struct {
	Pipeline    *rewards.Pipeline
	Aggregator  *rewards.Aggregator
	Extractor   extractor.Extractor
	Stager      Stager
	Logger      *zap.Logger
	EmptyPolicy common.EmptyDataPolicy
	PrefixLen   int
}

// NewValidator crea un validador con staging en disco, media aritmetica y
// la politica de datos vacios por defecto.
func NewValidator(pipeline *rewards.Pipeline, ext extractor.Extractor, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		Pipeline:    pipeline,
		Aggregator:  &rewards.Aggregator{},
		Extractor:   ext,
		Stager:      DirStager{},
		Logger:      logger.Named("validator"),
		EmptyPolicy: common.EmptyAsFailure,
		PrefixLen:   DefaultStagingPrefixLen,
	}
}

// workerOutcome es el estado terminal de un worker antes de ejecutar el pipeline.
type workerOutcome struct {
	data  common.Dataset
	state common.WorkerState
	err   error
}

// GetRewards devuelve una recompensa por cada uid, en el mismo orden.
// Los fallos de un worker (transporte, staging, extraccion) lo dejan sin
// datos y la ronda continua; los errores estructurales (roster invalido,
// pipeline vacio, evento malformado) abortan la ronda sin vector parcial.
func (v *Validator) GetRewards(task common.Task, responses []common.WorkerResponse, uids []common.WorkerID) (common.RewardVector, common.Diagnostics, error) {
	if v.Pipeline.Len() == 0 {
		return nil, nil, common.ErrNoRewardModels
	}
	if err := validateRoster(responses, uids); err != nil {
		return nil, nil, err
	}

	log := v.logger().With(zap.String("task", task.ID), zap.String("pdb_id", task.PDBID))
	if len(task.ReferenceFiles) > 0 {
		if err := v.Stager.SaveFiles(task.ReferenceFiles, task.WorkDir); err != nil {
			return nil, nil, common.TaskError(common.ErrStagingFailure, "archivos de referencia: %v", err)
		}
	}

	datasets := make(map[common.WorkerID]common.Dataset, len(uids))
	states := make(map[common.WorkerID]common.WorkerState, len(uids))
	payload := make(map[common.WorkerID]map[string]int, len(uids))
	failures := make(map[common.WorkerID]string)
	namer := newStagingNamer(v.prefixLen())

	// Secuencial y en orden de roster: cada worker tiene su propio subdirectorio
	for i, uid := range uids {
		resp := responses[i]
		payload[uid] = resp.PayloadSizes()
		log.Info("respuesta recibida",
			zap.Int("uid", int(uid)),
			zap.String("hotkey", resp.Hotkey),
			zap.Int("status_code", resp.StatusCode),
			zap.Float64("process_time", resp.ProcessTime),
			zap.Any("md_output", payload[uid]))

		out := v.prepareWorker(task, uid, resp, namer, log)
		datasets[uid] = out.data
		states[uid] = out.state
		if out.err != nil {
			failures[uid] = out.err.Error()
			log.Error("worker sin datos", zap.Int("uid", int(uid)), zap.Error(out.err))
		}
	}

	data := common.NewTaskData(uids, datasets)
	events := v.Pipeline.Run(data)
	rewardVector, diag, err := v.Aggregator.Aggregate(uids, events)
	if err != nil {
		return nil, nil, err
	}

	diag["task_id"] = task.ID
	diag["payload_bytes"] = payload
	diag["worker_states"] = states
	diag["failures"] = failures

	log.Info("ronda puntuada",
		zap.Strings("models", v.Pipeline.Names()),
		zap.Int("workers", len(uids)),
		zap.Int("failed", len(failures)),
		zap.Float64s("rewards", rewardVector))
	return rewardVector, diag, nil
}

// prepareWorker lleva a un worker de Received a Failed, Empty o Extracted.
func (v *Validator) prepareWorker(task common.Task, uid common.WorkerID, resp common.WorkerResponse, namer *stagingNamer, log *zap.Logger) workerOutcome {
	if !resp.Succeeded() {
		return workerOutcome{
			data:  common.NoData(),
			state: common.WorkerStateFailed,
			err:   common.WorkerError(common.ErrTransportFailure, uid, "status %d %s", resp.StatusCode, resp.StatusMessage),
		}
	}

	workerDir := filepath.Join(task.WorkDir, WorkersDir, namer.dirFor(resp.Hotkey, uid))
	if err := v.Stager.SaveFiles(resp.MDOutput, workerDir); err != nil {
		return workerOutcome{
			data:  common.NoData(),
			state: common.WorkerStateFailed,
			err:   common.WorkerError(common.ErrStagingFailure, uid, "%v", err),
		}
	}
	log.Debug("archivos en staging", zap.Int("uid", int(uid)), zap.String("dir", workerDir),
		zap.String("state", string(common.WorkerStateStaged)))

	data, err := v.Extractor.Extract(workerDir, task.WorkDir)
	if err == nil && !data.Valid() {
		err = errNoDataset
	}
	if err != nil {
		return workerOutcome{
			data:  common.NoData(),
			state: common.WorkerStateFailed,
			err:   common.WorkerError(common.ErrExtractionFailure, uid, "%v", err),
		}
	}

	if !data.Usable() {
		log.Warn("worker sin muestras utilizables",
			zap.Int("uid", int(uid)), zap.String("policy", string(v.emptyPolicy())))
		if v.emptyPolicy() == common.EmptyAsFailure {
			data = common.NoData()
		}
		return workerOutcome{data: data, state: common.WorkerStateEmpty}
	}
	return workerOutcome{data: data, state: common.WorkerStateExtracted}
}

func (v *Validator) logger() *zap.Logger {
	if v.Logger == nil {
		return zap.NewNop()
	}
	return v.Logger
}

func (v *Validator) prefixLen() int {
	if v.PrefixLen <= 0 {
		return DefaultStagingPrefixLen
	}
	return v.PrefixLen
}

func (v *Validator) emptyPolicy() common.EmptyDataPolicy {
	if v.EmptyPolicy == "" {
		return common.EmptyAsFailure
	}
	return v.EmptyPolicy
}
