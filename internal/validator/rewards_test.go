package validator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"folding-rewards/internal/common"
	"folding-rewards/internal/extractor"
	"folding-rewards/internal/rewards"
)

// ==========================================================
// SETUP Y UTILITIES
// ==========================================================

// memStager registra los directorios sin tocar el disco.
type memStager struct {
	dirs []string
	fail map[string]bool
}

func (m *memStager) SaveFiles(files map[string]string, outputDir string) error {
	if m.fail[filepath.Base(outputDir)] {
		return fmt.Errorf("disco lleno")
	}
	m.dirs = append(m.dirs, outputDir)
	return nil
}

// mapExtractor devuelve el dataset asociado al nombre del directorio del worker.
type mapExtractor map[string]common.Dataset

func (m mapExtractor) Extract(workerDir, taskDir string) (common.Dataset, error) {
	d, ok := m[filepath.Base(workerDir)]
	if !ok {
		return common.NoData(), fmt.Errorf("sin salida en %s", workerDir)
	}
	return d, nil
}

func okResponse(uid common.WorkerID, hotkey string) common.WorkerResponse {
	return common.WorkerResponse{
		UID:        uid,
		Hotkey:     hotkey,
		StatusCode: common.StatusCodeSuccess,
		MDOutput:   map[string]string{"energy.xvg": "0 -1\n"},
	}
}

func series(final float64) common.Dataset {
	return common.NewDataset(map[string][]float64{
		common.QuantityEnergy:     {final + 10, final},
		common.QuantityProdEnergy: {final, final},
		common.QuantityRMSD:       {0.2},
	})
}

func newTestValidator(ext extractor.Extractor, stager Stager) *Validator {
	v := NewValidator(rewards.NewPipeline(rewards.EnergyRewardModel{}, rewards.RMSDRewardModel{}), ext, nil)
	v.Stager = stager
	return v
}

func task(t *testing.T) common.Task {
	return common.Task{ID: "ronda-1", PDBID: "1ubq", WorkDir: t.TempDir()}
}

// ==========================================================
// TESTS DEL ORQUESTADOR
// ==========================================================

func TestGetRewards_RosterAlignment(t *testing.T) {
	ext := mapExtractor{
		"hkAAAAAA": series(-300),
		"hkBBBBBB": series(-500),
		"hkCCCCCC": series(-400),
	}
	v := newTestValidator(ext, &memStager{})
	uids := []common.WorkerID{7, 3, 5}
	responses := []common.WorkerResponse{
		okResponse(7, "hkAAAAAAxyz"),
		okResponse(3, "hkBBBBBBxyz"),
		okResponse(5, "hkCCCCCCxyz"),
	}

	got, diag, err := v.GetRewards(task(t), responses, uids)
	if err != nil {
		t.Fatalf("GetRewards fallo: %v", err)
	}
	if len(got) != len(uids) {
		t.Fatalf("Esperaba %d recompensas, obtuvo %d", len(uids), len(got))
	}
	// -500 (uid 3) < -400 (uid 5) < -300 (uid 7)
	if !(got[1] > got[2] && got[2] > got[0]) {
		t.Errorf("Orden de recompensas no alineado con el roster: %v", got)
	}
	states := diag["worker_states"].(map[common.WorkerID]common.WorkerState)
	for _, uid := range uids {
		if states[uid] != common.WorkerStateExtracted {
			t.Errorf("uid %d: estado esperado extracted, obtenido %q", uid, states[uid])
		}
	}
}

func TestGetRewards_PerWorkerFailuresAreRecovered(t *testing.T) {
	stager := &memStager{fail: map[string]bool{"hkSTAGE": true}}
	ext := mapExtractor{"hkGOOD": series(-100)}
	v := newTestValidator(ext, stager)

	uids := []common.WorkerID{1, 2, 3, 4}
	failed := okResponse(2, "hkDOWN")
	failed.StatusCode = 504
	failed.StatusMessage = "timeout"
	responses := []common.WorkerResponse{
		okResponse(1, "hkGOOD"),
		failed,
		okResponse(3, "hkSTAGE"),
		okResponse(4, "hkNOOUT"), // el extractor no encuentra nada
	}

	got, diag, err := v.GetRewards(task(t), responses, uids)
	if err != nil {
		t.Fatalf("Los fallos por worker no deberian abortar la ronda: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i] != common.RewardFloor {
			t.Errorf("uid %d deberia recibir el suelo, obtuvo %v", uids[i], got[i])
		}
		if got[i] >= got[0] {
			t.Errorf("uid %d no deberia igualar al worker valido", uids[i])
		}
	}
	failures := diag["failures"].(map[common.WorkerID]string)
	if len(failures) != 3 {
		t.Errorf("Esperaba 3 fallos registrados, obtuvo %v", failures)
	}
	// El worker con status de error no se deja en staging
	for _, dir := range stager.dirs {
		if filepath.Base(dir) == "hkDOWN" {
			t.Error("Un fallo de transporte no deberia pasar por staging")
		}
	}
}

func TestGetRewards_IdenticalDatasetsScoreEqually(t *testing.T) {
	ext := mapExtractor{"aaaaaaaa": series(-42), "bbbbbbbb": series(-42), "cccccccc": series(-10)}
	v := newTestValidator(ext, &memStager{})
	uids := []common.WorkerID{1, 2, 3}
	responses := []common.WorkerResponse{okResponse(1, "aaaaaaaa1"), okResponse(2, "bbbbbbbb2"), okResponse(3, "cccccccc3")}

	got, _, err := v.GetRewards(task(t), responses, uids)
	if err != nil {
		t.Fatalf("GetRewards fallo: %v", err)
	}
	if got[0] != got[1] {
		t.Errorf("Datasets identicos deberian puntuar igual: %v", got)
	}
}

func TestGetRewards_StructuralErrors(t *testing.T) {
	tests := []struct {
		name      string
		pipeline  *rewards.Pipeline
		responses []common.WorkerResponse
		uids      []common.WorkerID
		wantErr   error
	}{
		{
			name:      "Sin modelos",
			pipeline:  rewards.NewPipeline(),
			responses: []common.WorkerResponse{okResponse(1, "a")},
			uids:      []common.WorkerID{1},
			wantErr:   common.ErrNoRewardModels,
		},
		{
			name:      "Longitudes distintas",
			pipeline:  rewards.NewPipeline(rewards.EnergyRewardModel{}),
			responses: []common.WorkerResponse{okResponse(1, "a")},
			uids:      []common.WorkerID{1, 2},
			wantErr:   common.ErrInvalidRoster,
		},
		{
			name:      "Uid repetido",
			pipeline:  rewards.NewPipeline(rewards.EnergyRewardModel{}),
			responses: []common.WorkerResponse{okResponse(1, "a"), okResponse(1, "b")},
			uids:      []common.WorkerID{1, 1},
			wantErr:   common.ErrInvalidRoster,
		},
		{
			name:      "Respuesta desalineada",
			pipeline:  rewards.NewPipeline(rewards.EnergyRewardModel{}),
			responses: []common.WorkerResponse{okResponse(2, "a"), okResponse(1, "b")},
			uids:      []common.WorkerID{1, 2},
			wantErr:   common.ErrInvalidRoster,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator(mapExtractor{}, &memStager{})
			v.Pipeline = tt.pipeline
			got, _, err := v.GetRewards(task(t), tt.responses, tt.uids)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Esperaba %v, obtuvo %v", tt.wantErr, err)
			}
			if got != nil {
				t.Errorf("No deberia devolverse un vector: %v", got)
			}
		})
	}
}

// brokenModel emite un evento que no cubre el roster.
type brokenModel struct{}

func (brokenModel) Name() string { return "broken" }

func (brokenModel) Apply(data common.TaskData) common.RewardEvent {
	e := common.NewRewardEvent("broken")
	e.Set("x", data.Roster()[0], 1)
	return e
}

func TestGetRewards_MalformedEventIsFatal(t *testing.T) {
	v := newTestValidator(mapExtractor{"a": series(-1), "b": series(-2)}, &memStager{})
	v.Pipeline = rewards.NewPipeline(rewards.EnergyRewardModel{}, brokenModel{})

	got, _, err := v.GetRewards(task(t), []common.WorkerResponse{okResponse(1, "a"), okResponse(2, "b")}, []common.WorkerID{1, 2})
	if !errors.Is(err, common.ErrMalformedRewardEvent) {
		t.Fatalf("Esperaba ErrMalformedRewardEvent, obtuvo %v", err)
	}
	if got != nil {
		t.Errorf("No deberia devolverse un vector parcial: %v", got)
	}
}

// ==========================================================
// ESCENARIO COMPLETO EN DISCO
// ==========================================================

const potentialXVG = "@ s0 legend \"Potential\"\n0 %v\n1 %v\n"

// Tres workers: A con energia valida, B con status 500, C con status 200 pero serie vacia.
func scenario(t *testing.T, policy common.EmptyDataPolicy) (common.RewardVector, common.Diagnostics) {
	t.Helper()
	uids := []common.WorkerID{0, 1, 2}
	responses := []common.WorkerResponse{
		{UID: 0, Hotkey: "5FhotkeyA", StatusCode: 200, MDOutput: map[string]string{
			"energy.xvg": fmt.Sprintf(potentialXVG, -900.0, -1000.0),
		}},
		{UID: 1, Hotkey: "5FhotkeyB", StatusCode: 500, MDOutput: map[string]string{}},
		{UID: 2, Hotkey: "5GhotkeyC", StatusCode: 200, MDOutput: map[string]string{
			"energy.xvg": "@ s0 legend \"Potential\"\n",
		}},
	}

	v := NewValidator(rewards.NewPipeline(rewards.EnergyRewardModel{}, rewards.RMSDRewardModel{}), extractor.NewGromacsExtractor(nil), nil)
	v.EmptyPolicy = policy
	tk := task(t)

	got, diag, err := v.GetRewards(tk, responses, uids)
	if err != nil {
		t.Fatalf("GetRewards fallo: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tk.WorkDir, WorkersDir, "5FhotkeyA"[:8], "energy.xvg")); err != nil {
		t.Errorf("Los archivos de A deberian estar en staging: %v", err)
	}
	return got, diag
}

func TestGetRewards_ThreeWorkerScenario(t *testing.T) {
	t.Run("Politica failure", func(t *testing.T) {
		got, diag := scenario(t, common.EmptyAsFailure)
		if len(got) != 3 {
			t.Fatalf("Esperaba 3 recompensas, obtuvo %d", len(got))
		}
		if !(got[0] > got[1] && got[0] > got[2]) {
			t.Errorf("A deberia superar a B y C: %v", got)
		}
		if got[1] != common.RewardFloor || got[2] != common.RewardFloor {
			t.Errorf("B y C deberian quedar en el suelo: %v", got)
		}
		states := diag["worker_states"].(map[common.WorkerID]common.WorkerState)
		if states[1] != common.WorkerStateFailed || states[2] != common.WorkerStateEmpty {
			t.Errorf("Estados inesperados: %v", states)
		}
	})

	t.Run("Politica degraded", func(t *testing.T) {
		got, _ := scenario(t, common.EmptyAsDegraded)
		if !(got[0] > got[2] && got[2] > got[1]) {
			t.Errorf("Orden esperado A > C > B, obtuvo %v", got)
		}
	})
}

func TestGetRewards_StagesReferenceFiles(t *testing.T) {
	stager := &memStager{}
	v := newTestValidator(mapExtractor{"a": series(-1)}, stager)
	tk := task(t)
	tk.ReferenceFiles = map[string]string{"reference.pdb": "END\n"}

	if _, _, err := v.GetRewards(tk, []common.WorkerResponse{okResponse(1, "a")}, []common.WorkerID{1}); err != nil {
		t.Fatalf("GetRewards fallo: %v", err)
	}
	if len(stager.dirs) != 2 || stager.dirs[0] != tk.WorkDir {
		t.Errorf("Los archivos de referencia deberian ir primero al directorio de la tarea: %v", stager.dirs)
	}
}

func TestGetRewards_WorkerCannotOverwriteReference(t *testing.T) {
	v := NewValidator(rewards.NewPipeline(rewards.EnergyRewardModel{}, rewards.RMSDRewardModel{}), extractor.NewGromacsExtractor(nil), nil)
	tk := task(t)
	tk.ReferenceFiles = map[string]string{extractor.DefaultReferenceFile: "ORIGINAL\n"}
	responses := []common.WorkerResponse{{
		UID: 1, Hotkey: ".", StatusCode: 200,
		MDOutput: map[string]string{
			"energy.xvg":                   fmt.Sprintf(potentialXVG, -900.0, -1000.0),
			extractor.DefaultReferenceFile: "REEMPLAZADO\n",
		},
	}}

	if _, _, err := v.GetRewards(tk, responses, []common.WorkerID{1}); err != nil {
		t.Fatalf("GetRewards fallo: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(tk.WorkDir, extractor.DefaultReferenceFile))
	if err != nil || string(got) != "ORIGINAL\n" {
		t.Errorf("La referencia de la tarea fue modificada: %q (%v)", got, err)
	}
	if _, err := os.Stat(filepath.Join(tk.WorkDir, WorkersDir, "uid-1", "energy.xvg")); err != nil {
		t.Errorf("El worker deberia quedar en su propio directorio: %v", err)
	}
}

func TestGetRewards_EmptyRoster(t *testing.T) {
	v := newTestValidator(mapExtractor{}, &memStager{})
	got, diag, err := v.GetRewards(task(t), nil, nil)
	if err != nil {
		t.Fatalf("GetRewards fallo: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Esperaba vector vacio, obtuvo %v", got)
	}
	if diag["task_id"] != "ronda-1" {
		t.Errorf("Diagnosticos incompletos: %v", diag)
	}
}

func TestGetRewards_ReferenceStagingFailure(t *testing.T) {
	v := newTestValidator(mapExtractor{"a": series(-1)}, DirStager{})
	tk := task(t)
	tk.ReferenceFiles = map[string]string{"../fuera.pdb": "END\n"}

	got, _, err := v.GetRewards(tk, []common.WorkerResponse{okResponse(1, "a")}, []common.WorkerID{1})
	if !errors.Is(err, common.ErrStagingFailure) {
		t.Fatalf("Esperaba %v, obtuvo %v", common.ErrStagingFailure, err)
	}
	if got != nil {
		t.Errorf("No deberia devolverse un vector: %v", got)
	}
}
