package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"folding-rewards/internal/common"
	"folding-rewards/internal/storage"
	"folding-rewards/internal/validator"
)

// Envia una ronda al validador a partir de un directorio con un subdirectorio
// por worker, nombrado "<uid>_<hotkey>". Un archivo "status" opcional dentro
// del subdirectorio fija el codigo de estado (por defecto 200).
func main() {
	validatorURL := flag.String("validator", "http://localhost:8091", "URL del validador")
	roundDir := flag.String("dir", "data/round", "Directorio con la salida de los workers")
	pdbID := flag.String("pdb", "1ubq", "PDB de la ronda")
	reference := flag.String("reference", "", "reference.pdb opcional de la tarea")
	flag.Parse()

	responses, err := loadResponses(*roundDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error leyendo %s: %v\n", *roundDir, err)
		os.Exit(1)
	}

	req := validator.SubmitRoundRequest{PDBID: *pdbID, Responses: responses}
	if *reference != "" {
		content, err := os.ReadFile(*reference)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error leyendo referencia: %v\n", err)
			os.Exit(1)
		}
		req.ReferenceFiles = map[string]string{filepath.Base(*reference): string(content)}
	}

	fmt.Printf("Enviando ronda con %d workers al validador...\n", len(responses))
	result, err := submitRound(*validatorURL, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Ronda %s puntuada:\n", result.RoundID)
	for i, uid := range result.UIDs {
		fmt.Printf("  uid %-4d reward %.4f\n", uid, result.Rewards[i])
	}
}

func loadResponses(dir string) ([]common.WorkerResponse, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var responses []common.WorkerResponse
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		uidStr, hotkey, ok := strings.Cut(e.Name(), "_")
		uid, err := strconv.Atoi(uidStr)
		if !ok || err != nil {
			return nil, fmt.Errorf("directorio %q no sigue el formato <uid>_<hotkey>", e.Name())
		}

		resp := common.WorkerResponse{
			UID:        common.WorkerID(uid),
			Hotkey:     hotkey,
			StatusCode: common.StatusCodeSuccess,
			MDOutput:   map[string]string{},
			ReceivedAt: time.Now().UTC(),
		}
		workerDir := filepath.Join(dir, e.Name())
		files, err := os.ReadDir(workerDir)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			content, err := os.ReadFile(filepath.Join(workerDir, f.Name()))
			if err != nil {
				return nil, err
			}
			if f.Name() == "status" {
				code, err := strconv.Atoi(strings.TrimSpace(string(content)))
				if err != nil {
					return nil, fmt.Errorf("status invalido en %s: %w", workerDir, err)
				}
				resp.StatusCode = code
				continue
			}
			resp.MDOutput[f.Name()] = string(content)
		}
		responses = append(responses, resp)
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].UID < responses[j].UID })
	return responses, nil
}

func submitRound(baseURL string, req validator.SubmitRoundRequest) (*storage.RoundResult, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(baseURL+"/rounds", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("error contactando al validador: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("el validador rechazo la ronda (%d): %s", resp.StatusCode, string(body))
	}
	var result storage.RoundResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
