package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"folding-rewards/internal/common"
)

// Stager materializa archivos en un directorio; el extractor solo lee de disco.
type Stager interface {
	SaveFiles(files map[string]string, outputDir string) error
}

// DirStager escribe los archivos tal cual en el sistema de archivos local.
// Los nombres vienen de workers no confiables: se rechaza cualquier ruta
// absoluta o que salga de outputDir.
type DirStager struct{}

func (DirStager) SaveFiles(files map[string]string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	names := make([]string, 0, len(files))
	for name := range files {
		if !filepath.IsLocal(name) {
			return fmt.Errorf("nombre de archivo no permitido: %q", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(outputDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(files[name]), 0644); err != nil {
			return fmt.Errorf("escribiendo %s: %w", name, err)
		}
	}
	return nil
}

// WorkersDir es el subdirectorio de la tarea donde viven los directorios de
// los workers, separado de los archivos de referencia.
const WorkersDir = "workers"

// stagingNamer asigna a cada worker de una ronda un subdirectorio exclusivo
// derivado del prefijo de su hotkey. Si dos hotkeys comparten prefijo, el
// segundo recibe "<prefijo>-<uid>".
type stagingNamer struct {
	prefixLen int
	used      map[string]bool
}

func newStagingNamer(prefixLen int) *stagingNamer {
	return &stagingNamer{prefixLen: prefixLen, used: make(map[string]bool)}
}

func (n *stagingNamer) dirFor(hotkey string, uid common.WorkerID) string {
	name := hotkey
	if runes := []rune(name); len(runes) > n.prefixLen {
		name = string(runes[:n.prefixLen])
	}
	if name == "" || name == "." || name == ".." || !filepath.IsLocal(name) || strings.ContainsAny(name, `/\`) {
		name = fmt.Sprintf("uid-%d", uid)
	}
	for n.used[name] {
		name = fmt.Sprintf("%s-%d", name, uid)
	}
	n.used[name] = true
	return name
}
