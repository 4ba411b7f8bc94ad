// Package extractor convierte la salida de simulacion que deja cada worker en
// un common.Dataset con las series de magnitudes fisicas.
package extractor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"folding-rewards/internal/common"
)

// Extractor construye el dataset de un worker a partir de su directorio de staging
// y del directorio de la tarea (archivos de referencia).
type Extractor interface {
	Extract(workerDir, taskDir string) (common.Dataset, error)
}

// QuantitySpec indica de que archivo y columna sale cada magnitud.
type QuantitySpec struct {
	Name   string
	File   string
	Legend string
}

// DefaultQuantities son las magnitudes que genera `gmx energy`/`gmx rms` en una ronda.
var DefaultQuantities = []QuantitySpec{
	{Name: common.QuantityEnergy, File: "energy.xvg", Legend: "Potential"},
	{Name: common.QuantityTemperature, File: "temperature.xvg", Legend: "T-rest"},
	{Name: common.QuantityPressure, File: "pressure.xvg", Legend: "Pressure"},
	{Name: common.QuantityDensity, File: "density.xvg", Legend: "Density"},
	{Name: common.QuantityProdEnergy, File: "prod_energy.xvg", Legend: "Potential"},
	{Name: common.QuantityRMSD, File: "rmsd.xvg", Legend: "RMSD"},
}

const (
	DefaultStructureFile = "md_0_1.pdb"
	DefaultReferenceFile = "reference.pdb"
)

// GromacsExtractor lee las series .xvg que el worker entrega ya procesadas.
type GromacsExtractor struct {
	Quantities    []QuantitySpec
	StructureFile string // Estructura final del worker (workerDir)
	ReferenceFile string // Estructura de referencia (taskDir)
	Logger        *zap.Logger
}

func NewGromacsExtractor(logger *zap.Logger) *GromacsExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GromacsExtractor{
		Quantities:    DefaultQuantities,
		StructureFile: DefaultStructureFile,
		ReferenceFile: DefaultReferenceFile,
		Logger:        logger.Named("extractor"),
	}
}

// Extract devuelve error si no se pudo leer ninguna magnitud.
// Un archivo corrupto solo elimina su magnitud del dataset.
func (e *GromacsExtractor) Extract(workerDir, taskDir string) (common.Dataset, error) {
	series := make(map[string][]float64)

	for _, q := range e.Quantities {
		values, err := readSeries(filepath.Join(workerDir, q.File), q.Legend)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			e.Logger.Warn("serie descartada",
				zap.String("dir", workerDir), zap.String("file", q.File), zap.Error(err))
			continue
		}
		series[q.Name] = values
	}

	if _, ok := series[common.QuantityRMSD]; !ok && e.StructureFile != "" && e.ReferenceFile != "" {
		rmsd, err := structureRMSD(filepath.Join(workerDir, e.StructureFile), filepath.Join(taskDir, e.ReferenceFile))
		switch {
		case err == nil:
			series[common.QuantityRMSD] = []float64{rmsd}
		case !errors.Is(err, fs.ErrNotExist):
			e.Logger.Warn("rmsd descartado", zap.String("dir", workerDir), zap.Error(err))
		}
	}

	if len(series) == 0 {
		return common.NoData(), fmt.Errorf("ninguna magnitud legible en %s", workerDir)
	}
	return common.NewDataset(series), nil
}

func readSeries(path, legend string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := ParseXVG(f)
	if err != nil {
		return nil, err
	}
	return x.Series(legend)
}

func structureRMSD(structurePath, referencePath string) (float64, error) {
	worker, err := readPDB(structurePath)
	if err != nil {
		return 0, err
	}
	reference, err := readPDB(referencePath)
	if err != nil {
		return 0, err
	}
	return centeredRMSD(worker, reference)
}

func readPDB(path string) ([]vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCAlpha(f)
}
