package extractor

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

type vec3 [3]float64

// readCAlpha devuelve las coordenadas (Å) de los carbonos alfa del primer modelo de un PDB.
func readCAlpha(r io.Reader) ([]vec3, error) {
	var coords []vec3
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "ENDMDL") {
			break
		}
		if !strings.HasPrefix(line, "ATOM") || len(line) < 54 {
			continue
		}
		if strings.TrimSpace(line[12:16]) != "CA" {
			continue
		}
		var p vec3
		for i, span := range [][2]int{{30, 38}, {38, 46}, {46, 54}} {
			v, err := strconv.ParseFloat(strings.TrimSpace(line[span[0]:span[1]]), 64)
			if err != nil {
				return nil, fmt.Errorf("coordenada invalida en %q: %w", line, err)
			}
			p[i] = v
		}
		coords = append(coords, p)
	}
	return coords, sc.Err()
}

// centeredRMSD calcula el RMSD en nm entre dos conjuntos de atomos tras
// llevar ambos a su centroide. No aplica rotacion.
func centeredRMSD(a, b []vec3) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("numero de atomos incompatible: %d vs %d", len(a), len(b))
	}
	ca, cb := centroid(a), centroid(b)
	sum := 0.0
	for i := range a {
		for k := 0; k < 3; k++ {
			d := (a[i][k] - ca[k]) - (b[i][k] - cb[k])
			sum += d * d
		}
	}
	return math.Sqrt(sum/float64(len(a))) / 10, nil
}

func centroid(ps []vec3) vec3 {
	var c vec3
	for _, p := range ps {
		for k := 0; k < 3; k++ {
			c[k] += p[k]
		}
	}
	for k := 0; k < 3; k++ {
		c[k] /= float64(len(ps))
	}
	return c
}
