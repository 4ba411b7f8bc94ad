package extractor

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var legendRe = regexp.MustCompile(`^@\s*s(\d+)\s+legend\s+"(.*)"`)

// maxSeries acota los indices sN aceptados en una leyenda.
const maxSeries = 1024

// XVG es el contenido de un archivo .xvg de GROMACS. Columns[0] es el eje x
// (tiempo o paso); Columns[i+1] corresponde a Legends[i].
type XVG struct {
	Legends []string
	Columns [][]float64
}

// ParseXVG lee comentarios (#), directivas (@) y filas numericas separadas por espacios.
// Todas las filas deben tener el mismo numero de columnas.
func ParseXVG(r io.Reader) (*XVG, error) {
	x := &XVG{}
	legends := map[int]string{}
	sc := bufio.NewScanner(r)
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "@") {
			if m := legendRe.FindStringSubmatch(line); m != nil {
				idx, err := strconv.Atoi(m[1])
				if err != nil || idx >= maxSeries {
					return nil, fmt.Errorf("linea %d: indice de serie invalido %q", lineNo, m[1])
				}
				legends[idx] = m[2]
			}
			continue
		}

		fields := strings.Fields(line)
		if x.Columns == nil {
			x.Columns = make([][]float64, len(fields))
		}
		if len(fields) != len(x.Columns) {
			return nil, fmt.Errorf("linea %d: %d columnas, se esperaban %d", lineNo, len(fields), len(x.Columns))
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("linea %d: %w", lineNo, err)
			}
			x.Columns[i] = append(x.Columns[i], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	// Leyendas sin columna de datos se ignoran
	size := 0
	if len(x.Columns) > 1 {
		size = len(x.Columns) - 1
	}
	x.Legends = make([]string, size)
	for idx, name := range legends {
		if idx < size {
			x.Legends[idx] = name
		}
	}
	return x, nil
}

// Series devuelve la columna cuya leyenda coincide con legend. Si el archivo
// solo tiene una columna de datos se usa esa aunque no haya leyenda.
func (x *XVG) Series(legend string) ([]float64, error) {
	for i, name := range x.Legends {
		if strings.EqualFold(name, legend) && i+1 < len(x.Columns) {
			return x.Columns[i+1], nil
		}
	}
	if len(x.Columns) == 2 {
		return x.Columns[1], nil
	}
	if len(x.Columns) == 0 {
		return []float64{}, nil
	}
	return nil, fmt.Errorf("leyenda %q no encontrada (leyendas: %v)", legend, x.Legends)
}
