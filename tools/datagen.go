package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// Genera una ronda sintetica en data/round para probar el validador con cmd/client.
func main() {
	root := "data/round"
	os.MkdirAll(root, 0755)

	workers := []struct {
		dir    string
		energy float64 // Energia potencial final (kJ/mol)
		status int
	}{
		{dir: "0_5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty", energy: -51000, status: 200},
		{dir: "1_5DAAnrj7VHTznn2AWBemMuyBwZWs6FNFjdyVXUeYum3PTXFy", energy: -49500, status: 200},
		{dir: "2_5HGjWAeFDfFCWPsjFQdVV2Msvz2XtMktvgocEZcCj68kUMaw", energy: 0, status: 500},
		{dir: "3_5CiPPseXPECbkjWCa6MnjNokrgYjMqmKndv2rSnekmSK2DjL", energy: -50200, status: 200},
	}

	rng := rand.New(rand.NewSource(42))
	for _, w := range workers {
		dir := filepath.Join(root, w.dir)
		os.MkdirAll(dir, 0755)
		fmt.Printf("Generando %s ...\n", dir)

		if w.status != 200 {
			os.WriteFile(filepath.Join(dir, "status"), []byte(fmt.Sprintf("%d\n", w.status)), 0644)
			continue
		}
		os.WriteFile(filepath.Join(dir, "energy.xvg"), series("Potential", w.energy+2000, w.energy, 50, rng), 0644)
		os.WriteFile(filepath.Join(dir, "prod_energy.xvg"), series("Potential", w.energy, w.energy-150, 100, rng), 0644)
		os.WriteFile(filepath.Join(dir, "temperature.xvg"), series("T-rest", 300, 300, 100, rng), 0644)
		os.WriteFile(filepath.Join(dir, "pressure.xvg"), series("Pressure", 1, 1, 100, rng), 0644)
		os.WriteFile(filepath.Join(dir, "density.xvg"), series("Density", 1000, 1000, 100, rng), 0644)
		os.WriteFile(filepath.Join(dir, "rmsd.xvg"), series("RMSD", 0, 0.1+rng.Float64()*0.3, 100, rng), 0644)
	}

	fmt.Println(" Ronda generada exitosamente.")
}

// series escribe un .xvg que va de start a end con ruido gaussiano.
func series(legend string, start, end float64, n int, rng *rand.Rand) []byte {
	out := fmt.Sprintf("# generado por tools/datagen.go\n@    xaxis  label \"Time (ps)\"\n@ s0 legend \"%s\"\n", legend)
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n-1)
		v := start + (end-start)*frac + rng.NormFloat64()*0.01*(1+abs(end-start))
		out += fmt.Sprintf("%10.3f  %12.4f\n", float64(i)*2, v)
	}
	return []byte(out)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
