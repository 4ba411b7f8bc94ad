package common

// Task es una ronda de puntuacion: un objetivo de referencia fijo y su area de trabajo.
type Task struct {
	ID             string            `json:"id"`
	PDBID          string            `json:"pdb_id"`
	WorkDir        string            `json:"work_dir"`        // Raiz de staging de la ronda
	ReferenceFiles map[string]string `json:"reference_files"` // Archivos de referencia (p.ej. reference.pdb)
}
