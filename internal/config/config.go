package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"folding-rewards/internal/common"
	"folding-rewards/internal/rewards"
)

type Config struct {
	// Puerto HTTP del validador
	Port int

	// Raiz donde se crea el area de trabajo de cada ronda
	WorkDir string

	// Modelos de recompensa, en orden de ejecucion
	RewardModels []string

	// Peso de cada modelo en la agregacion (ausente = 1)
	RewardWeights map[string]float64

	// Como puntuar a un worker con exito de transporte pero sin muestras
	EmptyDataPolicy common.EmptyDataPolicy

	// Caracteres del hotkey que nombran el directorio de staging
	StagingPrefixLen int

	// Objetivos del modelo thermo
	Models rewards.ModelConfig

	// Nivel de log de zap (debug, info, warn, error)
	LogLevel string

	// Rondas que se conservan en memoria para GET /rounds/:id
	RoundHistory int
}

// Load lee un .env opcional y luego las variables de entorno, con valores por defecto.
func Load() (*Config, error) {
	// El .env es opcional: sin el se usan el entorno y los valores por defecto
	_ = godotenv.Load()

	policy, err := common.ParseEmptyDataPolicy(os.Getenv("EMPTY_DATA_POLICY"))
	if err != nil {
		return nil, err
	}
	weights, err := parseWeights(os.Getenv("REWARD_WEIGHTS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:             getEnvAsInt("VALIDATOR_PORT", 8091),
		WorkDir:          getEnv("VALIDATOR_WORK_DIR", "/tmp/folding-rewards"),
		RewardModels:     getEnvAsList("REWARD_MODELS", rewards.DefaultModels),
		RewardWeights:    weights,
		EmptyDataPolicy:  policy,
		StagingPrefixLen: getEnvAsInt("STAGING_PREFIX_LEN", 8),
		Models: rewards.ModelConfig{
			TargetTemperature: getEnvAsFloat("TARGET_TEMPERATURE", 300.0),
			TargetPressure:    getEnvAsFloat("TARGET_PRESSURE", 1.0),
			TargetDensity:     getEnvAsFloat("TARGET_DENSITY", 1000.0),
		},
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		RoundHistory: getEnvAsInt("ROUND_HISTORY", 100),
	}
	if cfg.StagingPrefixLen <= 0 {
		return nil, fmt.Errorf("STAGING_PREFIX_LEN debe ser positivo: %d", cfg.StagingPrefixLen)
	}
	return cfg, nil
}

// parseWeights acepta "energy=2,rmsd=1". Los pesos negativos son un error.
func parseWeights(raw string) (map[string]float64, error) {
	weights := make(map[string]float64)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("REWARD_WEIGHTS: par invalido %q", pair)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || w < 0 {
			return nil, fmt.Errorf("REWARD_WEIGHTS: peso invalido para %q: %q", name, value)
		}
		weights[strings.TrimSpace(name)] = w
	}
	return weights, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	val, set := os.LookupEnv(key)
	if !set {
		return append([]string(nil), defaultVal...)
	}
	var items []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
