package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"folding-rewards/internal/config"
	"folding-rewards/internal/extractor"
	"folding-rewards/internal/rewards"
	"folding-rewards/internal/storage"
	"folding-rewards/internal/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuracion invalida: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("No se pudo crear el logger: %v", err)
	}
	defer logger.Sync()

	pipeline, err := rewards.BuildPipeline(cfg.RewardModels, cfg.Models)
	if err != nil {
		logger.Fatal("pipeline invalido", zap.Error(err))
	}
	if pipeline.Len() == 0 {
		// Se permite arrancar; cada ronda respondera con ErrNoRewardModels
		logger.Warn("REWARD_MODELS esta vacio")
	}

	v := validator.NewValidator(pipeline, extractor.NewGromacsExtractor(logger), logger)
	v.Aggregator = &rewards.Aggregator{Weights: cfg.RewardWeights}
	v.EmptyPolicy = cfg.EmptyDataPolicy
	v.PrefixLen = cfg.StagingPrefixLen

	server := &validator.Server{
		Validator: v,
		Store:     storage.NewRoundStore(cfg.RoundHistory),
		WorkRoot:  cfg.WorkDir,
		Logger:    logger.Named("api"),
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("validador iniciado",
		zap.String("addr", addr),
		zap.Strings("models", pipeline.Names()),
		zap.String("work_dir", cfg.WorkDir),
		zap.String("empty_data_policy", string(cfg.EmptyDataPolicy)))
	if err := server.Router().Run(addr); err != nil {
		logger.Fatal("error al iniciar servidor", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
