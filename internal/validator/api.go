package validator

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"folding-rewards/internal/common"
	"folding-rewards/internal/storage"
)

// Server expone el validador por HTTP: el transporte entrega aqui las
// respuestas ya materializadas de cada ronda.
type Server struct {
	Validator *Validator
	Store     *storage.RoundStore
	WorkRoot  string
	Logger    *zap.Logger
}

// SubmitRoundRequest es el cuerpo de POST /rounds. Si UIDs falta, el roster
// se toma del orden de Responses.
type SubmitRoundRequest struct {
	PDBID          string                  `json:"pdb_id" binding:"required"`
	ReferenceFiles map[string]string       `json:"reference_files,omitempty"`
	Responses      []common.WorkerResponse `json:"responses"`
	UIDs           []common.WorkerID       `json:"uids,omitempty"`
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "models": s.Validator.Pipeline.Names()})
	})
	r.POST("/rounds", s.HandleSubmitRound)
	r.GET("/rounds", s.HandleListRounds)
	r.GET("/rounds/:id", s.HandleGetRound)
	return r
}

func (s *Server) HandleSubmitRound(c *gin.Context) {
	var req SubmitRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formato de ronda invalido: " + err.Error()})
		return
	}
	uids := req.UIDs
	if uids == nil {
		uids = make([]common.WorkerID, len(req.Responses))
		for i, resp := range req.Responses {
			uids[i] = resp.UID
		}
	}

	roundID := uuid.New().String()
	task := common.Task{
		ID:             roundID,
		PDBID:          req.PDBID,
		WorkDir:        filepath.Join(s.WorkRoot, roundID),
		ReferenceFiles: req.ReferenceFiles,
	}
	s.logger().Info("ronda recibida", zap.String("round", roundID), zap.String("pdb_id", req.PDBID), zap.Int("workers", len(uids)))

	rewardVector, diag, err := s.Validator.GetRewards(task, req.Responses, uids)
	result := storage.RoundResult{
		RoundID:  roundID,
		PDBID:    req.PDBID,
		UIDs:     uids,
		Rewards:  rewardVector,
		Events:   diag,
		ScoredAt: time.Now().UTC(),
	}
	if err != nil {
		result.Error = err.Error()
		s.Store.SaveRound(result)
		s.logger().Error("ronda fallida", zap.String("round", roundID), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"round_id": roundID, "error": err.Error()})
		return
	}
	s.Store.SaveRound(result)
	c.JSON(http.StatusOK, result)
}

func (s *Server) HandleGetRound(c *gin.Context) {
	result, ok := s.Store.GetRound(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "ronda no encontrada"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) HandleListRounds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rounds": s.Store.RecentRounds()})
}

// statusFor traduce los errores estructurales de la ronda a codigos HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidRoster):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrNoRewardModels), errors.Is(err, common.ErrMalformedRewardEvent):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
