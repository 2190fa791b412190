// Package api exposes the triage pipeline over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhruva-pgrs/triage/internal/logging"
	"github.com/dhruva-pgrs/triage/internal/processor"
	"github.com/dhruva-pgrs/triage/internal/triage"
)

// Handler handles HTTP requests for the triage API.
type Handler struct {
	pipeline *triage.Pipeline
	pool     *processor.Pool
	logger   logging.Logger
}

// NewHandler creates a new API handler. pool may be nil to disable batch
// intake.
func NewHandler(pipeline *triage.Pipeline, pool *processor.Pool, logger logging.Logger) *Handler {
	return &Handler{
		pipeline: pipeline,
		pool:     pool,
		logger:   logger,
	}
}

// Process handles POST /api/v1/grievances.
func (h *Handler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result := h.pipeline.Process(c.Request.Context(), triage.Input{
		Text:      req.Text,
		CitizenID: req.CitizenID,
		Location:  req.Location,
	})
	c.JSON(http.StatusOK, result)
}

// ProcessBatch handles POST /api/v1/grievances/batch. Submissions feed
// the bounded intake pool; once it saturates the whole batch degrades to
// partial acceptance.
func (h *Handler) ProcessBatch(c *gin.Context) {
	if h.pool == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "batch intake disabled"})
		return
	}

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	accepted, rejected := 0, 0
	for _, g := range req.Grievances {
		err := h.pool.Submit(c.Request.Context(), triage.Input{
			Text:      g.Text,
			CitizenID: g.CitizenID,
			Location:  g.Location,
		})
		if err != nil {
			rejected++
			continue
		}
		accepted++
	}

	status := http.StatusAccepted
	if rejected > 0 {
		status = http.StatusTooManyRequests
		h.logger.Warn("batch intake partially rejected",
			logging.Int("accepted", accepted),
			logging.Int("rejected", rejected))
	}
	c.JSON(status, BatchResponse{Accepted: accepted, Rejected: rejected})
}

// Classify handles POST /api/v1/classify.
func (h *Handler) Classify(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.pipeline.Classify(c.Request.Context(), req.Text))
}

// AnalyzeDistress handles POST /api/v1/distress.
func (h *Handler) AnalyzeDistress(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.pipeline.AnalyzeDistress(c.Request.Context(), req.Text))
}

// PredictRisk handles POST /api/v1/risk.
func (h *Handler) PredictRisk(c *gin.Context) {
	var req RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.pipeline.PredictRisk(req.Text, req.Department))
}

// ResolveCase handles POST /api/v1/cases/:id/resolve. An unknown id is
// acknowledged anyway: resolution is log-and-ignore by contract.
func (h *Handler) ResolveCase(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	caseID := c.Param("id")
	h.pipeline.ResolveCase(c.Request.Context(), caseID, req.Resolution, req.ResolutionDays)
	c.JSON(http.StatusAccepted, ResolveResponse{CaseID: caseID})
}

// Queue handles GET /api/v1/cases/queue.
func (h *Handler) Queue(c *gin.Context) {
	department := c.Query("department")
	queue := h.pipeline.Queue(department)
	c.JSON(http.StatusOK, QueueResponse{Cases: queue, Total: len(queue)})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ReadyCheck handles GET /ready.
func (h *Handler) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
