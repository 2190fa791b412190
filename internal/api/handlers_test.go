package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruva-pgrs/triage/internal/casestore"
	"github.com/dhruva-pgrs/triage/internal/domain"
	"github.com/dhruva-pgrs/triage/internal/knowledge"
	"github.com/dhruva-pgrs/triage/internal/logging"
	"github.com/dhruva-pgrs/triage/internal/pattern"
	"github.com/dhruva-pgrs/triage/internal/processor"
	"github.com/dhruva-pgrs/triage/internal/triage"
)

func setupRouter(t *testing.T, pool *processor.Pool) (*gin.Engine, *triage.Pipeline) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.Nop()
	store := casestore.New(casestore.NewMemoryIndex(), nil, logger)
	pipeline := triage.NewPipeline(knowledge.Default(), nil, store, pattern.NewDetector(logger), nil, logger)

	router := gin.New()
	SetupRoutes(router, NewHandler(pipeline, pool, logger), nil)
	return router, pipeline
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProcessEndpoint(t *testing.T) {
	router, _ := setupRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/grievances", ProcessRequest{
		Text:      "ration card rejected, no response for months",
		CitizenID: "CIT-1",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var result domain.AggregateResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Civil Supplies", result.Classification.Department)
	assert.NotEmpty(t, result.CaseID)
	assert.NotNil(t, result.Duplicate)
}

func TestProcessEndpoint_MissingText(t *testing.T) {
	router, _ := setupRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/grievances", ProcessRequest{CitizenID: "CIT-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassifyEndpoint(t *testing.T) {
	router, _ := setupRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/classify", TextRequest{Text: "street light not working"})

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.ClassificationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Municipal Administration", result.Department)
}

func TestDistressEndpoint(t *testing.T) {
	router, _ := setupRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/distress", TextRequest{Text: "children hungry, nothing to eat"})

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.DistressResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.DistressCritical, result.Level)
}

func TestRiskEndpoint(t *testing.T) {
	router, _ := setupRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/risk", RiskRequest{Text: "officer demanded bribe"})

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.RiskResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.RiskHigh, result.Level)
}

func TestQueueEndpoint(t *testing.T) {
	router, pipeline := setupRouter(t, nil)
	pipeline.Process(context.Background(), triage.Input{Text: "pension stopped"})

	w := doJSON(router, http.MethodGet, "/api/v1/cases/queue", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var result QueueResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Total)
}

func TestResolveEndpoint(t *testing.T) {
	router, pipeline := setupRouter(t, nil)
	processed := pipeline.Process(context.Background(), triage.Input{Text: "borewell failed"})

	w := doJSON(router, http.MethodPost, "/api/v1/cases/"+processed.CaseID+"/resolve", ResolveRequest{
		Resolution:     "Repaired",
		ResolutionDays: 4,
	})
	assert.Equal(t, http.StatusAccepted, w.Code)

	// Unknown ids are acknowledged too; resolution is log-and-ignore.
	w = doJSON(router, http.MethodPost, "/api/v1/cases/PGRS-unknown/resolve", ResolveRequest{Resolution: "n/a"})
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestBatchEndpoint_PoolDisabled(t *testing.T) {
	router, _ := setupRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/grievances/batch", BatchRequest{
		Grievances: []ProcessRequest{{Text: "one"}},
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBatchEndpoint_Accepted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logging.Nop()
	store := casestore.New(casestore.NewMemoryIndex(), nil, logger)
	pipeline := triage.NewPipeline(knowledge.Default(), nil, store, pattern.NewDetector(logger), nil, logger)
	pool := processor.NewPool(pipeline, processor.Config{Workers: 2, MaxQueueDepth: 10}, nil, nil, logger)
	pool.Start(context.Background())
	defer pool.Stop()

	router := gin.New()
	SetupRoutes(router, NewHandler(pipeline, pool, logger), nil)

	w := doJSON(router, http.MethodPost, "/api/v1/grievances/batch", BatchRequest{
		Grievances: []ProcessRequest{{Text: "one"}, {Text: "two"}},
	})

	require.Equal(t, http.StatusAccepted, w.Code)
	var result BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Accepted)
	assert.Equal(t, 0, result.Rejected)
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := setupRouter(t, nil)

	for _, path := range []string{"/health", "/ready"} {
		w := doJSON(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(1, 1))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := doJSON(router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, first.Code)

	second := doJSON(router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
