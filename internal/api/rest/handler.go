package rest

import (
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roundlabs/quadmatch/internal/adapter"
	"github.com/roundlabs/quadmatch/internal/api/rest/dto"
	"github.com/roundlabs/quadmatch/internal/domain"
	"github.com/roundlabs/quadmatch/internal/logger"
	"github.com/roundlabs/quadmatch/internal/recompute"
	"github.com/roundlabs/quadmatch/internal/store"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetRoundMatch synchronously recomputes and returns a round's matching
	// distribution
	// GET /api/v1/round/:chainId/:roundId/match
	GetRoundMatch(c *gin.Context)

	// GetMatchPreview evaluates how a hypothetical tip would change a
	// project's match, without persisting anything
	// GET /api/v1/round/:chainId/:roundId/match-preview?projectId=<id>&tipAmount=<wei>&token=<address>&contributor=<address>
	GetMatchPreview(c *gin.Context)

	// GetRoundSummary synchronously recomputes and returns a round's
	// contribution summary
	// GET /api/v1/round/:chainId/:roundId/summary
	GetRoundSummary(c *gin.Context)

	// CheckTipsIncluded reports, per publication, whether the stored tip
	// watermark already covers the caller's most recent tip
	// POST /api/v1/tips/:chainId/included
	CheckTipsIncluded(c *gin.Context)

	// ForceRecompute recomputes a round's match on demand (requires
	// authentication)
	// POST /api/v1/round/:chainId/:roundId/recompute
	ForceRecompute(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	recomputer recompute.Recomputer
	store      store.Store
	cache      adapter.RedisClient
	json       adapter.JSON
	cacheTTL   time.Duration
}

// NewHandler creates a new REST API handler. A nil cache disables response
// caching.
func NewHandler(
	recomputer recompute.Recomputer,
	st store.Store,
	cache adapter.RedisClient,
	jsonAdapter adapter.JSON,
	cacheTTL time.Duration,
) Handler {
	return &handler{
		recomputer: recomputer,
		store:      st,
		cache:      cache,
		json:       jsonAdapter,
		cacheTTL:   cacheTTL,
	}
}

// GetRoundMatch synchronously recomputes a round's matching distribution
func (h *handler) GetRoundMatch(c *gin.Context) {
	chainID, roundID, ok := parseRoundParams(c)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("round:%s:%s:match", chainID, roundID)
	if h.serveCached(c, cacheKey) {
		return
	}

	result, err := h.recomputer.UpdateRoundMatch(c.Request.Context(), chainID, roundID)
	if err != nil {
		if errors.Is(err, domain.ErrRoundNotFound) {
			respondNotFound(c, "Round not found")
			return
		}
		respondInternalError(c, err, "Failed to recompute round match")
		return
	}

	h.respondCached(c, cacheKey, dto.FromMatchResult(result))
}

// GetMatchPreview evaluates a hypothetical tip without persisting anything
func (h *handler) GetMatchPreview(c *gin.Context) {
	chainID, roundID, ok := parseRoundParams(c)
	if !ok {
		return
	}

	projectID := c.Query("projectId")
	if projectID == "" {
		respondBadRequest(c, "projectId is required")
		return
	}

	token := c.Query("token")
	if !common.IsHexAddress(token) {
		respondBadRequest(c, "token must be a hex address")
		return
	}

	contributor := c.Query("contributor")
	if !common.IsHexAddress(contributor) {
		respondBadRequest(c, "contributor must be a hex address")
		return
	}

	tipAmount, ok := new(big.Int).SetString(c.Query("tipAmount"), 10)
	if !ok || tipAmount.Sign() <= 0 {
		respondBadRequest(c, "tipAmount must be a positive integer in raw token units")
		return
	}

	preview, err := h.recomputer.PreviewMatch(c.Request.Context(), recompute.PreviewInput{
		ChainID:     chainID,
		RoundID:     roundID,
		ProjectID:   projectID,
		Contributor: contributor,
		Token:       token,
		TipAmount:   tipAmount,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRoundNotFound) {
			respondNotFound(c, "Round not found")
			return
		}
		respondInternalError(c, err, "Failed to preview match")
		return
	}

	respondOK(c, preview)
}

// GetRoundSummary synchronously recomputes a round's contribution summary
func (h *handler) GetRoundSummary(c *gin.Context) {
	chainID, roundID, ok := parseRoundParams(c)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("round:%s:%s:summary", chainID, roundID)
	if h.serveCached(c, cacheKey) {
		return
	}

	result, err := h.recomputer.UpdateRoundSummary(c.Request.Context(), chainID, roundID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoundNotFound):
			respondNotFound(c, "Round not found")
		case errors.Is(err, domain.ErrUnsupportedVotingStrategy):
			respondBadRequest(c, "Round's voting strategy does not support summaries")
		default:
			respondInternalError(c, err, "Failed to recompute round summary")
		}
		return
	}

	h.respondCached(c, cacheKey, dto.FromSummaryResult(result))
}

// CheckTipsIncluded reports which publications' newest tips the stored
// watermarks already cover
func (h *handler) CheckTipsIncluded(c *gin.Context) {
	chainID, ok := domain.ParseChainID(c.Param("chainId"))
	if !ok {
		respondBadRequest(c, "Unsupported chain id")
		return
	}

	var req dto.TipsIncludedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	included := make(map[string]bool, len(req.PublicationsToCheck))
	for _, check := range req.PublicationsToCheck {
		tip, err := h.store.GetMostRecentTip(
			c.Request.Context(),
			chainID,
			strings.ToLower(check.RoundID),
			check.PublicationID,
		)
		if err != nil {
			respondInternalError(c, err, "Failed to check tip inclusion")
			return
		}
		included[check.PublicationID] = tip != nil && tip.Timestamp >= check.MostRecentCreatedAt
	}

	respondOK(c, included)
}

// ForceRecompute recomputes a round's match on demand, bypassing and
// refreshing the cached response
func (h *handler) ForceRecompute(c *gin.Context) {
	chainID, roundID, ok := parseRoundParams(c)
	if !ok {
		return
	}

	result, err := h.recomputer.UpdateRoundMatch(c.Request.Context(), chainID, roundID)
	if err != nil {
		if errors.Is(err, domain.ErrRoundNotFound) {
			respondNotFound(c, "Round not found")
			return
		}
		respondInternalError(c, err, "Failed to recompute round match")
		return
	}

	// Overwrite the cached GET response so readers see the forced result
	h.respondCached(c, fmt.Sprintf("round:%s:%s:match", chainID, roundID), dto.FromMatchResult(result))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "quadmatch-api",
	})
}

// parseRoundParams validates the chainId and roundId path parameters.
// It writes the error response itself when validation fails.
func parseRoundParams(c *gin.Context) (domain.ChainID, string, bool) {
	chainID, ok := domain.ParseChainID(c.Param("chainId"))
	if !ok {
		respondBadRequest(c, "Unsupported chain id")
		return "", "", false
	}

	roundID := c.Param("roundId")
	if !common.IsHexAddress(roundID) {
		respondBadRequest(c, "roundId must be a hex address")
		return "", "", false
	}

	return chainID, strings.ToLower(roundID), true
}

// serveCached writes the cached response for key if one exists. Cache
// failures are treated as misses.
func (h *handler) serveCached(c *gin.Context, key string) bool {
	if h.cache == nil || h.cacheTTL <= 0 {
		return false
	}

	cached, err := h.cache.GetString(c.Request.Context(), key)
	if err != nil {
		logger.WarnCtx(c.Request.Context(), "Failed to read response cache",
			zap.String("key", key),
			zap.Error(err))
		return false
	}
	if cached == "" {
		return false
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
	return true
}

// respondCached sends the payload wrapped in the envelope and stores the
// serialized response under key, best effort
func (h *handler) respondCached(c *gin.Context, key string, data interface{}) {
	payload, err := h.json.Marshal(dto.Response{Success: true, Data: data})
	if err != nil {
		respondOK(c, data)
		return
	}

	if h.cache != nil && h.cacheTTL > 0 {
		if err := h.cache.SetString(c.Request.Context(), key, string(payload), h.cacheTTL); err != nil {
			logger.WarnCtx(c.Request.Context(), "Failed to write response cache",
				zap.String("key", key),
				zap.Error(err))
		}
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
