// internal/finder/api/handler.go
package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"activity-finder/internal/common/cache"
	"activity-finder/internal/common/errors"
	"activity-finder/internal/common/logger"
	"activity-finder/internal/common/metrics"
	"activity-finder/internal/common/observability"
	"activity-finder/internal/finder/backend"
	"activity-finder/internal/finder/logstore"
	"activity-finder/internal/finder/params"
	"activity-finder/internal/finder/refdata"
	"activity-finder/internal/models"
	"activity-finder/pkg/settings"

	"github.com/labstack/echo/v4"
)

// Responses are cached for 5 minutes.
const responseCacheTTL = 300 * time.Second

// SearchAlterFunc observes and may mutate a search response before it is
// cached and returned.
type SearchAlterFunc func(resp *models.SearchResponse)

// MoreInfoAlterFunc does the same for the more-info payload.
type MoreInfoAlterFunc func(data map[string]interface{})

var (
	alterMu        sync.RWMutex
	searchAlters   []SearchAlterFunc
	moreInfoAlters []MoreInfoAlterFunc
)

// RegisterSearchAlter adds a search response hook.
func RegisterSearchAlter(fn SearchAlterFunc) {
	alterMu.Lock()
	defer alterMu.Unlock()
	searchAlters = append(searchAlters, fn)
}

// RegisterMoreInfoAlter adds a more-info response hook.
func RegisterMoreInfoAlter(fn MoreInfoAlterFunc) {
	alterMu.Lock()
	defer alterMu.Unlock()
	moreInfoAlters = append(moreInfoAlters, fn)
}

// Handler serves the finder endpoints.
type Handler struct {
	backendID     string
	backend       backend.Backend
	logs          *logstore.Store
	cache         *cache.Cache
	settings      *settings.FinderSettings
	obs           *observability.Observability
	logger        logger.Logger
	searchTimeout time.Duration
}

func NewHandler(
	backendID string,
	b backend.Backend,
	logs *logstore.Store,
	c *cache.Cache,
	s *settings.FinderSettings,
	obs *observability.Observability,
	log logger.Logger,
	searchTimeout time.Duration,
) *Handler {
	if searchTimeout <= 0 {
		searchTimeout = 10 * time.Second
	}
	return &Handler{
		backendID:     backendID,
		backend:       b,
		logs:          logs,
		cache:         c,
		settings:      s,
		obs:           obs,
		logger:        log.WithFields(map[string]interface{}{"component": "api"}),
		searchTimeout: searchTimeout,
	}
}

// RegisterRoutes attaches the finder endpoints to e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/activity-finder")
	g.GET("/search", h.Search)
	g.GET("/more-info", h.MoreInfo)
	g.GET("/register/:log", h.Register)
}

// Search runs a program search. Every request is appended to the search log,
// cache hits included; the response itself is cached for five minutes keyed
// by the filter parameters alone.
func (h *Handler) Search(c echo.Context) error {
	start := time.Now()
	metrics.SearchRequestsTotal.WithLabelValues(h.backendID).Inc()

	values := c.QueryParams()
	ctx := c.Request().Context()

	hashIPAgent := params.HashIPAgent(c.Request().UserAgent(), c.RealIP())
	logID, err := h.logs.CreateSearchLog(ctx, logstore.SearchLogRecord{
		HashIPAgent: hashIPAgent,
		Location:    values.Get("locations"),
		Keyword:     values.Get("keywords"),
		Category:    values.Get("categories"),
		Page:        values.Get("page"),
		Day:         values.Get("days"),
		Age:         values.Get("ages"),
		Sort:        values.Get("sort"),
		Hash:        params.LogHash(values, hashIPAgent),
	})
	if err != nil {
		// The search must not fail on a logging problem, rows just carry a
		// zero correlation ID.
		h.logger.Error("search log insert failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	cid := params.CacheKey(values)

	var resp models.SearchResponse
	if h.cache.Get(ctx, cid, &resp) {
		metrics.ResponseCacheHits.WithLabelValues("search").Inc()
		metrics.SearchDuration.WithLabelValues(h.backendID).Observe(time.Since(start).Seconds())
		h.obs.RecordSearchProcessed(ctx, "cached")
		h.obs.RecordSearchDuration(ctx, time.Since(start), "cached")
		return c.JSON(http.StatusOK, resp)
	}
	metrics.ResponseCacheMisses.WithLabelValues("search").Inc()

	searchCtx, cancel := context.WithTimeout(ctx, h.searchTimeout)
	defer cancel()

	data, err := h.backend.RunProgramSearch(searchCtx, params.Parse(values), logID)
	if err != nil {
		metrics.SearchRequestsFailed.WithLabelValues(h.backendID, string(errors.CodeOf(err))).Inc()
		h.obs.RecordSearchProcessed(ctx, "failed")
		return h.errorResponse(c, err)
	}

	data.ExpanderSectionsConfig = h.settings.RawData()

	alterMu.RLock()
	for _, fn := range searchAlters {
		fn(data)
	}
	alterMu.RUnlock()

	h.cache.Set(ctx, cid, data, responseCacheTTL, refdata.CacheTag)

	metrics.SearchDuration.WithLabelValues(h.backendID).Observe(time.Since(start).Seconds())
	h.obs.RecordSearchProcessed(ctx, "success")
	h.obs.RecordSearchDuration(ctx, time.Since(start), "success")
	return c.JSON(http.StatusOK, data)
}

// MoreInfo delegates to the backend, cached the same way as search but keyed
// by the full parameter set.
func (h *Handler) MoreInfo(c echo.Context) error {
	values := c.QueryParams()
	ctx := c.Request().Context()

	cid := params.MD5(values.Encode())

	var data map[string]interface{}
	if h.cache.Get(ctx, cid, &data) {
		metrics.ResponseCacheHits.WithLabelValues("more-info").Inc()
		return c.JSON(http.StatusOK, data)
	}
	metrics.ResponseCacheMisses.WithLabelValues("more-info").Inc()

	searchCtx, cancel := context.WithTimeout(ctx, h.searchTimeout)
	defer cancel()

	data, err := h.backend.GetProgramsMoreInfo(searchCtx, values)
	if err != nil {
		return h.errorResponse(c, err)
	}

	alterMu.RLock()
	for _, fn := range moreInfoAlters {
		fn(data)
	}
	alterMu.RUnlock()

	h.cache.Set(ctx, cid, data, responseCacheTTL, refdata.CacheTag)

	return c.JSON(http.StatusOK, data)
}

// Register records a register click and redirects to the true target. A
// missing url is a 404 with no side effect; the click is logged only when
// both details and a log ID are present.
func (h *Handler) Register(c echo.Context) error {
	details := c.QueryParam("details")
	target := c.QueryParam("url")

	if target == "" {
		return h.errorResponse(c, errors.NewURLRequiredError())
	}

	logID, _ := strconv.ParseInt(c.Param("log"), 10, 64)
	if details != "" && logID > 0 {
		if err := h.logs.CreateCheckLog(c.Request().Context(), logID, details, logstore.CheckLogTypeRegister); err != nil {
			h.logger.Error("check log insert failed", map[string]interface{}{
				"log_id": logID,
				"error":  err.Error(),
			})
		}
	}

	metrics.RegisterRedirectsTotal.Inc()
	return c.Redirect(http.StatusMovedPermanently, target)
}

func (h *Handler) errorResponse(c echo.Context, err error) error {
	code := errors.CodeOf(err)
	status := errors.HTTPStatus(code)

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", map[string]interface{}{
			"code":  string(code),
			"error": err.Error(),
		})
	}

	return c.JSON(status, map[string]interface{}{
		"code":    string(code),
		"message": err.Error(),
	})
}
