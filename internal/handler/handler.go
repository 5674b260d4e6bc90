package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"attendsheet/internal/attendance"
	"attendsheet/internal/metrics"
	"attendsheet/internal/store"
)

// Handler serves the records API.
type Handler struct {
	repo  *attendance.Repository
	cache *store.RecordCache // nil when redis is not configured
}

// New builds a handler. cache may be nil.
func New(repo *attendance.Repository, cache *store.RecordCache) *Handler {
	return &Handler{repo: repo, cache: cache}
}

// Register wires the API routes onto the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/records", h.ListRecords)
	api.POST("/records", h.CreateRecord)
	api.PUT("/records/:id", h.UpdateRecord)
	api.DELETE("/records/:id", h.DeleteRecord)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UnixMilli()})
}

// ListRecords returns every record, newest first unless ?sort=asc.
func (h *Handler) ListRecords(c *gin.Context) {
	order := attendance.ParseSortOrder(c.Query("sort"))

	if records, ok := h.cache.Get(c.Request.Context(), order); ok {
		metrics.CacheHits.WithLabelValues("hit").Inc()
		c.JSON(http.StatusOK, records)
		return
	}
	if h.cache != nil {
		metrics.CacheHits.WithLabelValues("miss").Inc()
	}

	records, err := h.repo.ReadAll(c.Request.Context(), order)
	if err != nil {
		metrics.RecordOps.WithLabelValues("list", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.cache.Set(c.Request.Context(), order, records)
	metrics.RecordOps.WithLabelValues("list", "ok").Inc()
	c.JSON(http.StatusOK, records)
}

// CreateRecord inserts a new record. Absent fields default to empty strings;
// an incomplete record is accepted, not rejected.
func (h *Handler) CreateRecord(c *gin.Context) {
	var f attendance.Fields
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, createdAt, err := h.repo.Create(c.Request.Context(), f)
	if err != nil {
		metrics.RecordOps.WithLabelValues("create", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.cache.Invalidate(c.Request.Context())
	metrics.RecordOps.WithLabelValues("create", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"id": id, "createdAt": createdAt})
}

// UpdateRecord overwrites the full record addressed by the path id.
func (h *Handler) UpdateRecord(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		metrics.RecordOps.WithLabelValues("update", "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	var f attendance.Fields
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changes, err := h.repo.Update(c.Request.Context(), id, f)
	if err != nil {
		metrics.RecordOps.WithLabelValues("update", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if changes == 0 {
		metrics.RecordOps.WithLabelValues("update", "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	h.cache.Invalidate(c.Request.Context())
	metrics.RecordOps.WithLabelValues("update", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"changes": changes})
}

// DeleteRecord removes the record addressed by the path id.
func (h *Handler) DeleteRecord(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		metrics.RecordOps.WithLabelValues("delete", "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	changes, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		metrics.RecordOps.WithLabelValues("delete", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if changes == 0 {
		metrics.RecordOps.WithLabelValues("delete", "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	h.cache.Invalidate(c.Request.Context())
	metrics.RecordOps.WithLabelValues("delete", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"changes": changes})
}

// parseID coerces a path id. A non-numeric id addresses nothing, so callers
// report it as not-found rather than a bad request.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
