package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"opsCommandCenter/models"
	"opsCommandCenter/repository"
)

// Severity and lifecycle values accepted on create/update. Storage does not
// enforce these; the API layer is the caller that validates.
var (
	severities = map[string]bool{"Low": true, "Medium": true, "High": true, "Critical": true}
	lifecycles = map[string]bool{"Open": true, "In Progress": true, "Resolved": true, "Closed": true}
)

// ListEvents returns the security queue, newest raised first.
func (h *Handlers) ListEvents(c *gin.Context) {
	rows, err := h.Events.ListAll(c.Request.Context())
	if err != nil {
		storageError(c, "list events", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateEvent inserts a new security event.
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req struct {
		EventKey  string `json:"event_key"`
		EventKind string `json:"event_kind"`
		Impact    string `json:"impact"`
		State     string `json:"state"`
		RaisedAt  string `json:"raised_at"`
		ClearedAt string `json:"cleared_at"`
		Owner     string `json:"owner"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	trimAll(&req.EventKey, &req.EventKind, &req.RaisedAt, &req.ClearedAt, &req.Owner)
	if req.EventKey == "" || req.EventKind == "" || req.RaisedAt == "" || req.Owner == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_key, event_kind, raised_at, and owner are required"})
		return
	}
	if !severities[req.Impact] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "impact must be Low, Medium, High, or Critical"})
		return
	}
	if !lifecycles[req.State] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state must be Open, In Progress, Resolved, or Closed"})
		return
	}

	e := &models.SecurityEvent{
		EventKey:  req.EventKey,
		EventKind: req.EventKind,
		Impact:    models.Impact(req.Impact),
		State:     models.EventState(req.State),
		RaisedAt:  req.RaisedAt,
		ClearedAt: optional(req.ClearedAt),
		Owner:     req.Owner,
		Notes:     strings.TrimSpace(req.Notes),
	}
	if err := h.Events.Insert(c.Request.Context(), e); err != nil {
		insertError(c, "event", err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// UpdateEventState sets the lifecycle state of one event. A key that matches
// nothing is a silent no-op, answered 204 either way.
func (h *Handlers) UpdateEventState(c *gin.Context) {
	var req struct {
		State string `json:"state"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !lifecycles[req.State] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state must be Open, In Progress, Resolved, or Closed"})
		return
	}
	if err := h.Events.UpdateStatus(c.Request.Context(), c.Param("key"), req.State); err != nil {
		storageError(c, "update event state", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAssets returns the data catalog, newest created first.
func (h *Handlers) ListAssets(c *gin.Context) {
	rows, err := h.Assets.ListAll(c.Request.Context())
	if err != nil {
		storageError(c, "list assets", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateAsset registers a new data asset.
func (h *Handlers) CreateAsset(c *gin.Context) {
	var req struct {
		AssetName string  `json:"asset_name"`
		Steward   string  `json:"steward"`
		Origin    string  `json:"origin"`
		SizeMB    float64 `json:"size_mb"`
		RowsEst   int64   `json:"rows_est"`
		CreatedOn string  `json:"created_on"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	trimAll(&req.AssetName, &req.Steward, &req.Origin, &req.CreatedOn)
	if req.AssetName == "" || req.Steward == "" || req.Origin == "" || req.CreatedOn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asset_name, steward, origin, and created_on are required"})
		return
	}
	if req.SizeMB < 0 || req.RowsEst < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size_mb and rows_est must be non-negative"})
		return
	}

	a := &models.DataAsset{
		AssetName: req.AssetName,
		Steward:   req.Steward,
		Origin:    req.Origin,
		SizeMB:    req.SizeMB,
		RowsEst:   req.RowsEst,
		CreatedOn: req.CreatedOn,
	}
	if err := h.Assets.Insert(c.Request.Context(), a); err != nil {
		insertError(c, "asset", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// UpdateAssetSteward reassigns stewardship of one asset.
func (h *Handlers) UpdateAssetSteward(c *gin.Context) {
	var req struct {
		Steward string `json:"steward"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Steward) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "steward is required"})
		return
	}
	if err := h.Assets.UpdateStatus(c.Request.Context(), c.Param("key"), strings.TrimSpace(req.Steward)); err != nil {
		storageError(c, "update asset steward", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRequests returns the service desk queue, newest opened first.
func (h *Handlers) ListRequests(c *gin.Context) {
	rows, err := h.Requests.ListAll(c.Request.Context())
	if err != nil {
		storageError(c, "list requests", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateRequest opens a new IT service request.
func (h *Handlers) CreateRequest(c *gin.Context) {
	var req struct {
		ReqKey   string `json:"req_key"`
		Topic    string `json:"topic"`
		Urgency  string `json:"urgency"`
		Phase    string `json:"phase"`
		OpenedAt string `json:"opened_at"`
		ClosedAt string `json:"closed_at"`
		Assignee string `json:"assignee"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	trimAll(&req.ReqKey, &req.Topic, &req.OpenedAt, &req.ClosedAt, &req.Assignee)
	if req.ReqKey == "" || req.Topic == "" || req.OpenedAt == "" || req.Assignee == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "req_key, topic, opened_at, and assignee are required"})
		return
	}
	if !severities[req.Urgency] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "urgency must be Low, Medium, High, or Critical"})
		return
	}
	if !lifecycles[req.Phase] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phase must be Open, In Progress, Resolved, or Closed"})
		return
	}

	r := &models.ITRequest{
		ReqKey:   req.ReqKey,
		Topic:    req.Topic,
		Urgency:  models.Urgency(req.Urgency),
		Phase:    models.RequestPhase(req.Phase),
		OpenedAt: req.OpenedAt,
		ClosedAt: optional(req.ClosedAt),
		Assignee: req.Assignee,
	}
	if err := h.Requests.Insert(c.Request.Context(), r); err != nil {
		insertError(c, "request", err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// UpdateRequestPhase advances one service request through its lifecycle.
func (h *Handlers) UpdateRequestPhase(c *gin.Context) {
	var req struct {
		Phase string `json:"phase"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !lifecycles[req.Phase] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phase must be Open, In Progress, Resolved, or Closed"})
		return
	}
	if err := h.Requests.UpdateStatus(c.Request.Context(), c.Param("key"), req.Phase); err != nil {
		storageError(c, "update request phase", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Overview returns the KPI counters shown at the top of each dashboard tab.
func (h *Handlers) Overview(c *gin.Context) {
	ctx := c.Request.Context()
	events, err := h.Events.ListAll(ctx)
	if err != nil {
		storageError(c, "overview events", err)
		return
	}
	assets, err := h.Assets.ListAll(ctx)
	if err != nil {
		storageError(c, "overview assets", err)
		return
	}
	requests, err := h.Requests.ListAll(ctx)
	if err != nil {
		storageError(c, "overview requests", err)
		return
	}

	var openEvents, inProgressEvents, highCritical int
	for _, e := range events {
		switch e.State {
		case models.EventStateOpen:
			openEvents++
		case models.EventStateInProgress:
			inProgressEvents++
		}
		if e.Impact == models.ImpactHigh || e.Impact == models.ImpactCritical {
			highCritical++
		}
	}
	var totalSizeMB float64
	var totalRows int64
	for _, a := range assets {
		totalSizeMB += a.SizeMB
		totalRows += a.RowsEst
	}
	var openRequests, urgentRequests int
	for _, r := range requests {
		if r.Phase == models.RequestPhaseOpen || r.Phase == models.RequestPhaseInProgress {
			openRequests++
		}
		if r.Urgency == models.UrgencyHigh || r.Urgency == models.UrgencyCritical {
			urgentRequests++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"security": gin.H{
			"total":         len(events),
			"open":          openEvents,
			"in_progress":   inProgressEvents,
			"high_critical": highCritical,
		},
		"data": gin.H{
			"total":         len(assets),
			"total_size_mb": totalSizeMB,
			"total_rows":    totalRows,
		},
		"it": gin.H{
			"total":  len(requests),
			"open":   openRequests,
			"urgent": urgentRequests,
		},
	})
}

func insertError(c *gin.Context, what string, err error) {
	if errors.Is(err, repository.ErrDuplicateKey) {
		c.JSON(http.StatusConflict, gin.H{"error": "a " + what + " with that key already exists"})
		return
	}
	storageError(c, "insert "+what, err)
}

func storageError(c *gin.Context, op string, err error) {
	slog.Error(op, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
