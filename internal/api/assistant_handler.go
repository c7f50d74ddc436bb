package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"opsCommandCenter/internal/assistant"
)

// Scope values for the assistant context snapshot.
const (
	ScopeSecurity = "security"
	ScopeData     = "data"
	ScopeIT       = "it"
	ScopeAll      = "all"
)

// AskAssistant forwards the operator's question plus a snapshot of the
// selected queue(s) to the chat-completion endpoint. Failures are answered
// with one message per taxonomy case and are never retried.
func (h *Handlers) AskAssistant(c *gin.Context) {
	var req struct {
		Question string `json:"question"`
		Scope    string `json:"scope"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "write a question first"})
		return
	}
	scope := req.Scope
	if scope == "" {
		scope = ScopeAll
	}
	if scope != ScopeSecurity && scope != ScopeData && scope != ScopeIT && scope != ScopeAll {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scope must be security, data, it, or all"})
		return
	}

	ctx := c.Request.Context()
	var block strings.Builder
	if scope == ScopeSecurity || scope == ScopeAll {
		rows, err := h.Events.ListAll(ctx)
		if err != nil {
			storageError(c, "assistant context events", err)
			return
		}
		block.WriteString(assistant.ContextBlock("SECURITY", rows))
	}
	if scope == ScopeData || scope == ScopeAll {
		rows, err := h.Assets.ListAll(ctx)
		if err != nil {
			storageError(c, "assistant context assets", err)
			return
		}
		block.WriteString(assistant.ContextBlock("DATA", rows))
	}
	if scope == ScopeIT || scope == ScopeAll {
		rows, err := h.Requests.ListAll(ctx)
		if err != nil {
			storageError(c, "assistant context requests", err)
			return
		}
		block.WriteString(assistant.ContextBlock("IT", rows))
	}

	answer, err := h.Assistant.ExplainQueue(ctx, req.Question, block.String())
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, assistant.ErrMissingAPIKey):
			status = http.StatusServiceUnavailable
		case errors.Is(err, assistant.ErrPaymentRequired):
			status = http.StatusPaymentRequired
		case errors.Is(err, assistant.ErrTimeout):
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
