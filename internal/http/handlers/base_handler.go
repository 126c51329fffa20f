// README: Shared handler utilities; maps pipeline errors to HTTP statuses.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n3utr7no/Kaze-AI/internal/ai"
	"github.com/n3utr7no/Kaze-AI/internal/modules/intake"
	"github.com/n3utr7no/Kaze-AI/internal/modules/routing"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePlanError maps the pipeline error taxonomy onto HTTP statuses.
// Security rejections are surfaced distinctly from schema errors, and a
// generation failure names its stage but never echoes model output.
func writePlanError(c *gin.Context, err error) {
	var schemaErr *intake.SchemaError
	var secErr *intake.SecurityError
	var genErr *ai.GenerationError
	switch {
	case errors.As(err, &schemaErr):
		writeJSON(c, http.StatusBadRequest, errorResponse{
			Error:  "invalid request",
			Fields: schemaErr.Fields,
		})
	case errors.As(err, &secErr):
		writeError(c, http.StatusForbidden, "Security alert: request blocked")
	case errors.Is(err, routing.ErrOffDomain):
		writeError(c, http.StatusUnprocessableEntity, "request is outside the supported domains")
	case errors.As(err, &genErr):
		slog.Error("pipeline stage failed", "stage", genErr.Stage, "error", genErr.Err)
		writeError(c, http.StatusInternalServerError, "generation failed at "+genErr.Stage+" stage")
	default:
		slog.Error("unexpected pipeline error", "error", err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
