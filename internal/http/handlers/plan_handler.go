// README: /generate_plan handler.
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n3utr7no/Kaze-AI/internal/modules/intake"
	"github.com/n3utr7no/Kaze-AI/internal/service"
)

type PlanHandler struct {
	planner *service.Planner
}

func NewPlanHandler(planner *service.Planner) *PlanHandler {
	return &PlanHandler{planner: planner}
}

// Generate handles POST /generate_plan. The body goes through ParseRequest
// rather than ShouldBindJSON so type violations come back per field. No
// per-request deadline is imposed here: a slow upstream call just extends
// the request's latency, bounded by the transport clients' own timeouts.
func (h *PlanHandler) Generate(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable body")
		return
	}

	req, err := intake.ParseRequest(body)
	if err != nil {
		writePlanError(c, err)
		return
	}

	resp, err := h.planner.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}
