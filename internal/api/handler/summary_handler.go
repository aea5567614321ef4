package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cluedotech/timesheetpro/internal/api/metrics"
	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
	"github.com/cluedotech/timesheetpro/internal/core/service"
)

// SummaryHandler generates AI work summaries for a timesheet's entries.
type SummaryHandler struct {
	timesheets ports.TimesheetService
	summaries  ports.SummaryService
}

func NewSummaryHandler(timesheets ports.TimesheetService, summaries ports.SummaryService) *SummaryHandler {
	return &SummaryHandler{timesheets: timesheets, summaries: summaries}
}

// Generate handles POST /v1/timesheets/:id/summary.
//
// Contractors may summarise only their own timesheets; managers and the super
// admin may summarise any.
//
// @Summary      Generate a prose summary of a timesheet's work entries
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Timesheet id"
// @Success      200  {object}  summaryResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/timesheets/{id}/summary [post]
func (h *SummaryHandler) Generate(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ts, err := h.timesheets.Find(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if role == domain.RoleContractor && ts.ContractorID != userID {
		return domain.ErrForbidden
	}

	summary := h.summaries.Summarize(c.Request().Context(), ts.Entries)

	outcome := "generated"
	switch summary {
	case service.SummaryNoDetails:
		outcome = "empty"
	case service.SummaryUnavailable:
		outcome = "error"
	}
	metrics.SummariesTotal.WithLabelValues(outcome).Inc()

	return c.JSON(http.StatusOK, summaryResponse{Summary: summary})
}
