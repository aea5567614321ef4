package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cluedotech/timesheetpro/internal/api/metrics"
	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
)

// TimesheetHandler handles HTTP requests for the timesheet lifecycle.
type TimesheetHandler struct {
	service ports.TimesheetService
	now     func() time.Time
}

func NewTimesheetHandler(service ports.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{service: service, now: time.Now}
}

// Periods handles GET /v1/periods.
//
// @Summary      List selectable pay period end dates
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  periodsResponse
// @Router       /v1/periods [get]
func (h *TimesheetHandler) Periods(c echo.Context) error {
	return c.JSON(http.StatusOK, periodsResponse{Periods: domain.PeriodEnds(h.now())})
}

// Current handles GET /v1/timesheets/current.
//
// @Summary      Get the contractor's working timesheet for a pay period
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Param        period  query     string  false  "Pay period end date (YYYY-MM-DD); defaults to the current period"
// @Success      200     {object}  currentTimesheetResponse
// @Failure      401     {object}  map[string]string
// @Router       /v1/timesheets/current [get]
func (h *TimesheetHandler) Current(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	period := c.QueryParam("period")
	if period == "" {
		period = domain.PeriodEnd(h.now())
	}

	cur, err := h.service.Current(c.Request().Context(), userID, period)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCurrentResponse(cur))
}

// UpdateEntry handles PUT /v1/timesheets/current/entries.
//
// @Summary      Edit one day of the working timesheet
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateEntryRequest  true  "Entry edit"
// @Success      200   {object}  currentTimesheetResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/timesheets/current/entries [put]
func (h *TimesheetHandler) UpdateEntry(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	cur, err := h.service.UpdateEntry(c.Request().Context(), userID, ports.UpdateEntryInput{
		PayPeriodEnd:    req.PayPeriodEnd,
		Date:            req.Date,
		Hours:           req.Hours,
		TaskName:        req.TaskName,
		TaskDescription: req.TaskDescription,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCurrentResponse(cur))
}

// Save handles POST /v1/timesheets/current/save.
//
// @Summary      Persist the working timesheet without changing its status
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      periodRequest  true  "Pay period"
// @Success      200   {object}  currentTimesheetResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/timesheets/current/save [post]
func (h *TimesheetHandler) Save(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req periodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	cur, err := h.service.Save(c.Request().Context(), userID, req.PayPeriodEnd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCurrentResponse(cur))
}

// Submit handles POST /v1/timesheets/current/submit.
//
// @Summary      Submit the working timesheet for manager approval
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      periodRequest  true  "Pay period"
// @Success      200   {object}  currentTimesheetResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/timesheets/current/submit [post]
func (h *TimesheetHandler) Submit(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req periodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	cur, err := h.service.Submit(c.Request().Context(), userID, req.PayPeriodEnd)
	if err != nil {
		return err
	}
	if cur.Timesheet.Status == domain.StatusSubmitted {
		metrics.TransitionsTotal.WithLabelValues(string(domain.StatusSubmitted)).Inc()
	}
	return c.JSON(http.StatusOK, toCurrentResponse(cur))
}

// List handles GET /v1/timesheets.
//
// @Summary      List timesheets visible to the caller
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Param        period  query     string  false  "Pay period end date (YYYY-MM-DD) or 'all'"  default(all)
// @Success      200     {object}  timesheetListResponse
// @Failure      401     {object}  map[string]string
// @Router       /v1/timesheets [get]
func (h *TimesheetHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	period := c.QueryParam("period")
	if period == "" {
		period = ports.AllPeriods
	}

	list, err := h.service.Viewable(c.Request().Context(), userID, period)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(list))
}

// Approve handles POST /v1/timesheets/:id/approve.
//
// @Summary      Approve a submitted timesheet and draw an invoice number
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Timesheet id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /v1/timesheets/{id}/approve [post]
func (h *TimesheetHandler) Approve(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Approve(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	metrics.TransitionsTotal.WithLabelValues(string(domain.StatusApproved)).Inc()
	return c.NoContent(http.StatusNoContent)
}

// Send handles POST /v1/timesheets/:id/send.
//
// @Summary      Send an approved timesheet's invoice to the client
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true   "Timesheet id"
// @Param        body  body  sendInvoiceRequest  false  "Invoice overrides"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /v1/timesheets/{id}/send [post]
func (h *TimesheetHandler) Send(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sendInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if err := h.service.SendInvoice(c.Request().Context(), userID, ports.SendInvoiceInput{
		TimesheetID: c.Param("id"),
		Service:     req.Service,
		Description: req.Description,
	}); err != nil {
		return err
	}
	metrics.TransitionsTotal.WithLabelValues(string(domain.StatusSent)).Inc()
	return c.NoContent(http.StatusNoContent)
}

// Pay handles POST /v1/timesheets/:id/pay.
//
// @Summary      Mark a sent invoice as paid
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Timesheet id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /v1/timesheets/{id}/pay [post]
func (h *TimesheetHandler) Pay(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkPaid(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	metrics.TransitionsTotal.WithLabelValues(string(domain.StatusPaid)).Inc()
	return c.NoContent(http.StatusNoContent)
}

// BulkApprove handles POST /v1/timesheets/bulk/approve.
//
// @Summary      Approve a batch of submitted timesheets
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkRequest  true  "Timesheet ids"
// @Success      200   {object}  bulkResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/timesheets/bulk/approve [post]
func (h *TimesheetHandler) BulkApprove(c echo.Context) error {
	return h.bulk(c, "approve", domain.StatusApproved, h.service.BulkApprove)
}

// BulkSend handles POST /v1/timesheets/bulk/send.
//
// @Summary      Send a batch of approved invoices
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkRequest  true  "Timesheet ids"
// @Success      200   {object}  bulkResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/timesheets/bulk/send [post]
func (h *TimesheetHandler) BulkSend(c echo.Context) error {
	return h.bulk(c, "send", domain.StatusSent, h.service.BulkSend)
}

// BulkPay handles POST /v1/timesheets/bulk/pay.
//
// @Summary      Mark a batch of sent invoices as paid
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkRequest  true  "Timesheet ids"
// @Success      200   {object}  bulkResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/timesheets/bulk/pay [post]
func (h *TimesheetHandler) BulkPay(c echo.Context) error {
	return h.bulk(c, "pay", domain.StatusPaid, h.service.BulkPay)
}

type bulkFunc func(ctx context.Context, actorID int, timesheetIDs []string) ports.BulkResult

func (h *TimesheetHandler) bulk(c echo.Context, operation string, status domain.TimesheetStatus, fn bulkFunc) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req bulkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	res := fn(c.Request().Context(), userID, req.TimesheetIDs)
	metrics.TransitionsTotal.WithLabelValues(string(status)).Add(float64(res.Applied))
	metrics.BulkSkippedTotal.WithLabelValues(operation).Add(float64(res.Skipped))
	return c.JSON(http.StatusOK, bulkResponse{Applied: res.Applied, Skipped: res.Skipped})
}
