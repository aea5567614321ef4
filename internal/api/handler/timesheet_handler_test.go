package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
)

// serviceStub records calls and returns canned values.
type serviceStub struct {
	current    *ports.CurrentTimesheet
	list       []domain.Timesheet
	bulkResult ports.BulkResult

	approvedID string
	sentInput  ports.SendInvoiceInput
	bulkIDs    []string
}

func (s *serviceStub) Current(_ context.Context, contractorID int, payPeriodEnd string) (*ports.CurrentTimesheet, error) {
	return s.current, nil
}
func (s *serviceStub) Find(_ context.Context, id string) (*domain.Timesheet, error) {
	return nil, domain.ErrTimesheetNotFound
}
func (s *serviceStub) UpdateEntry(_ context.Context, _ int, _ ports.UpdateEntryInput) (*ports.CurrentTimesheet, error) {
	return s.current, nil
}
func (s *serviceStub) Save(_ context.Context, _ int, _ string) (*ports.CurrentTimesheet, error) {
	return s.current, nil
}
func (s *serviceStub) Submit(_ context.Context, _ int, _ string) (*ports.CurrentTimesheet, error) {
	return s.current, nil
}
func (s *serviceStub) Approve(_ context.Context, _ int, id string) error {
	s.approvedID = id
	return nil
}
func (s *serviceStub) SendInvoice(_ context.Context, _ int, in ports.SendInvoiceInput) error {
	s.sentInput = in
	return nil
}
func (s *serviceStub) MarkPaid(_ context.Context, _ int, _ string) error { return nil }
func (s *serviceStub) BulkApprove(_ context.Context, _ int, ids []string) ports.BulkResult {
	s.bulkIDs = ids
	return s.bulkResult
}
func (s *serviceStub) BulkSend(_ context.Context, _ int, ids []string) ports.BulkResult {
	s.bulkIDs = ids
	return s.bulkResult
}
func (s *serviceStub) BulkPay(_ context.Context, _ int, ids []string) ports.BulkResult {
	s.bulkIDs = ids
	return s.bulkResult
}
func (s *serviceStub) Viewable(_ context.Context, _ int, _ string) ([]domain.Timesheet, error) {
	return s.list, nil
}

func newHandlerContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", 4)
	c.Set("role", "Super Admin")
	c.Set("name", "Charlie Brown")
	return c, rec
}

func TestPeriods_ReturnsWindow(t *testing.T) {
	h := NewTimesheetHandler(&serviceStub{})
	h.now = func() time.Time { return time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC) }

	c, rec := newHandlerContext(t, http.MethodGet, "/v1/periods", "")
	if err := h.Periods(c); err != nil {
		t.Fatal(err)
	}

	var resp periodsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Periods) != 13 {
		t.Fatalf("expected 13 periods, got %d", len(resp.Periods))
	}
	if resp.Periods[0] != "2024-08-16" {
		t.Errorf("newest period = %s", resp.Periods[0])
	}
}

func TestCurrent_RequiresClaims(t *testing.T) {
	h := NewTimesheetHandler(&serviceStub{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/timesheets/current", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Current(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestCurrent_ReturnsWorkingCopy(t *testing.T) {
	ts := domain.NewDraftTimesheet(4, "2024-07-19")
	h := NewTimesheetHandler(&serviceStub{
		current: &ports.CurrentTimesheet{Timesheet: *ts, Editable: true, Dirty: true},
	})

	c, rec := newHandlerContext(t, http.MethodGet, "/v1/timesheets/current?period=2024-07-19", "")
	if err := h.Current(c); err != nil {
		t.Fatal(err)
	}

	var resp currentTimesheetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Timesheet.ID != "4-2024-07-19" || !resp.Editable || !resp.Dirty {
		t.Errorf("unexpected response %+v", resp)
	}
	if len(resp.Timesheet.Entries) != 14 {
		t.Errorf("entries = %d", len(resp.Timesheet.Entries))
	}
}

func TestUpdateEntry_ValidatesPayload(t *testing.T) {
	h := NewTimesheetHandler(&serviceStub{})

	c, rec := newHandlerContext(t, http.MethodPut, "/v1/timesheets/current/entries",
		`{"pay_period_end":"2024-07-19","date":"2024-07-08","hours":30}`)
	if err := h.UpdateEntry(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 30h day, got %d", rec.Code)
	}

	c, rec = newHandlerContext(t, http.MethodPut, "/v1/timesheets/current/entries",
		`{"pay_period_end":"not-a-date","date":"2024-07-08","hours":8}`)
	if err := h.UpdateEntry(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", rec.Code)
	}
}

func TestApprove_PassesID(t *testing.T) {
	stub := &serviceStub{}
	h := NewTimesheetHandler(stub)

	c, rec := newHandlerContext(t, http.MethodPost, "/v1/timesheets/1-2024-07-19/approve", "")
	c.SetParamNames("id")
	c.SetParamValues("1-2024-07-19")

	if err := h.Approve(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if stub.approvedID != "1-2024-07-19" {
		t.Errorf("approved id = %s", stub.approvedID)
	}
}

func TestSend_ForwardsOverrides(t *testing.T) {
	stub := &serviceStub{}
	h := NewTimesheetHandler(stub)

	c, rec := newHandlerContext(t, http.MethodPost, "/v1/timesheets/1-2024-07-19/send",
		`{"service":"Custom","description":"July"}`)
	c.SetParamNames("id")
	c.SetParamValues("1-2024-07-19")

	if err := h.Send(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if stub.sentInput.TimesheetID != "1-2024-07-19" || stub.sentInput.Service != "Custom" {
		t.Errorf("input = %+v", stub.sentInput)
	}
}

func TestBulkApprove_ReturnsCounts(t *testing.T) {
	stub := &serviceStub{bulkResult: ports.BulkResult{Applied: 2, Skipped: 1}}
	h := NewTimesheetHandler(stub)

	c, rec := newHandlerContext(t, http.MethodPost, "/v1/timesheets/bulk/approve",
		`{"timesheet_ids":["a","b","c"]}`)
	if err := h.BulkApprove(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp bulkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Applied != 2 || resp.Skipped != 1 {
		t.Errorf("response = %+v", resp)
	}
	if len(stub.bulkIDs) != 3 {
		t.Errorf("ids forwarded = %v", stub.bulkIDs)
	}
}

func TestBulkApprove_RejectsEmptyList(t *testing.T) {
	h := NewTimesheetHandler(&serviceStub{})

	c, rec := newHandlerContext(t, http.MethodPost, "/v1/timesheets/bulk/approve",
		`{"timesheet_ids":[]}`)
	if err := h.BulkApprove(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty ids, got %d", rec.Code)
	}
}

func TestList_DefaultsToAllPeriods(t *testing.T) {
	ts := domain.NewDraftTimesheet(1, "2024-07-19")
	ts.Status = domain.StatusSubmitted
	h := NewTimesheetHandler(&serviceStub{list: []domain.Timesheet{*ts}})

	c, rec := newHandlerContext(t, http.MethodGet, "/v1/timesheets", "")
	if err := h.List(c); err != nil {
		t.Fatal(err)
	}

	var resp timesheetListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Timesheets) != 1 || resp.Timesheets[0].Status != "Submitted" {
		t.Errorf("response = %+v", resp)
	}
}
