package ports

import (
	"context"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
)

// AllPeriods selects every pay period in list queries.
const AllPeriods = "all"

// CurrentTimesheet is the contractor's working view of one pay period.
type CurrentTimesheet struct {
	Timesheet domain.Timesheet
	// Editable is true only for a Draft whose period is the current one.
	Editable bool
	// Dirty reports unsaved working-copy edits.
	Dirty bool
}

// UpdateEntryInput carries one day's edit to the working copy.
type UpdateEntryInput struct {
	PayPeriodEnd    string
	Date            string
	Hours           float64
	TaskName        string
	TaskDescription string
}

// SendInvoiceInput carries the super-admin's send parameters. Empty Service or
// Description fall back to the contractor-derived defaults.
type SendInvoiceInput struct {
	TimesheetID string
	Service     string
	Description string
}

// BulkResult summarises a bulk transition: ids whose precondition matched were
// applied, the rest were silently skipped.
type BulkResult struct {
	Applied int
	Skipped int
}

// TimesheetService is the lifecycle engine: it owns the timesheet collection,
// derives the current working timesheet, executes status transitions, and
// filters visible timesheets per role. Operations whose precondition is unmet
// are silent no-ops, never errors.
type TimesheetService interface {
	// Current resolves the contractor's timesheet for the period, lazily
	// materialising a zero-filled Draft working copy when none exists.
	Current(ctx context.Context, contractorID int, payPeriodEnd string) (*CurrentTimesheet, error)
	// Find returns the stored timesheet with the given id.
	Find(ctx context.Context, timesheetID string) (*domain.Timesheet, error)
	UpdateEntry(ctx context.Context, contractorID int, in UpdateEntryInput) (*CurrentTimesheet, error)
	Save(ctx context.Context, contractorID int, payPeriodEnd string) (*CurrentTimesheet, error)
	Submit(ctx context.Context, contractorID int, payPeriodEnd string) (*CurrentTimesheet, error)

	Approve(ctx context.Context, actorID int, timesheetID string) error
	SendInvoice(ctx context.Context, actorID int, in SendInvoiceInput) error
	MarkPaid(ctx context.Context, actorID int, timesheetID string) error

	BulkApprove(ctx context.Context, actorID int, timesheetIDs []string) BulkResult
	BulkSend(ctx context.Context, actorID int, timesheetIDs []string) BulkResult
	BulkPay(ctx context.Context, actorID int, timesheetIDs []string) BulkResult

	// Viewable returns the role-filtered timesheet list for the user, scoped to
	// payPeriodEnd unless it is AllPeriods, sorted by period end descending.
	Viewable(ctx context.Context, userID int, payPeriodEnd string) ([]domain.Timesheet, error)
}
