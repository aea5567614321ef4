package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
	"github.com/cluedotech/timesheetpro/internal/core/store"
)

const defaultInvoiceService = "Consulting Services"

// TimesheetEngine implements ports.TimesheetService. It keeps unsaved working
// copies of Draft timesheets in memory; the durable collection lives in the
// store. Operations whose precondition is unmet return without error and
// without touching state.
type TimesheetEngine struct {
	store    *store.Store
	seq      ports.InvoiceSequence
	notifier ports.NotificationService
	deliver  ports.Deliverer // optional side channel
	log      zerolog.Logger
	now      func() time.Time

	mu     sync.Mutex
	drafts map[string]*draftState
}

// draftState is a contractor's working copy plus its unsaved-changes flag.
type draftState struct {
	ts    *domain.Timesheet
	dirty bool
}

func NewTimesheetEngine(
	st *store.Store,
	seq ports.InvoiceSequence,
	notifier ports.NotificationService,
	deliver ports.Deliverer,
	log zerolog.Logger,
) *TimesheetEngine {
	return &TimesheetEngine{
		store:    st,
		seq:      seq,
		notifier: notifier,
		deliver:  deliver,
		log:      log,
		now:      time.Now,
		drafts:   make(map[string]*draftState),
	}
}

// SetClock overrides the engine clock. Intended for tests.
func (e *TimesheetEngine) SetClock(now func() time.Time) { e.now = now }

// Current resolves the contractor's timesheet for the period, materialising a
// zero-filled Draft working copy the first time an empty period is viewed.
func (e *TimesheetEngine) Current(_ context.Context, contractorID int, payPeriodEnd string) (*ports.CurrentTimesheet, error) {
	if payPeriodEnd == "" {
		payPeriodEnd = domain.PeriodEnd(e.now())
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.resolveLocked(contractorID, payPeriodEnd)
	return e.viewLocked(st), nil
}

// Find returns the stored timesheet with the given id.
func (e *TimesheetEngine) Find(_ context.Context, timesheetID string) (*domain.Timesheet, error) {
	return e.store.FindTimesheet(timesheetID)
}

// resolveLocked returns the working copy for (contractor, period), installing
// one from the stored record or a fresh zero-filled Draft as needed.
func (e *TimesheetEngine) resolveLocked(contractorID int, payPeriodEnd string) *draftState {
	id := domain.TimesheetID(contractorID, payPeriodEnd)
	if st, ok := e.drafts[id]; ok {
		return st
	}

	if stored, err := e.store.FindTimesheet(id); err == nil {
		st := &draftState{ts: stored}
		if stored.Status == domain.StatusDraft {
			e.drafts[id] = st
		}
		return st
	}

	st := &draftState{ts: domain.NewDraftTimesheet(contractorID, payPeriodEnd)}
	e.drafts[id] = st
	return st
}

func (e *TimesheetEngine) viewLocked(st *draftState) *ports.CurrentTimesheet {
	return &ports.CurrentTimesheet{
		Timesheet: *st.ts.Clone(),
		Editable:  e.editable(st.ts),
		Dirty:     st.dirty,
	}
}

// editable: Draft status and the period is the one containing "now". A Draft
// for a past period stays read-only even though its status never changed.
func (e *TimesheetEngine) editable(ts *domain.Timesheet) bool {
	return ts.Status == domain.StatusDraft && ts.PayPeriodEnd == domain.PeriodEnd(e.now())
}

// UpdateEntry edits one day of the working copy and recomputes the total.
// Silently ignored unless the timesheet is an editable current-period Draft.
func (e *TimesheetEngine) UpdateEntry(_ context.Context, contractorID int, in ports.UpdateEntryInput) (*ports.CurrentTimesheet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.resolveLocked(contractorID, in.PayPeriodEnd)
	if !e.editable(st.ts) {
		return e.viewLocked(st), nil
	}

	for i := range st.ts.Entries {
		if st.ts.Entries[i].Date != in.Date {
			continue
		}
		st.ts.Entries[i].Hours = in.Hours
		st.ts.Entries[i].TaskName = in.TaskName
		st.ts.Entries[i].TaskDescription = in.TaskDescription
		st.ts.RecomputeTotalHours()
		st.dirty = true
		break
	}
	return e.viewLocked(st), nil
}

// Save persists the working copy when it has unsaved changes.
func (e *TimesheetEngine) Save(ctx context.Context, contractorID int, payPeriodEnd string) (*ports.CurrentTimesheet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.resolveLocked(contractorID, payPeriodEnd)
	e.saveLocked(ctx, st)
	return e.viewLocked(st), nil
}

func (e *TimesheetEngine) saveLocked(ctx context.Context, st *draftState) {
	if !st.dirty {
		return
	}
	e.store.UpsertTimesheets(ctx, *st.ts.Clone())
	st.dirty = false
}

// Submit saves pending edits, moves the Draft to Submitted, and notifies the
// contractor's manager. No-op when the timesheet is not a Draft or the
// contractor has no assigned manager.
func (e *TimesheetEngine) Submit(ctx context.Context, contractorID int, payPeriodEnd string) (*ports.CurrentTimesheet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.resolveLocked(contractorID, payPeriodEnd)
	if st.ts.Status != domain.StatusDraft {
		return e.viewLocked(st), nil
	}

	contractor, err := e.store.FindUser(contractorID)
	if err != nil || contractor.ManagerID == 0 {
		return e.viewLocked(st), nil
	}

	e.saveLocked(ctx, st)

	st.ts.Status = domain.StatusSubmitted
	e.store.UpsertTimesheets(ctx, *st.ts.Clone())
	delete(e.drafts, st.ts.ID)

	if manager, err := e.store.FindUser(contractor.ManagerID); err == nil {
		e.notifier.Create(ctx, manager.ID,
			fmt.Sprintf("%s has submitted a timesheet for your approval.", contractor.Name))
		e.send(ports.Delivery{
			Channel: ports.ChannelEmail,
			To:      manager.Email,
			Subject: "Timesheet ready for approval",
			Body:    fmt.Sprintf("Timesheet from %s for period ending %s is ready for approval.", contractor.Name, st.ts.PayPeriodEnd),
		})
		e.send(ports.Delivery{
			Channel: ports.ChannelSMS,
			To:      manager.Phone,
			Body:    fmt.Sprintf("Timesheet from %s for period ending %s is ready for approval.", contractor.Name, st.ts.PayPeriodEnd),
		})
	}

	e.log.Info().Str("timesheet_id", st.ts.ID).Int("contractor_id", contractorID).Msg("timesheet submitted")
	return e.viewLocked(st), nil
}

// Approve moves a Submitted timesheet to Approved: freezes the cost at the
// contractor's current rate, draws the next invoice number, and records the
// approver. Every super-admin is notified.
func (e *TimesheetEngine) Approve(ctx context.Context, actorID int, timesheetID string) error {
	updated, ok := e.approveOne(ctx, actorID, timesheetID)
	if !ok {
		return nil
	}
	e.store.UpsertTimesheets(ctx, *updated)

	contractor, err := e.store.FindUser(updated.ContractorID)
	if err != nil {
		return nil
	}
	message := fmt.Sprintf("%s has approved a timesheet for %s. An invoice has been generated.",
		e.actorName(actorID), contractor.Name)
	e.notifySuperAdmins(ctx, message)
	return nil
}

// approveOne applies the approval transition to a single stored timesheet and
// returns the updated record. ok is false when the precondition is unmet, a
// reference is missing, or the invoice sequence is unavailable.
func (e *TimesheetEngine) approveOne(ctx context.Context, actorID int, timesheetID string) (*domain.Timesheet, bool) {
	ts, err := e.store.FindTimesheet(timesheetID)
	if err != nil || ts.Status != domain.StatusSubmitted {
		return nil, false
	}

	contractor, err := e.store.FindUser(ts.ContractorID)
	if err != nil {
		return nil, false
	}

	num, err := e.seq.Next(ctx)
	if err != nil {
		e.log.Error().Err(err).Str("timesheet_id", timesheetID).Msg("invoice sequence unavailable, approval skipped")
		return nil, false
	}

	now := e.now()
	ts.Status = domain.StatusApproved
	ts.TotalCost = ts.TotalHours * contractor.HourlyRate
	ts.ApprovedByManagerID = actorID
	ts.ApprovedTimestamp = now.UTC().Format(time.RFC3339)
	ts.InvoiceNumber = strconv.FormatInt(num, 10)
	ts.InvoiceDate = now.UTC().Format(domain.DateLayout)

	e.log.Info().
		Str("timesheet_id", ts.ID).
		Str("invoice_number", ts.InvoiceNumber).
		Float64("total_cost", ts.TotalCost).
		Msg("timesheet approved")
	return ts, true
}

// SendInvoice moves an Approved timesheet to Sent, filling in the invoice
// service and description defaults, and emails the client contact. Missing
// contractor or client degrades to a send without the side channel.
func (e *TimesheetEngine) SendInvoice(ctx context.Context, actorID int, in ports.SendInvoiceInput) error {
	updated, ok := e.sendOne(ctx, actorID, in.TimesheetID, in.Service, in.Description, true)
	if !ok {
		return nil
	}
	e.store.UpsertTimesheets(ctx, *updated)
	return nil
}

// sendOne applies the send transition to a single stored timesheet. When
// selfNotify is set, the acting user gets an "invoice sent" notification
// (single sends only; bulk sends emit one summary instead).
func (e *TimesheetEngine) sendOne(ctx context.Context, actorID int, timesheetID, service, description string, selfNotify bool) (*domain.Timesheet, bool) {
	ts, err := e.store.FindTimesheet(timesheetID)
	if err != nil || ts.Status != domain.StatusApproved {
		return nil, false
	}

	contractor, _ := e.store.FindUser(ts.ContractorID)

	if service == "" {
		service = ts.InvoiceService
	}
	if service == "" && contractor != nil {
		service = contractor.ServiceTitle
	}
	if service == "" {
		service = defaultInvoiceService
	}
	if description == "" {
		description = ts.InvoiceDescription
	}
	if description == "" && contractor != nil {
		description = fmt.Sprintf("Services provided by %s for pay period ending %s", contractor.Name, ts.PayPeriodEnd)
	}

	ts.Status = domain.StatusSent
	ts.InvoiceService = service
	ts.InvoiceDescription = description

	if contractor != nil && contractor.ClientID != 0 {
		if client, err := e.store.FindClient(contractor.ClientID); err == nil {
			e.send(ports.Delivery{
				Channel: ports.ChannelEmail,
				To:      client.ContactEmail,
				Subject: fmt.Sprintf("Invoice #%s from Cluedo Tech LLC", ts.InvoiceNumber),
				Body: fmt.Sprintf("Please find attached Invoice #%s for services provided by %s. Total amount due: $%.2f.",
					ts.InvoiceNumber, contractor.Name, ts.TotalCost),
			})
			if selfNotify {
				e.notifier.Create(ctx, actorID,
					fmt.Sprintf("Invoice #%s has been sent to %s.", ts.InvoiceNumber, client.Name))
			}
		}
	}

	e.log.Info().Str("timesheet_id", ts.ID).Str("invoice_number", ts.InvoiceNumber).Msg("invoice sent")
	return ts, true
}

// MarkPaid moves a Sent timesheet to Paid. Nothing else changes.
func (e *TimesheetEngine) MarkPaid(ctx context.Context, _ int, timesheetID string) error {
	ts, err := e.store.FindTimesheet(timesheetID)
	if err != nil || ts.Status != domain.StatusSent {
		return nil
	}
	ts.Status = domain.StatusPaid
	e.store.UpsertTimesheets(ctx, *ts)
	e.log.Info().Str("timesheet_id", ts.ID).Msg("invoice marked paid")
	return nil
}

// BulkApprove approves every Submitted id in order, drawing one invoice number
// per applied item, and emits a single summary notification per super-admin.
func (e *TimesheetEngine) BulkApprove(ctx context.Context, actorID int, timesheetIDs []string) ports.BulkResult {
	var res ports.BulkResult
	updated := make([]domain.Timesheet, 0, len(timesheetIDs))
	for _, id := range timesheetIDs {
		ts, ok := e.approveOne(ctx, actorID, id)
		if !ok {
			res.Skipped++
			continue
		}
		updated = append(updated, *ts)
		res.Applied++
	}
	if res.Applied == 0 {
		return res
	}
	e.store.UpsertTimesheets(ctx, updated...)
	e.notifySuperAdmins(ctx,
		fmt.Sprintf("%s has bulk-approved %d timesheets.", e.actorName(actorID), res.Applied))
	return res
}

// BulkSend sends every Approved id with default service/description and emits
// one summary notification to the acting user.
func (e *TimesheetEngine) BulkSend(ctx context.Context, actorID int, timesheetIDs []string) ports.BulkResult {
	var res ports.BulkResult
	updated := make([]domain.Timesheet, 0, len(timesheetIDs))
	for _, id := range timesheetIDs {
		ts, ok := e.sendOne(ctx, actorID, id, "", "", false)
		if !ok {
			res.Skipped++
			continue
		}
		updated = append(updated, *ts)
		res.Applied++
	}
	if res.Applied == 0 {
		return res
	}
	e.store.UpsertTimesheets(ctx, updated...)
	e.notifier.Create(ctx, actorID, fmt.Sprintf("You have bulk-sent %d invoices.", res.Applied))
	return res
}

// BulkPay marks every Sent id as Paid and emits one summary notification to
// the acting user.
func (e *TimesheetEngine) BulkPay(ctx context.Context, actorID int, timesheetIDs []string) ports.BulkResult {
	var res ports.BulkResult
	updated := make([]domain.Timesheet, 0, len(timesheetIDs))
	for _, id := range timesheetIDs {
		ts, err := e.store.FindTimesheet(id)
		if err != nil || ts.Status != domain.StatusSent {
			res.Skipped++
			continue
		}
		ts.Status = domain.StatusPaid
		updated = append(updated, *ts)
		res.Applied++
	}
	if res.Applied == 0 {
		return res
	}
	e.store.UpsertTimesheets(ctx, updated...)
	e.notifier.Create(ctx, actorID, fmt.Sprintf("You have bulk-marked %d invoices as paid.", res.Applied))
	return res
}

// Viewable returns the role-filtered list: contractors get nothing (they only
// ever see their own current timesheet), managers see their contractors'
// non-Draft sheets, super-admins see all non-Draft sheets.
func (e *TimesheetEngine) Viewable(_ context.Context, userID int, payPeriodEnd string) ([]domain.Timesheet, error) {
	user, err := e.store.FindUser(userID)
	if err != nil {
		return nil, nil
	}

	var keep func(ts *domain.Timesheet) bool
	switch user.Role {
	case domain.RoleSuperAdmin:
		keep = func(ts *domain.Timesheet) bool { return ts.Status != domain.StatusDraft }
	case domain.RoleManager:
		managed := make(map[int]struct{})
		for _, u := range e.store.Users() {
			if u.Role == domain.RoleContractor && u.ManagerID == userID {
				managed[u.ID] = struct{}{}
			}
		}
		keep = func(ts *domain.Timesheet) bool {
			if ts.Status == domain.StatusDraft {
				return false
			}
			_, ok := managed[ts.ContractorID]
			return ok
		}
	default:
		return nil, nil
	}

	var out []domain.Timesheet
	for _, ts := range e.store.Timesheets() { // already sorted by period end desc
		if !keep(&ts) {
			continue
		}
		if payPeriodEnd != ports.AllPeriods && payPeriodEnd != "" && ts.PayPeriodEnd != payPeriodEnd {
			continue
		}
		out = append(out, ts)
	}
	return out, nil
}

func (e *TimesheetEngine) notifySuperAdmins(ctx context.Context, message string) {
	for _, u := range e.store.Users() {
		if u.Role != domain.RoleSuperAdmin {
			continue
		}
		e.notifier.Create(ctx, u.ID, message)
		e.send(ports.Delivery{
			Channel: ports.ChannelEmail,
			To:      u.Email,
			Subject: "Timesheet approval",
			Body:    message,
		})
	}
}

func (e *TimesheetEngine) actorName(actorID int) string {
	if u, err := e.store.FindUser(actorID); err == nil {
		return u.Name
	}
	return "A manager"
}

func (e *TimesheetEngine) send(d ports.Delivery) {
	if e.deliver == nil || d.To == "" {
		return
	}
	e.deliver.Enqueue(d)
}
