package domain

import (
	"errors"
	"fmt"
)

// TimesheetStatus represents the lifecycle state of a timesheet.
type TimesheetStatus string

const (
	StatusDraft     TimesheetStatus = "Draft"
	StatusSubmitted TimesheetStatus = "Submitted"
	StatusApproved  TimesheetStatus = "Approved"
	StatusSent      TimesheetStatus = "Sent"
	StatusPaid      TimesheetStatus = "Paid"
)

// validTransitions defines the allowed state machine transitions.
// Every edge moves strictly forward; nothing ever returns to an earlier state.
var validTransitions = map[TimesheetStatus][]TimesheetStatus{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved},
	StatusApproved:  {StatusSent},
	StatusSent:      {StatusPaid},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrTimesheetNotFound = errors.New("timesheet not found")
var ErrNotEditable = errors.New("timesheet is not editable")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s TimesheetStatus) CanTransitionTo(next TimesheetStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// rank orders statuses along the lifecycle. Used to assert monotonicity.
var rank = map[TimesheetStatus]int{
	StatusDraft:     0,
	StatusSubmitted: 1,
	StatusApproved:  2,
	StatusSent:      3,
	StatusPaid:      4,
}

// Before reports whether s comes earlier in the lifecycle than other.
func (s TimesheetStatus) Before(other TimesheetStatus) bool {
	return rank[s] < rank[other]
}

// TimesheetEntry is one calendar day within a 14-day pay period.
type TimesheetEntry struct {
	Date            string  `json:"date" bson:"date"` // YYYY-MM-DD
	Hours           float64 `json:"hours" bson:"hours"`
	TaskName        string  `json:"task_name" bson:"task_name"`
	TaskDescription string  `json:"task_description" bson:"task_description"`
}

// Timesheet is the core aggregate root: one contractor, one pay period,
// exactly 14 chronological entries.
type Timesheet struct {
	ID                  string           `json:"id" bson:"_id"`
	ContractorID        int              `json:"contractor_id" bson:"contractor_id"`
	PayPeriodEnd        string           `json:"pay_period_end" bson:"pay_period_end"` // YYYY-MM-DD
	Entries             []TimesheetEntry `json:"entries" bson:"entries"`
	Status              TimesheetStatus  `json:"status" bson:"status"`
	TotalHours          float64          `json:"total_hours" bson:"total_hours"`
	TotalCost           float64          `json:"total_cost,omitempty" bson:"total_cost,omitempty"`
	ApprovedByManagerID int              `json:"approved_by_manager_id,omitempty" bson:"approved_by_manager_id,omitempty"`
	ApprovedTimestamp   string           `json:"approved_timestamp,omitempty" bson:"approved_timestamp,omitempty"`
	InvoiceNumber       string           `json:"invoice_number,omitempty" bson:"invoice_number,omitempty"`
	InvoiceDate         string           `json:"invoice_date,omitempty" bson:"invoice_date,omitempty"` // YYYY-MM-DD
	InvoiceService      string           `json:"invoice_service,omitempty" bson:"invoice_service,omitempty"`
	InvoiceDescription  string           `json:"invoice_description,omitempty" bson:"invoice_description,omitempty"`
}

// TimesheetID builds the canonical identifier "{contractorId}-{payPeriodEnd}".
func TimesheetID(contractorID int, payPeriodEnd string) string {
	return fmt.Sprintf("%d-%s", contractorID, payPeriodEnd)
}

// NewDraftTimesheet returns a zero-filled Draft covering the 14 days of the
// period ending at payPeriodEnd.
func NewDraftTimesheet(contractorID int, payPeriodEnd string) *Timesheet {
	days := PeriodDays(payPeriodEnd)
	entries := make([]TimesheetEntry, len(days))
	for i, day := range days {
		entries[i] = TimesheetEntry{Date: day}
	}
	return &Timesheet{
		ID:           TimesheetID(contractorID, payPeriodEnd),
		ContractorID: contractorID,
		PayPeriodEnd: payPeriodEnd,
		Entries:      entries,
		Status:       StatusDraft,
	}
}

// RecomputeTotalHours sets TotalHours to the exact sum of entry hours.
func (t *Timesheet) RecomputeTotalHours() {
	var total float64
	for _, e := range t.Entries {
		total += e.Hours
	}
	t.TotalHours = total
}

// Clone returns a deep copy so callers can mutate working copies freely.
func (t *Timesheet) Clone() *Timesheet {
	c := *t
	c.Entries = make([]TimesheetEntry, len(t.Entries))
	copy(c.Entries, t.Entries)
	return &c
}
