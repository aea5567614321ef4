package handler

import (
	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
)

func toTimesheetResponse(ts domain.Timesheet) timesheetResponse {
	entries := make([]entryResponse, len(ts.Entries))
	for i, e := range ts.Entries {
		entries[i] = entryResponse{
			Date:            e.Date,
			Hours:           e.Hours,
			TaskName:        e.TaskName,
			TaskDescription: e.TaskDescription,
		}
	}
	return timesheetResponse{
		ID:                  ts.ID,
		ContractorID:        ts.ContractorID,
		PayPeriodEnd:        ts.PayPeriodEnd,
		Entries:             entries,
		Status:              string(ts.Status),
		TotalHours:          ts.TotalHours,
		TotalCost:           ts.TotalCost,
		ApprovedByManagerID: ts.ApprovedByManagerID,
		ApprovedTimestamp:   ts.ApprovedTimestamp,
		InvoiceNumber:       ts.InvoiceNumber,
		InvoiceDate:         ts.InvoiceDate,
		InvoiceService:      ts.InvoiceService,
		InvoiceDescription:  ts.InvoiceDescription,
	}
}

func toCurrentResponse(cur *ports.CurrentTimesheet) currentTimesheetResponse {
	return currentTimesheetResponse{
		Timesheet: toTimesheetResponse(cur.Timesheet),
		Editable:  cur.Editable,
		Dirty:     cur.Dirty,
	}
}

func toListResponse(list []domain.Timesheet) timesheetListResponse {
	out := timesheetListResponse{Timesheets: make([]timesheetResponse, len(list))}
	for i, ts := range list {
		out.Timesheets[i] = toTimesheetResponse(ts)
	}
	return out
}
