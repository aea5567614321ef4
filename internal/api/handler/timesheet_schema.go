package handler

// --- Request types ---

type updateEntryRequest struct {
	PayPeriodEnd    string  `json:"pay_period_end" validate:"required,datetime=2006-01-02"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	Hours           float64 `json:"hours" validate:"gte=0,lte=24"`
	TaskName        string  `json:"task_name"`
	TaskDescription string  `json:"task_description"`
}

type periodRequest struct {
	PayPeriodEnd string `json:"pay_period_end" validate:"required,datetime=2006-01-02"`
}

type sendInvoiceRequest struct {
	Service     string `json:"service"`
	Description string `json:"description"`
}

type bulkRequest struct {
	TimesheetIDs []string `json:"timesheet_ids" validate:"required,min=1"`
}

// --- Response types ---

type entryResponse struct {
	Date            string  `json:"date"`
	Hours           float64 `json:"hours"`
	TaskName        string  `json:"task_name"`
	TaskDescription string  `json:"task_description"`
}

type timesheetResponse struct {
	ID                  string          `json:"id"`
	ContractorID        int             `json:"contractor_id"`
	PayPeriodEnd        string          `json:"pay_period_end"`
	Entries             []entryResponse `json:"entries"`
	Status              string          `json:"status"`
	TotalHours          float64         `json:"total_hours"`
	TotalCost           float64         `json:"total_cost"`
	ApprovedByManagerID int             `json:"approved_by_manager_id,omitempty"`
	ApprovedTimestamp   string          `json:"approved_timestamp,omitempty"`
	InvoiceNumber       string          `json:"invoice_number,omitempty"`
	InvoiceDate         string          `json:"invoice_date,omitempty"`
	InvoiceService      string          `json:"invoice_service,omitempty"`
	InvoiceDescription  string          `json:"invoice_description,omitempty"`
}

type currentTimesheetResponse struct {
	Timesheet timesheetResponse `json:"timesheet"`
	Editable  bool              `json:"editable"`
	Dirty     bool              `json:"dirty"`
}

type timesheetListResponse struct {
	Timesheets []timesheetResponse `json:"timesheets"`
}

type periodsResponse struct {
	Periods []string `json:"periods"`
}

type bulkResponse struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}
