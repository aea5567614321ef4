package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/store"
)

// invoiceHeaders is the QuickBooks import column order.
var invoiceHeaders = []string{
	"InvoiceNo", "Customer", "InvoiceDate", "DueDate",
	"Item(Product/Service)", "Description", "Qty", "Rate", "Amount",
}

// InvoiceExportService renders an approved timesheet's invoice as a
// spreadsheet row, in CSV or XLSX form. Missing references abort with a
// domain error rather than a partial file.
type InvoiceExportService struct {
	store *store.Store
	log   zerolog.Logger
}

func NewInvoiceExportService(st *store.Store, log zerolog.Logger) *InvoiceExportService {
	return &InvoiceExportService{store: st, log: log}
}

// invoiceRow resolves the timesheet, contractor, and client and builds the
// single spreadsheet row shared by both formats.
func (s *InvoiceExportService) invoiceRow(timesheetID string) ([]string, string, error) {
	ts, err := s.store.FindTimesheet(timesheetID)
	if err != nil {
		return nil, "", err
	}
	if ts.InvoiceNumber == "" {
		return nil, "", domain.ErrInvalidTransition
	}

	contractor, err := s.store.FindUser(ts.ContractorID)
	if err != nil {
		return nil, "", err
	}
	if contractor.ClientID == 0 {
		return nil, "", domain.ErrClientNotFound
	}
	client, err := s.store.FindClient(contractor.ClientID)
	if err != nil {
		return nil, "", err
	}

	invoiceDate := ts.InvoiceDate
	if d, err := time.ParseInLocation(domain.DateLayout, ts.InvoiceDate, time.UTC); err == nil {
		invoiceDate = d.Format("1/2/2006")
	}

	service := ts.InvoiceService
	if service == "" {
		service = contractor.ServiceTitle
	}
	if service == "" {
		service = defaultInvoiceService
	}
	description := ts.InvoiceDescription
	if description == "" {
		description = fmt.Sprintf("Services provided by %s for pay period ending %s", contractor.Name, ts.PayPeriodEnd)
	}

	row := []string{
		ts.InvoiceNumber,
		client.Name,
		invoiceDate,
		invoiceDate, // due on receipt
		service,
		description,
		fmt.Sprintf("%g", ts.TotalHours),
		fmt.Sprintf("%g", contractor.HourlyRate),
		fmt.Sprintf("%.2f", ts.TotalCost),
	}

	name := fmt.Sprintf("invoice_%s_%s", ts.InvoiceNumber, strings.ReplaceAll(client.Name, " ", "_"))
	return row, name, nil
}

// ExportCSV returns the invoice as CSV bytes plus a download filename.
func (s *InvoiceExportService) ExportCSV(_ context.Context, timesheetID string) ([]byte, string, error) {
	row, name, err := s.invoiceRow(timesheetID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(invoiceHeaders)
	_ = w.Write(row)
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), name + ".csv", nil
}

// ExportXLSX returns the invoice as a single-sheet workbook.
func (s *InvoiceExportService) ExportXLSX(_ context.Context, timesheetID string) ([]byte, string, error) {
	row, name, err := s.invoiceRow(timesheetID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for col, h := range invoiceHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for col, v := range row {
		cell, _ := excelize.CoordinatesToCellName(col+1, 2)
		_ = f.SetCellValue(sheet, cell, v)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), name + ".xlsx", nil
}
