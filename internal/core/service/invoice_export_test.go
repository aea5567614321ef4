package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/store"
)

func exportFixture(t *testing.T) (*InvoiceExportService, *store.Store) {
	t.Helper()
	st := store.Open(context.Background(), nil, zerolog.Nop())

	ts := domain.NewDraftTimesheet(1, "2024-07-19")
	ts.Status = domain.StatusApproved
	ts.TotalHours = 24
	ts.TotalCost = 1800
	ts.InvoiceNumber = "1039"
	ts.InvoiceDate = "2024-07-20"
	st.UpsertTimesheets(context.Background(), *ts)

	return NewInvoiceExportService(st, zerolog.Nop()), st
}

func TestExportCSV(t *testing.T) {
	svc, _ := exportFixture(t)

	data, filename, err := svc.ExportCSV(context.Background(), "1-2024-07-19")
	if err != nil {
		t.Fatal(err)
	}
	if filename != "invoice_1039_Kalpa_Analytics_LLC.csv" {
		t.Errorf("filename = %s", filename)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	if !reflect.DeepEqual(records[0], invoiceHeaders) {
		t.Errorf("header = %v", records[0])
	}

	want := []string{
		"1039", "Kalpa Analytics LLC", "7/20/2024", "7/20/2024",
		"Software Engineering Services",
		"Services provided by Alex Doe for pay period ending 2024-07-19",
		"24", "75", "1800.00",
	}
	if !reflect.DeepEqual(records[1], want) {
		t.Errorf("row = %v\nwant %v", records[1], want)
	}
}

func TestExportCSV_UsesStoredInvoiceFields(t *testing.T) {
	svc, st := exportFixture(t)
	ctx := context.Background()

	ts, _ := st.FindTimesheet("1-2024-07-19")
	ts.InvoiceService = "Custom Line Item"
	ts.InvoiceDescription = "July retainer"
	st.UpsertTimesheets(ctx, *ts)

	data, _, err := svc.ExportCSV(ctx, ts.ID)
	if err != nil {
		t.Fatal(err)
	}
	records, _ := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if records[1][4] != "Custom Line Item" || records[1][5] != "July retainer" {
		t.Errorf("stored invoice fields ignored: %v", records[1])
	}
}

func TestExportXLSX(t *testing.T) {
	svc, _ := exportFixture(t)

	data, filename, err := svc.ExportXLSX(context.Background(), "1-2024-07-19")
	if err != nil {
		t.Fatal(err)
	}
	if filename != "invoice_1039_Kalpa_Analytics_LLC.xlsx" {
		t.Errorf("filename = %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if got, _ := f.GetCellValue(sheet, "A1"); got != "InvoiceNo" {
		t.Errorf("A1 = %s", got)
	}
	if got, _ := f.GetCellValue(sheet, "A2"); got != "1039" {
		t.Errorf("A2 = %s", got)
	}
	if got, _ := f.GetCellValue(sheet, "B2"); got != "Kalpa Analytics LLC" {
		t.Errorf("B2 = %s", got)
	}
	if got, _ := f.GetCellValue(sheet, "I2"); got != "1800.00" {
		t.Errorf("I2 = %s", got)
	}
}

func TestExport_RequiresInvoiceNumber(t *testing.T) {
	svc, st := exportFixture(t)
	ctx := context.Background()

	ts := domain.NewDraftTimesheet(2, "2024-07-19")
	ts.Status = domain.StatusSubmitted
	st.UpsertTimesheets(ctx, *ts)

	if _, _, err := svc.ExportCSV(ctx, ts.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestExport_MissingReferences(t *testing.T) {
	svc, st := exportFixture(t)
	ctx := context.Background()

	if _, _, err := svc.ExportCSV(ctx, "no-such-id"); !errors.Is(err, domain.ErrTimesheetNotFound) {
		t.Fatalf("expected ErrTimesheetNotFound, got %v", err)
	}

	alex, _ := st.FindUser(1)
	alex.ClientID = 0
	_ = st.ReplaceUser(ctx, *alex)
	if _, _, err := svc.ExportCSV(ctx, "1-2024-07-19"); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}
