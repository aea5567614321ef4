package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cluedotech/timesheetpro/internal/api/metrics"
)

// InvoiceExporter renders an invoice file for a timesheet.
type InvoiceExporter interface {
	ExportCSV(ctx context.Context, timesheetID string) (data []byte, filename string, err error)
	ExportXLSX(ctx context.Context, timesheetID string) (data []byte, filename string, err error)
}

// ExportHandler serves invoice file downloads.
type ExportHandler struct {
	exporter InvoiceExporter
}

func NewExportHandler(exporter InvoiceExporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Invoice handles GET /v1/timesheets/:id/invoice.
//
// @Summary      Download a timesheet's invoice as CSV or XLSX
// @Tags         timesheets
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        id      path   string  true   "Timesheet id"
// @Param        format  query  string  false  "File format: csv or xlsx"  default(csv)
// @Success      200  {file}    file
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/timesheets/{id}/invoice [get]
func (h *ExportHandler) Invoice(c echo.Context) error {
	id := c.Param("id")
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}

	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)
	switch format {
	case "csv":
		data, filename, err = h.exporter.ExportCSV(c.Request().Context(), id)
		contentType = "text/csv"
	case "xlsx":
		data, filename, err = h.exporter.ExportXLSX(c.Request().Context(), id)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "format must be csv or xlsx"})
	}
	if err != nil {
		return err
	}

	metrics.InvoicesExportedTotal.WithLabelValues(format).Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, contentType, data)
}
