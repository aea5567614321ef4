package ports

import (
	"context"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
)

// TextGenerator is the outbound AI text-generation boundary.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// SummaryService produces a prose summary of a period's work. It never fails:
// absence of a generator, absence of billable detail, and generator errors all
// degrade to a placeholder string.
type SummaryService interface {
	Summarize(ctx context.Context, entries []domain.TimesheetEntry) string
}
