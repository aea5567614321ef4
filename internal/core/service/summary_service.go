package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
)

// Placeholder summaries returned on the degraded paths. Exported so callers
// can classify a result without a second return value.
const (
	SummaryMock        = "This is a mock AI summary. The contractor focused on building the main dashboard components and setting up the timesheet submission logic."
	SummaryNoDetails   = "No work details were provided for this period."
	SummaryUnavailable = "Error: Could not generate summary. Please try again later."
)

// SummaryService turns timesheet entries into a short prose summary via an
// injected text generator. It never returns an error: every failure path
// degrades to a placeholder string.
type SummaryService struct {
	gen ports.TextGenerator // nil = no generator configured
	log zerolog.Logger
}

func NewSummaryService(gen ports.TextGenerator, log zerolog.Logger) *SummaryService {
	return &SummaryService{gen: gen, log: log}
}

func (s *SummaryService) Summarize(ctx context.Context, entries []domain.TimesheetEntry) string {
	var lines []string
	for _, e := range entries {
		if e.Hours <= 0 {
			continue
		}
		name := strings.TrimSpace(e.TaskName)
		desc := strings.TrimSpace(e.TaskDescription)
		if name == "" && desc == "" {
			continue
		}
		line := fmt.Sprintf("- %s (%gh): %s", e.Date, e.Hours, name)
		if desc != "" {
			line += " - " + desc
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return SummaryNoDetails
	}

	if s.gen == nil {
		s.log.Warn().Msg("no text generator configured, returning mock summary")
		return SummaryMock
	}

	prompt := fmt.Sprintf(`As a project manager, review the following timesheet entries for a software developer.
Each entry includes a task name and, optionally, a more detailed description.
Provide a concise, professional summary (2-3 sentences) of the work completed.
Focus on key achievements and areas of work. Do not greet or sign off.

Timesheet Entries:
%s`, strings.Join(lines, "\n"))

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		s.log.Error().Err(err).Msg("summary generation failed")
		return SummaryUnavailable
	}
	return strings.TrimSpace(text)
}
