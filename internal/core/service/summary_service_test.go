package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
)

type genStub struct {
	text   string
	err    error
	prompt string
}

func (g *genStub) GenerateText(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.text, g.err
}

func billableEntries() []domain.TimesheetEntry {
	return []domain.TimesheetEntry{
		{Date: "2024-07-08", Hours: 8, TaskName: "API endpoints", TaskDescription: "approval flow"},
		{Date: "2024-07-09", Hours: 6.5, TaskName: "Bug fixes"},
		{Date: "2024-07-10"}, // empty day, filtered out
		{Date: "2024-07-11", Hours: 2, TaskName: "   "},
	}
}

func TestSummarize_CallsGeneratorWithBillableLines(t *testing.T) {
	gen := &genStub{text: "  Focused on API endpoints and bug fixes.  "}
	s := NewSummaryService(gen, zerolog.Nop())

	got := s.Summarize(context.Background(), billableEntries())
	if got != "Focused on API endpoints and bug fixes." {
		t.Fatalf("summary = %q", got)
	}

	if !strings.Contains(gen.prompt, "- 2024-07-08 (8h): API endpoints - approval flow") {
		t.Errorf("prompt missing described entry:\n%s", gen.prompt)
	}
	if !strings.Contains(gen.prompt, "- 2024-07-09 (6.5h): Bug fixes") {
		t.Errorf("prompt missing name-only entry:\n%s", gen.prompt)
	}
	if strings.Contains(gen.prompt, "2024-07-10") {
		t.Errorf("empty day leaked into prompt:\n%s", gen.prompt)
	}
	if strings.Contains(gen.prompt, "2024-07-11") {
		t.Errorf("blank-name entry leaked into prompt:\n%s", gen.prompt)
	}
}

func TestSummarize_NoBillableDetail(t *testing.T) {
	gen := &genStub{text: "anything"}
	s := NewSummaryService(gen, zerolog.Nop())

	got := s.Summarize(context.Background(), []domain.TimesheetEntry{
		{Date: "2024-07-08"},
		{Date: "2024-07-09", Hours: 0, TaskName: "planned but not worked"},
	})
	if got != SummaryNoDetails {
		t.Fatalf("summary = %q, want no-details placeholder", got)
	}
	if gen.prompt != "" {
		t.Error("generator called despite empty detail")
	}
}

func TestSummarize_NoGeneratorReturnsMock(t *testing.T) {
	s := NewSummaryService(nil, zerolog.Nop())
	if got := s.Summarize(context.Background(), billableEntries()); got != SummaryMock {
		t.Fatalf("summary = %q, want mock placeholder", got)
	}
}

func TestSummarize_GeneratorFailureDegrades(t *testing.T) {
	s := NewSummaryService(&genStub{err: errors.New("quota exceeded")}, zerolog.Nop())
	if got := s.Summarize(context.Background(), billableEntries()); got != SummaryUnavailable {
		t.Fatalf("summary = %q, want unavailable placeholder", got)
	}

	s = NewSummaryService(&genStub{text: "   "}, zerolog.Nop())
	if got := s.Summarize(context.Background(), billableEntries()); got != SummaryUnavailable {
		t.Fatalf("blank generator output should degrade, got %q", got)
	}
}
