package ui

import (
	"strings"
	"testing"
	"time"

	"mturkqa/internal/mturk"
	"mturkqa/internal/question"
)

func TestRenderAnswersSortedWithCounts(t *testing.T) {
	out := RenderAnswers(map[string][]string{
		"q2": {"b", "a", "b"},
		"q1": {"yes"},
	}, true)
	if strings.Index(out, "q1") > strings.Index(out, "q2") {
		t.Fatalf("expected questions sorted: %q", out)
	}
	for _, want := range []string{"Question", "Responses", "b (2)", "b, a, b", "yes (1)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderAnswersEmpty(t *testing.T) {
	if out := RenderAnswers(nil, true); out != "No answers." {
		t.Fatalf("unexpected output: %q", out)
	}
}

// TestRenderNoColorHasNoEscapes verifies disabled color emits plain text.
func TestRenderNoColorHasNoEscapes(t *testing.T) {
	out := RenderBalance("12.50", true, true)
	if out != "Available balance: $12.50 (sandbox)" {
		t.Fatalf("unexpected output: %q", out)
	}
	if strings.Contains(RenderAnswers(map[string][]string{"q": {"v"}}, true), "\x1b[") {
		t.Fatalf("unexpected escape sequence")
	}
}

func TestRenderWorkersKeepsOrder(t *testing.T) {
	value := int32(90)
	out := RenderWorkers([]mturk.Qualification{
		{WorkerID: "W2", Status: "Granted", GrantTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{WorkerID: "W1", Status: "Granted", IntegerValue: &value},
	}, true)
	if strings.Index(out, "W2") > strings.Index(out, "W1") {
		t.Fatalf("expected input order preserved: %q", out)
	}
	if !strings.Contains(out, "2024-01-01T00:00:00Z") || !strings.Contains(out, "90") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderAssignment(t *testing.T) {
	out := RenderAssignment(mturk.Assignment{ID: "A1", WorkerID: "W1", HITID: "H1", Status: "Submitted"},
		map[string]string{"q1": "yes"}, true)
	for _, want := range []string{"Assignment A1", "Worker: W1", "Submitted", "q1", "yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderGrades(t *testing.T) {
	out := RenderGrades([]GradeRow{{
		AssignmentID: "A1",
		WorkerID:     "W1",
		Result:       question.GradeResult{Score: 3, MaxScore: 8},
	}}, true)
	if !strings.Contains(out, "3/8") || !strings.Contains(out, "38%") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestMostCommonTies(t *testing.T) {
	value, count := mostCommon([]string{"a", "b"})
	if value != "a" || count != 1 {
		t.Fatalf("expected first value on tie, got %s/%d", value, count)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("a  b\nc", 10); got != "a b c" {
		t.Fatalf("unexpected collapse: %q", got)
	}
	if got := truncate(strings.Repeat("x", 20), 10); got != "xxxxxxx..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
