package duckdb_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"mturkqa/internal/duckdb"
	duckdbtesting "mturkqa/internal/duckdb/testing"
	"mturkqa/internal/mturk"
	"mturkqa/internal/qaxml"
	"mturkqa/internal/testutil"
)

var submitted = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func assignment(id, worker string, offset time.Duration, answers ...testutil.Answer) mturk.Assignment {
	return mturk.Assignment{
		ID:         id,
		WorkerID:   worker,
		HITID:      "HIT1",
		Status:     "Submitted",
		SubmitTime: submitted.Add(offset),
		Answer:     testutil.AnswersXML(answers...),
	}
}

// TestSchemaObjectsExist verifies the archive tables and view are created.
func TestSchemaObjectsExist(t *testing.T) {
	db := duckdbtesting.Open(t, ":memory:")
	for _, table := range []string{"ingests", "assignments", "answers", "v_answers"} {
		count := duckdbtesting.QueryInt(t, db, "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?", table)
		if count != 1 {
			t.Fatalf("expected %s to exist", table)
		}
	}
}

// TestSaveAssignmentsRoundTrip verifies archived answers reload in submit order.
func TestSaveAssignmentsRoundTrip(t *testing.T) {
	db := duckdbtesting.Open(t, ":memory:")
	ctx := testutil.Context(t, 0)
	assignments := []mturk.Assignment{
		assignment("A2", "W2", time.Minute, testutil.Answer{QuestionID: "q1", Value: "late"}),
		assignment("A1", "W1", 0,
			testutil.Answer{QuestionID: "q1", Value: "early"},
			testutil.Answer{QuestionID: "q2", Kind: "SelectionIdentifier", Value: "3"},
		),
	}
	result, err := duckdb.SaveAssignments(ctx, db, "HIT1", assignments)
	if err != nil {
		t.Fatalf("save assignments: %v", err)
	}
	if result.IngestID == "" || result.Assignments != 2 || result.Answers != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}

	got, err := duckdb.AnswersByQuestion(ctx, db, "HIT1")
	if err != nil {
		t.Fatalf("answers by question: %v", err)
	}
	if len(got["q1"]) != 2 || got["q1"][0] != "early" || got["q1"][1] != "late" {
		t.Fatalf("unexpected q1: %+v", got["q1"])
	}
	if len(got["q2"]) != 1 || got["q2"][0] != "3" {
		t.Fatalf("unexpected q2: %+v", got["q2"])
	}
}

// TestSaveAssignmentsUpserts verifies re-ingesting keeps one row per assignment.
func TestSaveAssignmentsUpserts(t *testing.T) {
	db := duckdbtesting.Open(t, ":memory:")
	ctx := testutil.Context(t, 0)
	first := []mturk.Assignment{assignment("A1", "W1", 0, testutil.Answer{QuestionID: "q1", Value: "draft"})}
	second := []mturk.Assignment{assignment("A1", "W1", 0, testutil.Answer{QuestionID: "q1", Value: "final"})}
	if _, err := duckdb.SaveAssignments(ctx, db, "HIT1", first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := duckdb.SaveAssignments(ctx, db, "HIT1", second); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if n := duckdbtesting.QueryInt(t, db, "SELECT COUNT(*) FROM assignments"); n != 1 {
		t.Fatalf("expected 1 assignment row, got %d", n)
	}
	if n := duckdbtesting.QueryInt(t, db, "SELECT COUNT(*) FROM ingests"); n != 2 {
		t.Fatalf("expected 2 ingest rows, got %d", n)
	}
	got, err := duckdb.AnswersByQuestion(ctx, db, "HIT1")
	if err != nil {
		t.Fatalf("answers by question: %v", err)
	}
	if len(got["q1"]) != 1 || got["q1"][0] != "final" {
		t.Fatalf("expected updated answer, got %+v", got["q1"])
	}
}

// TestSaveAssignmentsDropsStaleAnswers verifies re-ingesting replaces the answer set of an assignment.
func TestSaveAssignmentsDropsStaleAnswers(t *testing.T) {
	db := duckdbtesting.Open(t, ":memory:")
	ctx := testutil.Context(t, 0)
	first := []mturk.Assignment{assignment("A1", "W1", 0,
		testutil.Answer{QuestionID: "q1", Value: "a"},
		testutil.Answer{QuestionID: "q2", Value: "b"},
	)}
	second := []mturk.Assignment{assignment("A1", "W1", 0, testutil.Answer{QuestionID: "q1", Value: "c"})}
	if _, err := duckdb.SaveAssignments(ctx, db, "HIT1", first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := duckdb.SaveAssignments(ctx, db, "HIT1", second); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if n := duckdbtesting.QueryInt(t, db, "SELECT COUNT(*) FROM answers WHERE assignment_id = ?", "A1"); n != 1 {
		t.Fatalf("expected 1 answer row, got %d", n)
	}
	got, err := duckdb.AnswersByQuestion(ctx, db, "HIT1")
	if err != nil {
		t.Fatalf("answers by question: %v", err)
	}
	if _, ok := got["q2"]; ok || len(got["q1"]) != 1 || got["q1"][0] != "c" {
		t.Fatalf("unexpected answers: %+v", got)
	}
}

func TestSaveParsedAssignmentsMismatchedAnswers(t *testing.T) {
	db := duckdbtesting.Open(t, ":memory:")
	assignments := []mturk.Assignment{assignment("A1", "W1", 0)}
	if _, err := duckdb.SaveParsedAssignments(testutil.Context(t, 0), db, "HIT1", assignments, nil); err == nil {
		t.Fatalf("expected mismatch error")
	}
	if n := duckdbtesting.QueryInt(t, db, "SELECT COUNT(*) FROM ingests"); n != 0 {
		t.Fatalf("expected no ingest rows, got %d", n)
	}
}

// TestSaveAssignmentsRejectsBadXML verifies nothing is written when parsing fails.
func TestSaveAssignmentsRejectsBadXML(t *testing.T) {
	db := duckdbtesting.Open(t, ":memory:")
	ctx := testutil.Context(t, 0)
	bad := mturk.Assignment{ID: "A1", WorkerID: "W1", Answer: "<QuestionFormAnswers"}
	_, err := duckdb.SaveAssignments(ctx, db, "HIT1", []mturk.Assignment{bad})
	if !errors.Is(err, qaxml.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if n := duckdbtesting.QueryInt(t, db, "SELECT COUNT(*) FROM ingests"); n != 0 {
		t.Fatalf("expected no ingest rows, got %d", n)
	}
}

func TestAnswersByQuestionUnknownHIT(t *testing.T) {
	db := duckdbtesting.Open(t, ":memory:")
	got, err := duckdb.AnswersByQuestion(testutil.Context(t, 0), db, "nope")
	if err != nil {
		t.Fatalf("answers by question: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty mapping, got %+v", got)
	}
}

// TestOpenFileArchivePersists verifies a file archive survives reopening.
func TestOpenFileArchivePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.duckdb")
	ctx := testutil.Context(t, 0)
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := duckdb.SaveAssignments(ctx, db, "HIT1", []mturk.Assignment{
		assignment("A1", "W1", 0, testutil.Answer{QuestionID: "q1", Value: "kept"}),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	reopened := duckdbtesting.Open(t, path)
	if n := duckdbtesting.QueryInt(t, reopened, "SELECT COUNT(*) FROM answers"); n != 1 {
		t.Fatalf("expected 1 answer after reopen, got %d", n)
	}
}

func TestFingerprintStable(t *testing.T) {
	if duckdb.Fingerprint("a") != duckdb.Fingerprint("a") || duckdb.Fingerprint("a") == duckdb.Fingerprint("b") {
		t.Fatalf("fingerprint is not deterministic")
	}
}
