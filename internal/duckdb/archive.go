package duckdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mturkqa/internal/mturk"
)

// IngestResult summarizes one SaveAssignments call.
type IngestResult struct {
	IngestID    string
	HITID       string
	Assignments int
	Answers     int
}

// SaveAssignments parses and stores assignments for hitID in one
// transaction. Nothing is written when any answer document fails to parse.
func SaveAssignments(ctx context.Context, db *sql.DB, hitID string, assignments []mturk.Assignment) (IngestResult, error) {
	parsed, err := mturk.ParseAssignmentAnswers(assignments)
	if err != nil {
		return IngestResult{}, err
	}
	return SaveParsedAssignments(ctx, db, hitID, assignments, parsed)
}

// SaveParsedAssignments stores assignments whose answers were already parsed;
// parsed[i] holds the answers of assignments[i]. Archived assignments are
// updated in place, keyed by assignment id, and their answer rows replaced.
func SaveParsedAssignments(ctx context.Context, db *sql.DB, hitID string, assignments []mturk.Assignment, parsed []map[string]string) (IngestResult, error) {
	if ctx == nil {
		return IngestResult{}, errors.New("duckdb: context is nil")
	}
	if db == nil {
		return IngestResult{}, errors.New("duckdb: db is nil")
	}
	if hitID == "" {
		return IngestResult{}, errors.New("duckdb: hit id is required")
	}
	if len(parsed) != len(assignments) {
		return IngestResult{}, fmt.Errorf("duckdb: %d answer sets for %d assignments", len(parsed), len(assignments))
	}
	for i, assignment := range assignments {
		if assignment.ID == "" {
			return IngestResult{}, fmt.Errorf("duckdb: assignment %d has no id", i)
		}
	}

	result := IngestResult{IngestID: uuid.NewString(), HITID: hitID, Assignments: len(assignments)}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return IngestResult{}, fmt.Errorf("begin ingest: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ingests (ingest_id, hit_id, assignment_count, ingested_at) VALUES (?, ?, ?, ?)`,
		result.IngestID, hitID, len(assignments), time.Now().UTC(),
	); err != nil {
		return IngestResult{}, fmt.Errorf("insert ingest: %w", err)
	}
	for i, assignment := range assignments {
		if err := upsertAssignment(ctx, tx, result.IngestID, hitID, assignment); err != nil {
			return IngestResult{}, err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM answers WHERE assignment_id = ?`, assignment.ID); err != nil {
			return IngestResult{}, fmt.Errorf("clear answers %s: %w", assignment.ID, err)
		}
		for qid, value := range parsed[i] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO answers (assignment_id, question_id, value) VALUES (?, ?, ?)
				 ON CONFLICT (assignment_id, question_id) DO UPDATE SET value = excluded.value`,
				assignment.ID, qid, value,
			); err != nil {
				return IngestResult{}, fmt.Errorf("upsert answer %s/%s: %w", assignment.ID, qid, err)
			}
			result.Answers++
		}
	}
	if err := tx.Commit(); err != nil {
		return IngestResult{}, fmt.Errorf("commit ingest: %w", err)
	}
	return result, nil
}

func upsertAssignment(ctx context.Context, tx *sql.Tx, ingestID, hitID string, assignment mturk.Assignment) error {
	hit := assignment.HITID
	if hit == "" {
		hit = hitID
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO assignments (
		  assignment_id, ingest_id, hit_id, worker_id, status, accept_time, submit_time, answer_xml, answer_fingerprint
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (assignment_id) DO UPDATE SET
		  ingest_id = excluded.ingest_id,
		  status = excluded.status,
		  submit_time = excluded.submit_time,
		  answer_xml = excluded.answer_xml,
		  answer_fingerprint = excluded.answer_fingerprint`,
		assignment.ID,
		ingestID,
		hit,
		assignment.WorkerID,
		nullableString(assignment.Status),
		nullableTime(assignment.AcceptTime),
		nullableTime(assignment.SubmitTime),
		assignment.Answer,
		Fingerprint(assignment.Answer),
	); err != nil {
		return fmt.Errorf("upsert assignment %s: %w", assignment.ID, err)
	}
	return nil
}

// AnswersByQuestion rebuilds the per-question answer lists for hitID from
// the archive, ordered by submit time then assignment id.
func AnswersByQuestion(ctx context.Context, db *sql.DB, hitID string) (map[string][]string, error) {
	if db == nil {
		return nil, errors.New("duckdb: db is nil")
	}
	rows, err := db.QueryContext(ctx,
		`SELECT question_id, value
		 FROM v_answers
		 WHERE hit_id = ?
		 ORDER BY submit_time NULLS LAST, assignment_id, question_id`,
		hitID,
	)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()
	out := map[string][]string{}
	for rows.Next() {
		var qid, value string
		if err := rows.Scan(&qid, &value); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out[qid] = append(out[qid], value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return out, nil
}

// Fingerprint returns the SHA-256 hex digest of an answer document.
func Fingerprint(answerXML string) string {
	hash := sha256.Sum256([]byte(answerXML))
	return hex.EncodeToString(hash[:])
}

func nullableString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) interface{} {
	if value.IsZero() {
		return nil
	}
	return value.UTC()
}
