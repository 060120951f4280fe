package cli

import (
	"mturkqa/internal/mturk"
	"mturkqa/internal/question"
	"mturkqa/internal/ui"
)

// gradeAssignments grades every assignment against the answer key of spec.
// parsed[i] holds the answers of assignments[i].
func gradeAssignments(spec question.Spec, assignments []mturk.Assignment, parsed []map[string]string) ([]ui.GradeRow, error) {
	rows := make([]ui.GradeRow, 0, len(assignments))
	for i, assignment := range assignments {
		result, err := question.Grade(spec, parsed[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, ui.GradeRow{AssignmentID: assignment.ID, WorkerID: assignment.WorkerID, Result: result})
	}
	return rows, nil
}
