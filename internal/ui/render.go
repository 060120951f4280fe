package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"mturkqa/internal/mturk"
	"mturkqa/internal/question"
)

// RenderBalance renders the account balance line.
func RenderBalance(balance string, sandbox bool, noColor bool) string {
	line := "Available balance: $" + balance
	if sandbox {
		line += " (sandbox)"
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// RenderAnswers renders one row per question with the number of responses,
// the most common value and every value in assignment order.
func RenderAnswers(answers map[string][]string, noColor bool) string {
	if len(answers) == 0 {
		return stylize("No answers.", noColor, lipgloss.Color("242"))
	}
	rows := make([]table.Row, 0, len(answers))
	for _, qid := range sortedKeys(answers) {
		values := answers[qid]
		top, count := mostCommon(values)
		rows = append(rows, table.Row{
			qid,
			strconv.Itoa(len(values)),
			fmt.Sprintf("%s (%d)", truncate(top, 24), count),
			truncate(strings.Join(values, ", "), maxColumnWidth),
		})
	}
	return renderTable([]string{"Question", "Responses", "Most common", "Values"}, rows, noColor)
}

// RenderAssignment renders one assignment header followed by its answers.
func RenderAssignment(assignment mturk.Assignment, answers map[string]string, noColor bool) string {
	header := "Assignment " + assignment.ID + " | Worker: " + assignment.WorkerID + " | HIT: " + assignment.HITID
	if assignment.Status != "" {
		header += " | " + assignment.Status
	}
	if !assignment.SubmitTime.IsZero() {
		header += " | Submitted: " + formatTime(assignment.SubmitTime)
	}
	rows := make([]table.Row, 0, len(answers))
	for _, qid := range sortedKeys(answers) {
		rows = append(rows, table.Row{qid, truncate(answers[qid], maxColumnWidth)})
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		stylize(header, noColor, lipgloss.Color("33")),
		renderTable([]string{"Question", "Answer"}, rows, noColor),
	)
}

// RenderWorkers renders qualified workers in the order given.
func RenderWorkers(workers []mturk.Qualification, noColor bool) string {
	if len(workers) == 0 {
		return stylize("No workers.", noColor, lipgloss.Color("242"))
	}
	rows := make([]table.Row, 0, len(workers))
	for _, worker := range workers {
		value := "-"
		if worker.IntegerValue != nil {
			value = strconv.Itoa(int(*worker.IntegerValue))
		}
		rows = append(rows, table.Row{worker.WorkerID, worker.Status, value, formatTime(worker.GrantTime)})
	}
	return renderTable([]string{"Worker", "Status", "Value", "Granted"}, rows, noColor)
}

// GradeRow pairs an assignment with its grade.
type GradeRow struct {
	AssignmentID string
	WorkerID     string
	Result       question.GradeResult
}

// RenderGrades renders one row per graded assignment.
func RenderGrades(grades []GradeRow, noColor bool) string {
	if len(grades) == 0 {
		return stylize("No grades.", noColor, lipgloss.Color("242"))
	}
	rows := make([]table.Row, 0, len(grades))
	for _, grade := range grades {
		rows = append(rows, table.Row{
			grade.WorkerID,
			grade.AssignmentID,
			strconv.Itoa(grade.Result.Score) + "/" + strconv.Itoa(grade.Result.MaxScore),
			strconv.Itoa(grade.Result.Percent()) + "%",
		})
	}
	return renderTable([]string{"Worker", "Assignment", "Score", "Percent"}, rows, noColor)
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format(time.RFC3339)
}

// mostCommon returns the value that first reaches the highest count.
func mostCommon(values []string) (string, int) {
	counts := make(map[string]int, len(values))
	best, bestCount := "", 0
	for _, value := range values {
		counts[value]++
		if counts[value] > bestCount {
			best, bestCount = value, counts[value]
		}
	}
	return best, bestCount
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
