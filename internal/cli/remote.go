package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"mturkqa/internal/duckdb"
	"mturkqa/internal/mturk"
	"mturkqa/internal/qaxml"
	"mturkqa/internal/question"
	"mturkqa/internal/ui"
)

// commandContext is cancelled on interrupt.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// runBalance builds the handler for the balance command.
func runBalance(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		rf := addRemoteFlags(flags)
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		ctx, cancel := commandContext()
		defer cancel()
		sess, ok := openSession(ctx, rf, stdout, stderr)
		if !ok {
			return ExitError
		}
		defer sess.close()

		balance, err := sess.client.GetAccountBalance(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Balance failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, ui.RenderBalance(balance, sess.cfg.Sandbox, sess.noColor))
		return ExitOK
	}
}

// runAssignment builds the handler for the assignment command.
func runAssignment(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		rf := addRemoteFlags(flags)
		id := flags.String("id", "", "Assignment id")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if !requireFlag(cmd, "id", *id, stderr) {
			return ExitUsage
		}

		ctx, cancel := commandContext()
		defer cancel()
		sess, ok := openSession(ctx, rf, stdout, stderr)
		if !ok {
			return ExitError
		}
		defer sess.close()

		assignment, err := sess.client.GetAssignment(ctx, *id)
		if err != nil {
			fmt.Fprintf(stderr, "Assignment failed: %v\n", err)
			return ExitError
		}
		parser, err := qaxml.New(qaxml.KindQuestionFormAnswers)
		if err != nil {
			fmt.Fprintf(stderr, "Assignment failed: %v\n", err)
			return ExitError
		}
		answers, err := parser.GetAnswer(assignment.Answer)
		if err != nil {
			fmt.Fprintf(stderr, "Parse answers failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, ui.RenderAssignment(assignment, answers, sess.noColor))
		return ExitOK
	}
}

// runAssignments builds the handler for the assignments command.
func runAssignments(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		rf := addRemoteFlags(flags)
		hitID := flags.String("hit", "", "HIT id")
		dbPath := flags.String("db", "", "DuckDB archive to store assignments in")
		keyPath := flags.String("key", "", "Task file whose answer key grades each assignment")
		cached := flags.Bool("cached", false, "Read answers from --db instead of MTurk")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if !requireFlag(cmd, "hit", *hitID, stderr) {
			return ExitUsage
		}
		if *cached && *dbPath == "" {
			fmt.Fprintln(stderr, "--cached requires --db")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		ctx, cancel := commandContext()
		defer cancel()

		if *cached {
			return printCachedAnswers(ctx, *dbPath, *hitID, colorDisabled(rf.noColor, stdout), stdout, stderr)
		}

		var spec *question.Spec
		if *keyPath != "" {
			loaded, err := question.LoadSpec(*keyPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load task file:\n%v\n", err)
				return ExitError
			}
			spec = &loaded
		}

		sess, ok := openSession(ctx, rf, stdout, stderr)
		if !ok {
			return ExitError
		}
		defer sess.close()

		assignments, err := sess.client.ListAssignmentsForHIT(ctx, *hitID)
		if err != nil {
			fmt.Fprintf(stderr, "Assignments failed: %v\n", err)
			return ExitError
		}
		parsed, err := sess.client.ParseAssignmentAnswers(assignments)
		if err != nil {
			fmt.Fprintf(stderr, "Parse answers failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "HIT %s: %d assignments\n", *hitID, len(assignments))
		fmt.Fprintln(stdout, ui.RenderAnswers(mturk.AggregateAnswers(parsed), sess.noColor))

		if spec != nil {
			rows, err := gradeAssignments(*spec, assignments, parsed)
			if err != nil {
				fmt.Fprintf(stderr, "Grading failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintln(stdout, ui.RenderGrades(rows, sess.noColor))
		}

		if *dbPath != "" {
			db, err := duckdb.Open(ctx, *dbPath)
			if err != nil {
				fmt.Fprintf(stderr, "Archive failed: %v\n", err)
				return ExitError
			}
			defer db.Close()
			result, err := duckdb.SaveParsedAssignments(ctx, db, *hitID, assignments, parsed)
			if err != nil {
				fmt.Fprintf(stderr, "Archive failed: %v\n", err)
				return ExitError
			}
			sess.log.Info("archived assignments", "ingest_id", result.IngestID, "hit_id", *hitID, "answers", result.Answers)
			fmt.Fprintf(stdout, "Archived %d assignments to %s (ingest %s)\n", result.Assignments, *dbPath, result.IngestID)
		}
		return ExitOK
	}
}

func printCachedAnswers(ctx context.Context, dbPath, hitID string, noColor bool, stdout, stderr io.Writer) int {
	db, err := duckdb.Open(ctx, dbPath)
	if err != nil {
		fmt.Fprintf(stderr, "Archive failed: %v\n", err)
		return ExitError
	}
	defer db.Close()
	answers, err := duckdb.AnswersByQuestion(ctx, db, hitID)
	if err != nil {
		fmt.Fprintf(stderr, "Archive failed: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(stdout, "HIT %s (cached)\n", hitID)
	fmt.Fprintln(stdout, ui.RenderAnswers(answers, noColor))
	return ExitOK
}

// runWorkers builds the handler for the workers command.
func runWorkers(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		rf := addRemoteFlags(flags)
		qualID := flags.String("qualification", "", "Qualification type id")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if !requireFlag(cmd, "qualification", *qualID, stderr) {
			return ExitUsage
		}

		ctx, cancel := commandContext()
		defer cancel()
		sess, ok := openSession(ctx, rf, stdout, stderr)
		if !ok {
			return ExitError
		}
		defer sess.close()

		workers, err := sess.client.ListWorkersWithQualificationType(ctx, *qualID)
		if err != nil {
			fmt.Fprintf(stderr, "Workers failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, ui.RenderWorkers(workers, sess.noColor))
		return ExitOK
	}
}
