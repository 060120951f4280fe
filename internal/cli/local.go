package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"mturkqa/internal/qaxml"
	"mturkqa/internal/question"
	"mturkqa/internal/ui"
)

// runBuild builds the handler for the build command.
func runBuild(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to task file (.yml or .json)")
		kindValue := flags.String("kind", "question-form", "Document kind: question-form or answer-key")
		outPath := flags.String("out", "", "Write XML to this file instead of stdout")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if !requireFlag(cmd, "spec", *specPath, stderr) {
			return ExitUsage
		}
		kind, err := qaxml.ParseKind(*kindValue)
		if err == nil && kind != qaxml.KindQuestionForm && kind != qaxml.KindAnswerKey {
			err = fmt.Errorf("%w: cannot build %s from a task file", qaxml.ErrConfiguration, kind)
		}
		if err != nil {
			fmt.Fprintf(stderr, "invalid --kind: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		spec, err := question.LoadSpec(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load task file:\n%v\n", err)
			return ExitError
		}
		var doc *qaxml.Document
		if kind == qaxml.KindAnswerKey {
			doc, err = question.BuildAnswerKey(spec)
		} else {
			doc, err = question.BuildQuestionForm(spec)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Build failed: %v\n", err)
			return ExitError
		}

		if strings.TrimSpace(*outPath) == "" {
			fmt.Fprintln(stdout, doc.String())
			return ExitOK
		}
		if err := os.WriteFile(*outPath, doc.Bytes(), 0o644); err != nil {
			fmt.Fprintf(stderr, "Build failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", *outPath)
		return ExitOK
	}
}

// runParse builds the handler for the parse command.
func runParse(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		filePath := flags.String("file", "", "QuestionFormAnswers XML file")
		keyPath := flags.String("key", "", "Task file whose answer key grades the answers")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if !requireFlag(cmd, "file", *filePath, stderr) {
			return ExitUsage
		}

		file, err := os.Open(*filePath)
		if err != nil {
			fmt.Fprintf(stderr, "Parse failed: %v\n", err)
			return ExitError
		}
		defer file.Close()
		answers, err := qaxml.DecodeAnswers(file)
		if err != nil {
			fmt.Fprintf(stderr, "Parse failed: %v\n", err)
			if errors.Is(err, qaxml.ErrSchemaMismatch) {
				fmt.Fprintln(stderr, "The file is not a QuestionFormAnswers document.")
			}
			return ExitError
		}

		plain := colorDisabled(*noColor, stdout)
		aggregated := make(map[string][]string, len(answers))
		for qid, value := range answers {
			aggregated[qid] = []string{value}
		}
		fmt.Fprintln(stdout, ui.RenderAnswers(aggregated, plain))

		if *keyPath == "" {
			return ExitOK
		}
		spec, err := question.LoadSpec(*keyPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load task file:\n%v\n", err)
			return ExitError
		}
		result, err := question.Grade(spec, answers)
		if err != nil {
			fmt.Fprintf(stderr, "Grading failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, ui.RenderGrades([]ui.GradeRow{{AssignmentID: *filePath, WorkerID: "-", Result: result}}, plain))
		return ExitOK
	}
}
