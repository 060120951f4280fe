package cli

import (
	"flag"
	"fmt"
	"io"

	"mturkqa/internal/question"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to task file (.yml or .json)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if !requireFlag(cmd, "spec", *specPath, stderr) {
			return ExitUsage
		}

		spec, err := question.LoadSpec(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		maxScore := 0
		for _, entry := range spec.AnswerKey {
			score, _ := entry.Score.Int()
			maxScore += score
		}
		fmt.Fprintf(stdout, "Task OK: %d questions, %d answer key entries, max score %d\n",
			len(spec.Questions), len(spec.AnswerKey), maxScore)
		return ExitOK
	}
}
