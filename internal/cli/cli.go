package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mturkqa <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"mturkqa <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .mturkqa/config.yml", []string{
		"mturkqa init [--config <path>]",
	}, runInit),
	command("balance", "Show the available account balance", []string{
		"mturkqa balance [--config <path>] [--profile <name>]",
	}, runBalance),
	command("assignment", "Show one assignment and its answers", []string{
		"mturkqa assignment --id <assignment-id>",
	}, runAssignment),
	command("assignments", "Aggregate the answers submitted for a HIT", []string{
		"mturkqa assignments --hit <hit-id> [--db <file>] [--key <task-file>]",
		"mturkqa assignments --hit <hit-id> --db <file> --cached",
	}, runAssignments),
	command("workers", "List workers holding a qualification", []string{
		"mturkqa workers --qualification <qualification-type-id>",
	}, runWorkers),
	command("build", "Render a task file as QuestionForm or AnswerKey XML", []string{
		"mturkqa build --spec <task-file> --kind question-form|answer-key [--out <file>]",
	}, runBuild),
	command("validate", "Validate a task file", []string{
		"mturkqa validate --spec <task-file>",
	}, runValidate),
	command("parse", "Parse a QuestionFormAnswers document", []string{
		"mturkqa parse --file <answers.xml> [--key <task-file>]",
	}, runParse),
}
