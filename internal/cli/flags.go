package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"mturkqa/internal/config"
	"mturkqa/internal/logger"
	"mturkqa/internal/mturk"
)

// remoteFlags are shared by every command that talks to MTurk.
type remoteFlags struct {
	configPath string
	profile    string
	verbose    bool
	noColor    bool
	logMode    string
}

func addRemoteFlags(flags *flag.FlagSet) *remoteFlags {
	rf := &remoteFlags{}
	flags.StringVar(&rf.configPath, "config", "", "Path to credentials file (default: search for .mturkqa/config.yml)")
	flags.StringVar(&rf.profile, "profile", "", "Profile name (default: $MTURK_PROFILE or default)")
	flags.BoolVar(&rf.verbose, "verbose", false, "Log remote calls to stderr")
	flags.BoolVar(&rf.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&rf.logMode, "log-format", "dev", "Log format: dev or prod")
	return rf
}

// parseFlags parses args and reports the exit code to return when parsing
// did not succeed.
func parseFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

// requireFlag reports a usage error when value is blank.
func requireFlag(cmd *Command, name, value string, stderr io.Writer) bool {
	if strings.TrimSpace(value) != "" {
		return true
	}
	fmt.Fprintf(stderr, "--%s is required\n", name)
	printCommandUsage(cmd, stderr)
	return false
}

// requester is the remote surface the commands use.
type requester interface {
	GetAccountBalance(ctx context.Context) (string, error)
	GetAssignment(ctx context.Context, id string) (mturk.Assignment, error)
	ListAssignmentsForHIT(ctx context.Context, hitID string) ([]mturk.Assignment, error)
	ListWorkersWithQualificationType(ctx context.Context, qualID string) ([]mturk.Qualification, error)
	ParseAssignmentAnswers(assignments []mturk.Assignment) ([]map[string]string, error)
}

// newRequester builds the remote client; tests replace it.
var newRequester = func(ctx context.Context, cfg config.Config, log *logger.Logger) (requester, error) {
	client, err := mturk.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// session holds what a remote command needs after setup.
type session struct {
	cfg     config.Config
	log     *logger.Logger
	client  requester
	noColor bool
}

// openSession loads configuration, builds the logger and the client. Errors
// are printed to stderr.
func openSession(ctx context.Context, rf *remoteFlags, stdout, stderr io.Writer) (*session, bool) {
	cfg, err := config.Load(config.LoadOptions{Path: rf.configPath, Profile: rf.profile})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
		return nil, false
	}
	log, err := logger.New(rf.logMode, rf.verbose, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create logger: %v\n", err)
		return nil, false
	}
	client, err := newRequester(ctx, cfg, log)
	if err != nil {
		log.Sync()
		fmt.Fprintf(stderr, "Failed to create client: %v\n", err)
		return nil, false
	}
	return &session{
		cfg:     cfg,
		log:     log,
		client:  client,
		noColor: colorDisabled(rf.noColor, stdout),
	}, true
}

func (s *session) close() {
	s.log.Sync()
}
