package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VenkatDaruru/doc-analyzer/internal/domain"
	"github.com/VenkatDaruru/doc-analyzer/internal/usecase/analyze"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// Analyzer defines the dependency required to run the analyze command.
type Analyzer interface {
	Analyze(ctx context.Context, req analyze.Request) (domain.Outcome, error)
}

// ReportWriter persists a completed analysis and returns the report path.
type ReportWriter interface {
	Write(sourcePath, analysis string) (string, error)
}

// Arguments encapsulates IO streams injected from the host process.
type Arguments struct {
	InReader  io.Reader
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Analyzer         Analyzer
	NewReportWriter  func(dir string) ReportWriter
	Args             Arguments
	DefaultOutputDir string
	Interactive      func() bool // stdin TTY check; nil means never prompt
	Version          string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "da",
		Short: "Multi-format document analyzer CLI",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	inReader := deps.Args.InReader
	if inReader == nil {
		inReader = os.Stdin
	}
	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetIn(inReader)
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(analyzeCommand(deps))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func analyzeCommand(deps Dependencies) *cobra.Command {
	var formatTag string
	var outputDir string
	var maxAttempts int
	var maxChars int

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a document and save the report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" && deps.Interactive != nil && deps.Interactive() {
				prompted, err := promptForPath(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				path = prompted
			}
			path = StripQuotes(strings.TrimSpace(path))
			if path == "" {
				return fmt.Errorf("no file specified; pass a path as an argument")
			}

			var format domain.Format
			if formatTag != "" {
				format = domain.ParseFormat(formatTag)
			} else {
				format = domain.FormatFromPath(path)
			}

			outcome, err := deps.Analyzer.Analyze(cmd.Context(), analyze.Request{
				Path:        path,
				Format:      format,
				MaxAttempts: maxAttempts,
				MaxChars:    maxChars,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch outcome.Kind {
			case domain.OutcomeSuccess:
				separator := strings.Repeat("=", 60)
				_, _ = fmt.Fprintf(out, "\n%s\nANALYSIS RESULTS\n%s\n\n%s\n", separator, separator, outcome.Text)

				dir := outputDir
				if dir == "" {
					dir = deps.DefaultOutputDir
				}
				reportPath, err := deps.NewReportWriter(dir).Write(path, outcome.Text)
				if err != nil {
					return fmt.Errorf("save analysis: %w", err)
				}
				_, _ = fmt.Fprintf(out, "\nAnalysis saved to: %s\n", reportPath)
				return nil

			case domain.OutcomeBlocked:
				return fmt.Errorf("analysis blocked by the service's content policy")

			case domain.OutcomeRateLimited:
				return fmt.Errorf("rate limited on every attempt; wait a few minutes and try again")

			case domain.OutcomeTransientError:
				return fmt.Errorf("analysis failed: %s", outcome.Message)

			default:
				return fmt.Errorf("analysis produced no result")
			}
		},
	}

	cmd.Flags().StringVar(&formatTag, "format", "", "Override format detection (text, word, spreadsheet)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Directory to write the report (defaults to config)")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Remote call budget (0 uses config default)")
	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "Document text limit in characters (0 uses config default)")

	return cmd
}

// promptForPath asks for a document path on the interactive console.
func promptForPath(in io.Reader, out io.Writer) (string, error) {
	_, _ = fmt.Fprint(out, "Enter the path to your document: ")
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", nil
	}
	return scanner.Text(), nil
}

// StripQuotes removes matching pairs of surrounding quote characters,
// as shells and file managers often paste paths quoted.
func StripQuotes(s string) string {
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = s[1 : len(s)-1]
			continue
		}
		break
	}
	return s
}
