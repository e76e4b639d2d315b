package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/neochoon/agenthud-sub001/internal/testreport"
	"github.com/neochoon/agenthud-sub001/internal/tui/components"
	"github.com/neochoon/agenthud-sub001/internal/tui/icons"
	"github.com/neochoon/agenthud-sub001/internal/tui/theme"
)

// Report exit codes, stable for scripting.
const (
	exitFailures    = 1
	exitUnparseable = 2
)

type reportOptions struct {
	JSON     bool
	Markdown bool
	Save     string
}

func newReportCmd() *cobra.Command {
	var opts reportOptions
	cmd := &cobra.Command{
		Use:   "report [path]",
		Short: "Print a one-shot test report",
		Long: `Report reads a test results file (canonical JSON, runner JSON, or
JUnit XML), prints a summary, and exits 1 when failures are present or
2 when the file is missing or unparseable. Scripts branch on the exit
code; humans read the output.

Without a path the configured results_file is read.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if code := runReport(cmd, args, opts); code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the canonical JSON form")
	cmd.Flags().BoolVar(&opts.Markdown, "markdown", false, "render the report as markdown")
	cmd.Flags().StringVar(&opts.Save, "save", "", "also write the canonical JSON form to this path")
	return cmd
}

// runReport prints the report and returns the process exit code. Errors are
// printed here rather than returned so the unparseable path keeps its
// distinct code.
func runReport(cmd *cobra.Command, args []string, opts reportOptions) int {
	if themeName != "" {
		theme.SetCurrent(theme.Load(themeName))
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			return exitUnparseable
		}
		path = cfg.ResultsFile
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: reading %s: %v\n", path, err)
		return exitUnparseable
	}
	res, err := testreport.Parse(path, raw)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: parsing %s: %v\n", path, err)
		return exitUnparseable
	}

	malformed := res.Passed < 0
	if malformed {
		res.Passed = 0
	}

	if opts.Save != "" {
		if err := testreport.Save(opts.Save, res); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			return exitUnparseable
		}
	}

	switch {
	case opts.JSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			return exitUnparseable
		}
	case opts.Markdown:
		if err := renderMarkdownReport(cmd, path, res, malformed); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			return exitUnparseable
		}
	default:
		renderPlainReport(cmd, path, res, malformed)
	}

	if res.Failed > 0 {
		return exitFailures
	}
	return 0
}

func renderPlainReport(cmd *cobra.Command, path string, res testreport.Results, malformed bool) {
	t := theme.Current()
	ic := icons.Current()
	out := cmd.OutOrStdout()

	header := lipgloss.NewStyle().Bold(true).Foreground(t.Lavender)
	good := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	bad := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	warn := lipgloss.NewStyle().Foreground(t.Yellow)
	dim := lipgloss.NewStyle().Foreground(t.Overlay)

	fmt.Fprintln(out, header.Render("Test Report"), dim.Render(path))
	if malformed {
		fmt.Fprintln(out, warn.Render(ic.Warning+" malformed report, counts normalized"))
	}

	counts := []string{good.Render(fmt.Sprintf("%s %d passed", ic.Check, res.Passed))}
	if res.Failed > 0 {
		counts = append(counts, bad.Render(fmt.Sprintf("%s %d failed", ic.Cross, res.Failed)))
	}
	if res.Skipped > 0 {
		counts = append(counts, warn.Render(fmt.Sprintf("%d skipped", res.Skipped)))
	}
	fmt.Fprintln(out, strings.Join(counts, "  "))

	var meta []string
	if res.Hash != "" {
		meta = append(meta, fmt.Sprintf("commit %.7s", res.Hash))
	}
	if age, ok := res.Age(); ok {
		meta = append(meta, fmt.Sprintf("recorded %s ago", components.FormatAge(age)))
	}
	if len(meta) > 0 {
		fmt.Fprintln(out, dim.Render(strings.Join(meta, " • ")))
	}

	if len(res.Failures) > 0 {
		fmt.Fprintln(out)
		for _, f := range res.Failures {
			fmt.Fprintf(out, "  %s %s %s\n", bad.Render(ic.Cross), f.Name, dim.Render(f.File))
		}
	} else if res.Total() > 0 {
		fmt.Fprintln(out, good.Render(fmt.Sprintf("all %d tests passed", res.Total())))
	}
}

func renderMarkdownReport(cmd *cobra.Command, path string, res testreport.Results, malformed bool) error {
	var b strings.Builder
	b.WriteString("# Test Report\n\n")
	fmt.Fprintf(&b, "`%s`", path)
	if res.Hash != "" {
		fmt.Fprintf(&b, " at `%.7s`", res.Hash)
	}
	b.WriteString("\n\n")
	if malformed {
		b.WriteString("> Malformed report: counts normalized.\n\n")
	}
	fmt.Fprintf(&b, "| Passed | Failed | Skipped |\n|-------:|-------:|--------:|\n| %d | %d | %d |\n\n",
		res.Passed, res.Failed, res.Skipped)
	if len(res.Failures) > 0 {
		b.WriteString("## Failures\n\n")
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "- **%s** (%s)\n", f.Name, f.File)
		}
	} else if res.Total() > 0 {
		fmt.Fprintf(&b, "All %d tests passed.\n", res.Total())
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return err
	}
	rendered, err := r.Render(b.String())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
