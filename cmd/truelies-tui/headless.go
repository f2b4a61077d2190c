package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"

	"github.com/altinukshini/truelies-tui/internal/export"
	"github.com/altinukshini/truelies-tui/internal/model"
	"github.com/altinukshini/truelies-tui/internal/ops"
	"github.com/altinukshini/truelies-tui/internal/printer"
	"github.com/altinukshini/truelies-tui/internal/report"
	"github.com/altinukshini/truelies-tui/internal/search"
	"github.com/altinukshini/truelies-tui/internal/source"
)

var (
	// Shared filter flags
	query string
	rng   ops.RangeInput

	// Filter command flags
	sortBy string

	// Stats command flags
	scope string

	// Export command flags
	format string
	outDir string

	filterCmd = &cobra.Command{
		Use:   "filter <report>",
		Short: "Print the results matching a query or ranges",
		Example: `  truelies-tui filter results.json --query "status:fail"
  truelies-tui filter results.db --min-score 0.5 --from 2024-12-01 --sort date`,
		Args: cobra.ExactArgs(1),
		RunE: runFilter,
	}

	statsCmd = &cobra.Command{
		Use:   "stats <report>",
		Short: "Print score statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}

	exportCmd = &cobra.Command{
		Use:   "export <report>",
		Short: "Export the matching results as JSON, YAML or PDF",
		Example: `  truelies-tui export results.json --format yaml --query failed
  truelies-tui export results.json --out - | jq '.[0]'`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
)

func init() {
	for _, c := range []*cobra.Command{filterCmd, statsCmd, exportCmd} {
		c.Flags().StringVarP(&query, "query", "q", "", "Search query, e.g. \"score:0.8\" or \"excellent\"")
		c.Flags().StringVar(&rng.Status, "status", "", "Keep results whose status contains this text (all, pass, fail)")
		c.Flags().StringVar(&rng.MinScore, "min-score", "", "Minimum score")
		c.Flags().StringVar(&rng.MaxScore, "max-score", "", "Maximum score")
		c.Flags().StringVar(&rng.From, "from", "", "Earliest date (YYYY-MM-DD)")
		c.Flags().StringVar(&rng.To, "to", "", "Latest date, inclusive (YYYY-MM-DD)")
		c.Flags().StringVar(&rng.MinFacts, "min-facts", "", "Minimum retained facts")
		c.Flags().StringVar(&rng.MaxFacts, "max-facts", "", "Maximum retained facts")
	}
	filterCmd.Flags().StringVar(&sortBy, "sort", "", "Sort by score or date")
	statsCmd.Flags().StringVar(&scope, "scope", "", "Rows to analyze: all or visible (overrides stats.scope)")
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json, yaml or pdf")
	exportCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory, or - for JSON on stdout (overrides export.dir)")
}

// openReport loads path and applies the shared filter flags through a
// headless viewer.
func openReport(cmd *cobra.Command, path string, statsScope report.StatsScope, writer export.Writer) (*report.Viewer, *printer.Surface, error) {
	logger := cliLogger()
	threshold := cfg.Grading.PassThreshold
	rows, err := source.Load(cmd.Context(), path, source.Options{
		PassThreshold: &threshold,
		Logger:        logger,
	})
	if err != nil {
		return nil, nil, err
	}

	ps := printer.New(rows)
	v := report.New(rows, ps, report.Options{
		Engine:        search.New(),
		Exporter:      writer,
		StatsScope:    statsScope,
		PassThreshold: &threshold,
		Logger:        logger,
	})

	ranged := rng != (ops.RangeInput{})
	switch {
	case query != "" && ranged:
		return nil, nil, errors.New("--query cannot be combined with range flags")
	case query != "":
		v.Search(query)
	case ranged:
		if err := v.FilterRangeInput(rng); err != nil {
			return nil, nil, err
		}
	}
	return v, ps, nil
}

func configWriter() export.Writer {
	return export.Writer{
		Dir:      cfg.Export.Dir,
		JSONName: cfg.Export.JSONName,
		Title:    cfg.Export.Title,
	}
}

func stdoutTerm() (io.Writer, bool, int) {
	t := term.FromEnv()
	width := 0
	if t.IsTerminalOutput() {
		if w, _, err := t.Size(); err == nil {
			width = w
		}
	}
	return t.Out(), t.IsTerminalOutput(), width
}

func printNotices(cmd *cobra.Command, ps *printer.Surface) {
	for _, line := range ps.NoticeLines() {
		fmt.Fprintln(cmd.ErrOrStderr(), line)
	}
}

func runFilter(cmd *cobra.Command, args []string) error {
	v, ps, err := openReport(cmd, args[0], report.ScopeAll, configWriter())
	if err != nil {
		return err
	}
	switch sortBy {
	case "":
	case "score":
		v.SortByScore()
	case "date":
		v.SortByDate()
	default:
		return fmt.Errorf("unknown sort %q (use score or date)", sortBy)
	}

	out, isTTY, width := stdoutTerm()
	if err := ps.Render(out, isTTY, width); err != nil {
		return err
	}
	printNotices(cmd, ps)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	sc := cfg.Stats.Scope
	if scope != "" {
		sc = scope
	}
	statsScope, err := report.ParseStatsScope(sc)
	if err != nil {
		return err
	}
	v, ps, err := openReport(cmd, args[0], statsScope, configWriter())
	if err != nil {
		return err
	}
	if _, err := v.Stats(); err != nil {
		printNotices(cmd, ps)
		return err
	}
	out, isTTY, width := stdoutTerm()
	return ps.RenderStats(out, isTTY, width)
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	writer := configWriter()
	if outDir != "" && outDir != "-" {
		writer.Dir = outDir
	}
	v, ps, err := openReport(cmd, args[0], report.ScopeAll, writer)
	if err != nil {
		return err
	}

	if outDir == "-" {
		if f != export.FormatJSON {
			return fmt.Errorf("--out - supports only json, got %s", f)
		}
		out, isTTY, _ := stdoutTerm()
		return writeJSON(out, isTTY, model.RecordsFor(v.VisibleRows()))
	}

	path, err := v.Export(f)
	printNotices(cmd, ps)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// writeJSON writes records to out, colorized when out is a terminal.
func writeJSON(out io.Writer, isTTY bool, records []model.Record) error {
	if !isTTY {
		return export.WriteJSON(out, records)
	}
	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, records); err != nil {
		return err
	}
	return jsonpretty.Format(out, &buf, "  ", true)
}
