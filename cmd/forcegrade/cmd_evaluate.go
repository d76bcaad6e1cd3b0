package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/forcegrade/forcegrade/internal/engine"
	"github.com/forcegrade/forcegrade/internal/models"
	"github.com/forcegrade/forcegrade/internal/projectconfig"
	"github.com/forcegrade/forcegrade/internal/reporting"
	"github.com/forcegrade/forcegrade/internal/scoring"
	"github.com/spf13/cobra"
)

// Output formats accepted by --format.
const (
	formatText     = "text"
	formatJSON     = "json"
	formatJUnit    = "junit"
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

type evaluateOptions struct {
	taskPath      string
	taskID        string
	drawingPath   string
	format        string
	output        string
	threshold     float64
	seedInitial   bool
	debugFeedback bool
}

func newEvaluateCommand() *cobra.Command {
	opts := &evaluateOptions{}
	cmd := &cobra.Command{
		Use:   "evaluate --task FILE --drawing FILE",
		Short: "Grade a drawing against a task",
		Long: `Grade a drawing against a task and print the score with feedback.

The task file may hold a single task or a set of tasks; pick one with
--task-id, or let the drawing's taskId select it. Drawings may be YAML or
JSON, optionally compressed with gzip or zstd.

Settings are read from .forcegrade.yaml, searched upward from the task
file's directory. Flags override the file.

Exits with status 1 when the score is below the pass threshold.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.taskPath, "task", "", "Task file (YAML or JSON)")
	cmd.Flags().StringVar(&opts.taskID, "task-id", "", "Task to grade when the file holds several")
	cmd.Flags().StringVar(&opts.drawingPath, "drawing", "", "Drawing snapshot file")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: text | json | junit | markdown | html")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", projectconfig.DefaultPassThreshold, "Minimum final score to pass (0-1)")
	cmd.Flags().BoolVar(&opts.seedInitial, "seed-initial", false, "Add the task's pre-drawn forces to the drawing")
	cmd.Flags().BoolVar(&opts.debugFeedback, "debug-feedback", false, "Append measured errors to feedback lines")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("drawing")

	return cmd
}

func runEvaluate(cmd *cobra.Command, opts *evaluateOptions) error {
	cfg, err := projectconfig.Load(filepath.Dir(opts.taskPath))
	if err != nil {
		return err
	}
	applyConfig(cmd, opts, cfg)

	if opts.threshold < 0 || opts.threshold > 1 {
		return fmt.Errorf("--threshold must be within [0, 1], got %g", opts.threshold)
	}
	switch opts.format {
	case formatText, formatJSON, formatJUnit, formatMarkdown, formatHTML:
	default:
		return fmt.Errorf("unknown format %q (want text, json, junit, markdown or html)", opts.format)
	}

	tol, err := scoring.DecodeTolerances(scoring.Defaults(), cfg.Tolerances)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Path, err)
	}

	set, err := models.LoadTaskFile(opts.taskPath)
	if err != nil {
		return err
	}
	drawing, err := models.LoadDrawing(opts.drawingPath)
	if err != nil {
		return err
	}

	id := opts.taskID
	if id == "" {
		id = drawing.TaskID
	}
	task, err := set.Find(id)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.taskPath, err)
	}

	engineOpts := []engine.Option{
		engine.WithTolerances(tol),
		engine.WithLogger(slog.Default()),
	}
	if opts.seedInitial {
		engineOpts = append(engineOpts, engine.WithSeedInitialForces())
	}
	ev, err := engine.Evaluate(task, drawing, engineOpts...)
	if err != nil {
		return err
	}

	if err := writeReport(cmd.OutOrStdout(), ev, opts); err != nil {
		return err
	}

	if !reporting.Passed(ev, opts.threshold) {
		return &GradeFailureError{
			Message: fmt.Sprintf("%s: score %.2f is below the threshold %.2f", ev.TaskID, ev.Summary.FinalScore, opts.threshold),
		}
	}
	return nil
}

// applyConfig fills options the user did not set on the command line from
// the project config.
func applyConfig(cmd *cobra.Command, opts *evaluateOptions, cfg *projectconfig.ProjectConfig) {
	flags := cmd.Flags()
	if !flags.Changed("format") {
		opts.format = cfg.Output.Format
	}
	if !flags.Changed("threshold") && cfg.Grading.PassThreshold != nil {
		opts.threshold = *cfg.Grading.PassThreshold
	}
	if !flags.Changed("seed-initial") && cfg.Grading.SeedInitialForces != nil {
		opts.seedInitial = *cfg.Grading.SeedInitialForces
	}
	if !flags.Changed("debug-feedback") && cfg.Output.DebugFeedback != nil {
		opts.debugFeedback = *cfg.Output.DebugFeedback
	}
}

func writeReport(stdout io.Writer, ev *models.Evaluation, opts *evaluateOptions) error {
	if opts.output != "" && opts.format == formatJUnit {
		if err := reporting.WriteJUnitXML(ev, opts.threshold, opts.output); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "JUnit report written to %s\n", opts.output) //nolint:errcheck
		return nil
	}

	w := stdout
	var f *os.File
	if opts.output != "" {
		var err error
		if f, err = os.Create(opts.output); err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		w = f
	}

	err := renderReport(w, ev, opts)
	if f != nil {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func renderReport(w io.Writer, ev *models.Evaluation, opts *evaluateOptions) error {
	switch opts.format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ev)
	case formatJUnit:
		return reporting.EncodeJUnit(w, ev, opts.threshold)
	case formatMarkdown:
		_, err := io.WriteString(w, reporting.FormatMarkdown(ev, opts.threshold, opts.debugFeedback))
		return err
	case formatHTML:
		page, err := reporting.RenderHTML(ev.TaskID, reporting.FormatMarkdown(ev, opts.threshold, opts.debugFeedback))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, page)
		return err
	default:
		_, err := io.WriteString(w, reporting.FormatSummaryReport(ev, opts.threshold, opts.debugFeedback))
		return err
	}
}
