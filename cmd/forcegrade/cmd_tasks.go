package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/forcegrade/forcegrade/internal/models"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newTasksCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "tasks FILE",
		Short:         "List the tasks in a task file",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := models.LoadTaskFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printTaskTable(out, set.Tasks, terminalWidth(out))
			return nil
		},
	}
}

// minTitleWidth keeps the title column readable on narrow terminals.
const minTitleWidth = 12

// printTaskTable writes one row per task. A positive maxWidth caps the
// title column so that rows fit the terminal.
func printTaskTable(w io.Writer, tasks []models.Task, maxWidth int) {
	headers := []string{"ID", "FORCES", "RELATIONS", "SUMF", "TITLE"}
	rows := make([][]string, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		rows[i] = []string{
			t.ID,
			forceNames(t),
			fmt.Sprintf("%d", len(t.Relations)),
			sumTargets(t.SumF),
			t.Title,
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	if maxWidth > 0 {
		fixed := 0
		for _, wd := range widths[:len(widths)-1] {
			fixed += wd + 2
		}
		last := len(widths) - 1
		widths[last] = min(widths[last], max(maxWidth-fixed, minTitleWidth))
	}

	writeRow(w, headers, widths)
	for _, row := range rows {
		writeRow(w, row, widths)
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	var b strings.Builder
	last := len(cells) - 1
	for i, cell := range cells {
		if i == last {
			b.WriteString(runewidth.Truncate(cell, widths[i], "…"))
			break
		}
		b.WriteString(padRight(cell, widths[i]))
		b.WriteString("  ")
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " ")) //nolint:errcheck
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func forceNames(t *models.Task) string {
	names := make([]string, len(t.ExpectedForces))
	for i, f := range t.ExpectedForces {
		names[i] = f.Name
	}
	return strings.Join(names, ",")
}

func sumTargets(s *models.SumFSpec) string {
	if s == nil {
		return "-"
	}
	var parts []string
	for _, c := range []struct {
		axis string
		v    *float64
	}{{"x", s.X}, {"y", s.Y}, {"n", s.N}} {
		if c.v != nil {
			parts = append(parts, fmt.Sprintf("%s=%g", c.axis, *c.v))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
