package printer

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/slok/planboard/internal/model"
)

const (
	defaultGanttColumns = 80
	barChar             = "█"
	pendingBarChar      = "▓"
	previewBarChar      = "░"
	emptyChar           = "·"
)

var statusColors = map[model.TaskStatus]*color.Color{
	model.TaskStatusToDo:        color.New(color.FgWhite),
	model.TaskStatusInProgress:  color.New(color.FgBlue),
	model.TaskStatusUnderReview: color.New(color.FgYellow),
	model.TaskStatusDone:        color.New(color.FgGreen),
	model.TaskStatusOnHold:      color.New(color.FgMagenta),
	model.TaskStatusCancelled:   color.New(color.FgRed, color.Faint),
}

// GanttPrinter prints the board as a text timeline where every character
// is a proportional share of the window.
type GanttPrinter struct {
	*TablePrinter
	writer  io.Writer
	columns int
}

// NewGanttPrinter creates a new gantt printer with a timeline of columns characters.
func NewGanttPrinter(w io.Writer, columns int) *GanttPrinter {
	if columns <= 0 {
		columns = defaultGanttColumns
	}
	return &GanttPrinter{
		TablePrinter: NewTablePrinter(w),
		writer:       w,
		columns:      columns,
	}
}

// PrintBoard prints the header segments and one bar per task.
func (g *GanttPrinter) PrintBoard(b model.Board) error {
	if b.Window == nil {
		return g.TablePrinter.PrintBoard(b)
	}

	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = " "
	tbl.AddRow("", bold.Sprint(g.headerLine(b)))

	for _, grp := range b.Groups {
		tbl.AddRow(color.New(color.Bold, color.Underline).Sprint(grp.Name), "")
		for _, bar := range grp.Bars {
			name := "  " + bar.Task.Name
			if bar.Pending {
				name += " *"
			}
			tbl.AddRow(name, g.barLine(b, bar))
			if p := b.Preview; p != nil && p.TaskID == bar.Task.ID {
				tbl.AddRow("", g.previewLine(b, *p))
			}
		}
	}
	fmt.Fprintln(g.writer, tbl)

	if b.Preview != nil {
		fmt.Fprintf(g.writer, "\nPreview of %s: %s\n", b.Preview.TaskID, FormatRange(b.Preview.Start, b.Preview.End))
	}
	if b.PendingCount > 0 {
		fmt.Fprintf(g.writer, "%d unsaved changes\n", b.PendingCount)
	}

	return nil
}

// headerLine lays out the segment labels in proportional cells.
func (g *GanttPrinter) headerLine(b model.Board) string {
	var sb strings.Builder
	used := 0
	for i, h := range b.Headers {
		width := g.cols(h.Fraction(b.Window.TotalDays))
		if i == len(b.Headers)-1 {
			width = g.columns - used
		}
		if width <= 0 {
			continue
		}
		used += width

		label := h.Label
		if len(label) >= width {
			label = label[:max(width-1, 0)]
		}
		sb.WriteString("|")
		sb.WriteString(label)
		if pad := width - 1 - len(label); pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
		}
	}
	return sb.String()
}

func (g *GanttPrinter) barLine(b model.Board, bar model.BoardBar) string {
	total := float64(b.Window.TotalDays)
	x := g.cols(float64(bar.StartOffset) / total)
	w := max(g.cols(float64(bar.Duration)/total), 1)
	x = min(max(x, 0), g.columns-1)
	w = min(w, g.columns-x)

	line := []string{strings.Repeat(emptyChar, x)}

	c, ok := statusColors[bar.Task.Status]
	if !ok {
		c = color.New()
	}
	char := barChar
	if bar.Pending {
		char = pendingBarChar
		c = color.New(color.FgCyan, color.Bold)
	}
	line = append(line, c.Sprint(strings.Repeat(char, w)))
	line = append(line, strings.Repeat(emptyChar, g.columns-x-w))

	return strings.Join(line, "")
}

func (g *GanttPrinter) previewLine(b model.Board, p model.Preview) string {
	total := float64(b.Window.TotalDays)
	x := g.cols(float64(b.Window.MinDate.DaysUntil(p.Start)) / total)
	w := max(g.cols(float64(p.Start.DaysUntil(p.End)+1)/total), 1)
	x = min(max(x, 0), g.columns-1)
	w = min(w, g.columns-x)

	return strings.Repeat(" ", x) + color.New(color.Faint).Sprint(strings.Repeat(previewBarChar, w))
}

func (g *GanttPrinter) cols(fraction float64) int {
	return int(math.Round(fraction * float64(g.columns)))
}
