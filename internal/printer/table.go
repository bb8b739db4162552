package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/slok/planboard/internal/model"
)

// TablePrinter prints board information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintBoard prints the board groups with one row per task.
func (t *TablePrinter) PrintBoard(b model.Board) error {
	if b.Window == nil {
		fmt.Fprintf(t.writer, "No tasks with %s dates to show\n", b.Settings.DateMode)
		return nil
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintf(t.writer, "%s %s (%s, %s mode)\n\n",
		bold.Sprint(b.Settings.ProjectID),
		FormatRange(b.Window.MinDate, b.Window.MaxDate),
		FormatDays(b.Window.TotalDays),
		b.Settings.DateMode,
	)

	for _, g := range b.Groups {
		fmt.Fprintf(t.writer, "%s %s\n",
			color.New(color.Bold, color.Underline).Sprint(g.Name),
			faint.Sprintf("- %d tasks, %s, %d man-days", g.Count, FormatDays(g.TotalDuration), g.TotalManDays),
		)

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(toCells(boardHeader(b.Settings))...)
		for _, bar := range g.Bars {
			tbl.AddRow(toCells(boardRow(b.Settings, bar))...)
		}
		fmt.Fprintln(t.writer, tbl)
		fmt.Fprintln(t.writer)
	}

	if b.Preview != nil {
		fmt.Fprintf(t.writer, "Preview of %s: %s\n", b.Preview.TaskID, FormatRange(b.Preview.Start, b.Preview.End))
	}
	if b.PendingCount > 0 {
		fmt.Fprintf(t.writer, "%d unsaved changes\n", b.PendingCount)
	}

	return nil
}

func boardHeader(s model.ViewSettings) []string {
	header := []string{"NAME"}
	for _, c := range Columns {
		if s.ColumnVisible(c) {
			header = append(header, strings.ToUpper(strings.ReplaceAll(c, "_", "-")))
		}
	}
	return header
}

func boardRow(s model.ViewSettings, bar model.BoardBar) []string {
	name := bar.Task.Name
	if bar.Pending {
		name += " *"
	}

	row := []string{name}
	values := map[string]string{
		ColumnID:       bar.Task.ID,
		ColumnStatus:   string(bar.Task.Status),
		ColumnStart:    FormatDate(bar.Start),
		ColumnEnd:      FormatDate(bar.End),
		ColumnDuration: strconv.Itoa(bar.Duration),
		ColumnManDays:  strconv.Itoa(bar.ManDays),
	}
	for _, c := range Columns {
		if s.ColumnVisible(c) {
			row = append(row, values[c])
		}
	}
	return row
}

func toCells(row []string) []any {
	cells := make([]any, 0, len(row))
	for _, c := range row {
		cells = append(cells, c)
	}
	return cells
}

// PrintSettings prints the view settings.
func (t *TablePrinter) PrintSettings(s model.ViewSettings) error {
	hidden := "-"
	if len(s.HiddenColumns) > 0 {
		hidden = strings.Join(s.HiddenColumns, ", ")
	}
	region := "-"
	if s.Region != "" {
		region = s.Region
	}

	fmt.Fprintf(t.writer, "Project:      %s\n", s.ProjectID)
	fmt.Fprintf(t.writer, "Date mode:    %s\n", s.DateMode)
	fmt.Fprintf(t.writer, "Granularity:  %s\n", s.Granularity)
	fmt.Fprintf(t.writer, "Width:        %dpx\n", s.TimelineWidth)
	fmt.Fprintf(t.writer, "Hidden:       %s\n", hidden)
	fmt.Fprintf(t.writer, "Region:       %s\n", region)

	return nil
}

// PrintWorkdays prints the business day accounting of a range.
func (t *TablePrinter) PrintWorkdays(c model.WorkdayCount) error {
	fmt.Fprintf(t.writer, "Range:          %s\n", FormatRange(c.From, c.To))
	if c.Region != "" {
		fmt.Fprintf(t.writer, "Region:         %s\n", c.Region)
	}
	fmt.Fprintf(t.writer, "Business days:  %d\n", c.BusinessDays)
	fmt.Fprintf(t.writer, "Calendar days:  %d\n", c.CalendarDays)
	fmt.Fprintf(t.writer, "Weekend days:   %d\n", c.WeekendDays)

	if len(c.Holidays) == 0 {
		return nil
	}

	fmt.Fprintln(t.writer, "\nHolidays:")
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, h := range c.Holidays {
		tbl.AddRow("  "+h.Date.String(), h.Date.Weekday().String(), h.Name)
	}
	fmt.Fprintln(t.writer, tbl)

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
