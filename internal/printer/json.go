package printer

import (
	"encoding/json"
	"io"

	"github.com/slok/planboard/internal/model"
)

// JSONPrinter prints board information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type boardOutput struct {
	ProjectID    string         `json:"project_id"`
	DateMode     string         `json:"date_mode"`
	Granularity  string         `json:"granularity"`
	Window       *windowOutput  `json:"window"`
	Headers      []headerOutput `json:"headers"`
	Groups       []groupOutput  `json:"groups"`
	Preview      *previewOutput `json:"preview,omitempty"`
	PendingCount int            `json:"pending_count"`
}

type windowOutput struct {
	MinDate   string `json:"min_date"`
	MaxDate   string `json:"max_date"`
	TotalDays int    `json:"total_days"`
}

type headerOutput struct {
	Label    string  `json:"label"`
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Days     int     `json:"days"`
	Fraction float64 `json:"fraction"`
}

type groupOutput struct {
	Key           string      `json:"key"`
	Name          string      `json:"name"`
	Count         int         `json:"count"`
	TotalDuration int         `json:"total_duration"`
	TotalManDays  int         `json:"total_man_days"`
	Bars          []barOutput `json:"bars"`
}

type barOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	MilestoneID string `json:"milestone_id,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	StartOffset int    `json:"start_offset"`
	Duration    int    `json:"duration"`
	ManDays     int    `json:"man_days"`
	Pending     bool   `json:"pending"`
}

type previewOutput struct {
	TaskID string `json:"task_id"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type settingsOutput struct {
	ProjectID     string   `json:"project_id"`
	DateMode      string   `json:"date_mode"`
	Granularity   string   `json:"granularity"`
	TimelineWidth int      `json:"timeline_width"`
	HiddenColumns []string `json:"hidden_columns"`
	Region        string   `json:"region,omitempty"`
}

type workdaysOutput struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	Region       string          `json:"region,omitempty"`
	BusinessDays int             `json:"business_days"`
	CalendarDays int             `json:"calendar_days"`
	WeekendDays  int             `json:"weekend_days"`
	Holidays     []holidayOutput `json:"holidays"`
}

type holidayOutput struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintBoard prints the board view model in JSON format.
func (j *JSONPrinter) PrintBoard(b model.Board) error {
	output := boardOutput{
		ProjectID:    b.Settings.ProjectID,
		DateMode:     string(b.Settings.DateMode),
		Granularity:  string(b.Settings.Granularity),
		Headers:      []headerOutput{},
		Groups:       []groupOutput{},
		PendingCount: b.PendingCount,
	}

	if b.Window != nil {
		output.Window = &windowOutput{
			MinDate:   b.Window.MinDate.String(),
			MaxDate:   b.Window.MaxDate.String(),
			TotalDays: b.Window.TotalDays,
		}
		for _, h := range b.Headers {
			output.Headers = append(output.Headers, headerOutput{
				Label:    h.Label,
				Start:    h.Start.String(),
				End:      h.End.String(),
				Days:     h.Days,
				Fraction: h.Fraction(b.Window.TotalDays),
			})
		}
	}

	for _, g := range b.Groups {
		group := groupOutput{
			Key:           g.Key,
			Name:          g.Name,
			Count:         g.Count,
			TotalDuration: g.TotalDuration,
			TotalManDays:  g.TotalManDays,
			Bars:          make([]barOutput, 0, len(g.Bars)),
		}
		for _, bar := range g.Bars {
			group.Bars = append(group.Bars, barOutput{
				ID:          bar.Task.ID,
				Name:        bar.Task.Name,
				Status:      string(bar.Task.Status),
				MilestoneID: bar.Task.MilestoneID,
				Start:       bar.Start.String(),
				End:         bar.End.String(),
				StartOffset: bar.StartOffset,
				Duration:    bar.Duration,
				ManDays:     bar.ManDays,
				Pending:     bar.Pending,
			})
		}
		output.Groups = append(output.Groups, group)
	}

	if b.Preview != nil {
		output.Preview = &previewOutput{
			TaskID: b.Preview.TaskID,
			Start:  b.Preview.Start.String(),
			End:    b.Preview.End.String(),
		}
	}

	return j.encode(output)
}

// PrintSettings prints the view settings in JSON format.
func (j *JSONPrinter) PrintSettings(s model.ViewSettings) error {
	hidden := s.HiddenColumns
	if hidden == nil {
		hidden = []string{}
	}
	return j.encode(settingsOutput{
		ProjectID:     s.ProjectID,
		DateMode:      string(s.DateMode),
		Granularity:   string(s.Granularity),
		TimelineWidth: s.TimelineWidth,
		HiddenColumns: hidden,
		Region:        s.Region,
	})
}

// PrintWorkdays prints the business day accounting in JSON format.
func (j *JSONPrinter) PrintWorkdays(c model.WorkdayCount) error {
	output := workdaysOutput{
		From:         c.From.String(),
		To:           c.To.String(),
		Region:       c.Region,
		BusinessDays: c.BusinessDays,
		CalendarDays: c.CalendarDays,
		WeekendDays:  c.WeekendDays,
		Holidays:     make([]holidayOutput, 0, len(c.Holidays)),
	}
	for _, h := range c.Holidays {
		output.Holidays = append(output.Holidays, holidayOutput{Date: h.Date.String(), Name: h.Name})
	}

	return j.encode(output)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
