package model

// Board is the view model handed to renderers.
type Board struct {
	Settings ViewSettings
	// Window is nil when no task is schedulable, renderers show an empty state.
	Window  *Window
	Groups  []BoardGroup
	Headers []HeaderSegment
	// Preview is the live position of the task being dragged, if any.
	Preview *Preview
	// PendingCount is the number of proposed changes waiting to be saved.
	PendingCount int
}

// Window is the padded date range of the timeline.
type Window struct {
	MinDate   Date
	MaxDate   Date
	TotalDays int
}

// BoardGroup is a milestone group of the board.
type BoardGroup struct {
	Key           string
	Name          string
	Bars          []BoardBar
	Count         int
	TotalDuration int
	TotalManDays  int
}

// BoardBar is a task placed on the timeline.
type BoardBar struct {
	Task        Task
	Start       Date
	End         Date
	StartOffset int // Days from the window start.
	Duration    int // Days, both ends included.
	ManDays     int
	// Pending is true when the bar shows a proposed change instead of the stored task.
	Pending bool
}

// HeaderSegment is a proportionally sized timeline header cell.
type HeaderSegment struct {
	Label string
	Start Date
	End   Date // Included.
	Days  int
}

// Fraction returns the share of the timeline the segment takes.
func (h HeaderSegment) Fraction(totalDays int) float64 {
	if totalDays <= 0 {
		return 0
	}
	return float64(h.Days) / float64(totalDays)
}

// Preview is the temporary position of a dragged task.
type Preview struct {
	TaskID string
	Start  Date
	End    Date
}

// ProjectImport is the content of a board import file.
type ProjectImport struct {
	ProjectID  string
	Milestones []Milestone
	Tasks      []Task
	// HolidayRegion is the region the holidays belong to, empty when none.
	HolidayRegion string
	Holidays      []Holiday
}

// WorkdayCount is the business day accounting of a date range.
type WorkdayCount struct {
	From         Date
	To           Date
	Region       string
	BusinessDays int
	CalendarDays int
	WeekendDays  int
	// Holidays are the holidays inside the range that fall on weekdays.
	Holidays []Holiday
}
