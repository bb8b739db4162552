package printer

import "github.com/slok/planboard/internal/model"

// Board columns that can be hidden with the view settings.
const (
	ColumnID       = "id"
	ColumnStatus   = "status"
	ColumnStart    = "start"
	ColumnEnd      = "end"
	ColumnDuration = "duration"
	ColumnManDays  = "man_days"
)

// Columns are the hideable board columns in display order.
var Columns = []string{ColumnID, ColumnStatus, ColumnStart, ColumnEnd, ColumnDuration, ColumnManDays}

// Printer knows how to print board information in different formats.
type Printer interface {
	PrintBoard(b model.Board) error
	PrintSettings(s model.ViewSettings) error
	PrintWorkdays(c model.WorkdayCount) error
	PrintMessage(msg string) error
}
