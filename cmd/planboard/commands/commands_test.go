package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEditLine(t *testing.T) {
	from := 400.0

	tests := map[string]struct {
		line   string
		expCmd editCmd
		expErr bool
	}{
		"An empty line should do nothing.": {
			line:   "   ",
			expCmd: editCmd{kind: editNoop},
		},
		"A move should parse the task and the release position.": {
			line:   "move t1 500",
			expCmd: editCmd{kind: editMove, taskID: "t1", toX: 500},
		},
		"A move should parse the optional press position.": {
			line:   "mv t1 500.5 400",
			expCmd: editCmd{kind: editMove, taskID: "t1", toX: 500.5, fromX: &from},
		},
		"A move without position should fail.": {
			line:   "move t1",
			expErr: true,
		},
		"A move with an invalid position should fail.": {
			line:   "move t1 right",
			expErr: true,
		},
		"A resize should keep the days as typed.": {
			line:   "resize t1 abc",
			expCmd: editCmd{kind: editResize, taskID: "t1", days: "abc"},
		},
		"Commands should be case insensitive.": {
			line:   "SAVE",
			expCmd: editCmd{kind: editSave},
		},
		"Quit aliases should parse.": {
			line:   "q",
			expCmd: editCmd{kind: editQuit},
		},
		"Unknown commands should fail.": {
			line:   "undo",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			cmd, err := parseEditLine(test.line)

			if test.expErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expCmd, cmd)
		})
	}
}

func TestParseColumns(t *testing.T) {
	tests := map[string]struct {
		value      string
		expColumns []string
		expErr     bool
	}{
		"None should show all the columns.": {
			value:      "none",
			expColumns: []string{},
		},
		"A list should be trimmed.": {
			value:      "id, man_days,",
			expColumns: []string{"id", "man_days"},
		},
		"Unknown columns should fail.": {
			value:  "id,owner",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			columns, err := parseColumns(test.value)

			if test.expErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expColumns, columns)
		})
	}
}

func TestFormatShift(t *testing.T) {
	assert.Equal(t, "+2 days", FormatShift(2))
	assert.Equal(t, "-1 day", FormatShift(-1))
	assert.Equal(t, "0 days", FormatShift(0))
}
