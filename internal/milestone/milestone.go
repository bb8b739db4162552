// Package milestone groups timeline bars into milestone buckets.
package milestone

import (
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/timeline"
)

const (
	// UngroupedKey is the reserved key of the group holding tasks without an active milestone.
	UngroupedKey = model.UngroupedMilestoneID
	// UngroupedName is the display name of the ungrouped group.
	UngroupedName = "Ungrouped"
)

// Group is a milestone bucket.
type Group struct {
	Key  string
	Name string
	Bars []timeline.Bar
	// TotalDuration is the sum of the bar durations, a workload figure that can
	// be bigger than the calendar span when bars overlap.
	TotalDuration int
}

// Count returns the number of tasks in the group.
func (g Group) Count() int { return len(g.Bars) }

// Span returns the calendar range covered by the group bars.
func (g Group) Span() (start, end model.Date) {
	for i, b := range g.Bars {
		if i == 0 {
			start, end = b.Start, b.End
			continue
		}
		start = model.MinDate(start, b.Start)
		end = model.MaxDate(end, b.End)
	}
	return start, end
}

// GroupBars groups the bars by milestone. Bars whose milestone is empty or not in the
// active milestones go to the ungrouped group. Groups keep the order in which their
// key is first seen so the board stays stable across renders.
func GroupBars(bars []timeline.Bar, active []model.Milestone) []Group {
	names := make(map[string]string, len(active))
	for _, m := range active {
		names[m.ID] = m.Name
	}

	var groups []Group
	index := map[string]int{}
	for _, b := range bars {
		key, name := UngroupedKey, UngroupedName
		if mName, ok := names[b.Task.MilestoneID]; ok && b.Task.MilestoneID != "" {
			key, name = b.Task.MilestoneID, mName
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Name: name})
		}

		groups[i].Bars = append(groups[i].Bars, b)
		groups[i].TotalDuration += b.Duration
	}

	return groups
}
