package model

import "fmt"

// UngroupedMilestoneID is reserved for the group of tasks without an active milestone.
const UngroupedMilestoneID = "ungrouped"

// Milestone groups tasks of a project under a label.
type Milestone struct {
	ID        string
	ProjectID string
	Name      string
	// Active is false for retired milestones, their tasks are shown as ungrouped.
	Active bool
}

// Validate validates the milestone.
func (m Milestone) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("id is required: %w", ErrNotValid)
	}
	if m.ID == UngroupedMilestoneID {
		return fmt.Errorf("id %q is reserved: %w", m.ID, ErrNotValid)
	}
	if m.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}
	return nil
}

// ActiveMilestones returns only the active milestones.
func ActiveMilestones(ms []Milestone) []Milestone {
	active := make([]Milestone, 0, len(ms))
	for _, m := range ms {
		if m.Active {
			active = append(active, m)
		}
	}
	return active
}

// Holiday is a non-working day of a region.
type Holiday struct {
	Date   Date
	Name   string
	Region string
}
