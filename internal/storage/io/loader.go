package io

import (
	"context"
	"crypto/rand"
	"fmt"
	"io/fs"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/slok/planboard/internal/model"
)

// BoardYAMLRepository loads project boards from YAML files.
type BoardYAMLRepository struct {
	fs    fs.FS
	newID func() string
}

// NewBoardYAMLRepository creates a new YAML board repository.
func NewBoardYAMLRepository(filesystem fs.FS) *BoardYAMLRepository {
	return &BoardYAMLRepository{
		fs: filesystem,
		newID: func() string {
			return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
		},
	}
}

// GetBoard loads a board from a YAML file and returns a validated domain model.
// Milestones and tasks without id get a generated one.
func (r *BoardYAMLRepository) GetBoard(ctx context.Context, path string) (model.ProjectImport, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.ProjectImport{}, fmt.Errorf("reading board file: %w", err)
	}

	if ctx.Err() != nil {
		return model.ProjectImport{}, ctx.Err()
	}

	var b BoardFile
	if err := yaml.Unmarshal(data, &b); err != nil {
		return model.ProjectImport{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := b.validate(); err != nil {
		return model.ProjectImport{}, fmt.Errorf("invalid board: %w: %w", err, model.ErrNotValid)
	}

	return b.toModel(r.newID), nil
}

// BoardFile represents the YAML structure of a board import file.
type BoardFile struct {
	Project    string          `yaml:"project"`
	Milestones []MilestoneFile `yaml:"milestones"`
	Tasks      []TaskFile      `yaml:"tasks"`
	Holidays   *HolidaysFile   `yaml:"holidays,omitempty"`
}

// MilestoneFile represents the YAML structure of a milestone.
type MilestoneFile struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Active *bool  `yaml:"active,omitempty"`
}

// TaskFile represents the YAML structure of a task.
type TaskFile struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Status    string     `yaml:"status"`
	Milestone string     `yaml:"milestone"` // Milestone id or name.
	Estimated *RangeFile `yaml:"estimated,omitempty"`
	Actual    *RangeFile `yaml:"actual,omitempty"`
}

// RangeFile represents the YAML structure of a date range.
type RangeFile struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// HolidaysFile represents the YAML structure of the holidays of a region.
type HolidaysFile struct {
	Region string        `yaml:"region"`
	Days   []HolidayFile `yaml:"days"`
}

// HolidayFile represents the YAML structure of a holiday.
type HolidayFile struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

func (b BoardFile) validate() error {
	if b.Project == "" {
		return fmt.Errorf("project is required")
	}

	msNames := map[string]bool{}
	for i, m := range b.Milestones {
		if m.Name == "" {
			return fmt.Errorf("milestone %d: name is required", i)
		}
		if m.ID == model.UngroupedMilestoneID {
			return fmt.Errorf("milestone %q: id %q is reserved", m.Name, m.ID)
		}
		if msNames[m.Name] {
			return fmt.Errorf("milestone %d: duplicated name %q", i, m.Name)
		}
		msNames[m.Name] = true
		if m.ID != "" {
			msNames[m.ID] = true
		}
	}

	for i, t := range b.Tasks {
		if t.Name == "" {
			return fmt.Errorf("task %d: name is required", i)
		}
		if t.Status != "" && !model.TaskStatus(t.Status).Valid() {
			return fmt.Errorf("task %q: unknown status %q", t.Name, t.Status)
		}
		if t.Milestone != "" && !msNames[t.Milestone] {
			return fmt.Errorf("task %q: unknown milestone %q", t.Name, t.Milestone)
		}
		for _, r := range []*RangeFile{t.Estimated, t.Actual} {
			if err := r.validate(); err != nil {
				return fmt.Errorf("task %q: %w", t.Name, err)
			}
		}
	}

	if b.Holidays != nil {
		if b.Holidays.Region == "" {
			return fmt.Errorf("holidays region is required")
		}
		for _, h := range b.Holidays.Days {
			if _, err := model.ParseDate(h.Date); err != nil {
				return fmt.Errorf("holiday %q: %w", h.Name, err)
			}
		}
	}

	return nil
}

// validate accepts half-filled and inverted ranges, those tasks are only left out of the timeline.
func (r *RangeFile) validate() error {
	if r == nil {
		return nil
	}
	for _, d := range []string{r.Start, r.End} {
		if d == "" {
			continue
		}
		if _, err := model.ParseDate(d); err != nil {
			return err
		}
	}
	return nil
}

func (r *RangeFile) toModel() (start, end model.Date) {
	if r == nil {
		return model.Date{}, model.Date{}
	}
	if r.Start != "" {
		start = model.MustParseDate(r.Start)
	}
	if r.End != "" {
		end = model.MustParseDate(r.End)
	}
	return start, end
}

func (b BoardFile) toModel(newID func() string) model.ProjectImport {
	p := model.ProjectImport{ProjectID: b.Project}

	msIDs := map[string]string{}
	for _, m := range b.Milestones {
		id := m.ID
		if id == "" {
			id = newID()
		}
		msIDs[m.Name] = id
		msIDs[id] = id

		active := true
		if m.Active != nil {
			active = *m.Active
		}

		p.Milestones = append(p.Milestones, model.Milestone{
			ID:        id,
			ProjectID: b.Project,
			Name:      m.Name,
			Active:    active,
		})
	}

	for _, t := range b.Tasks {
		id := t.ID
		if id == "" {
			id = newID()
		}

		status := model.TaskStatus(t.Status)
		if status == "" {
			status = model.TaskStatusToDo
		}

		task := model.Task{
			ID:          id,
			ProjectID:   b.Project,
			Name:        t.Name,
			Status:      status,
			MilestoneID: msIDs[t.Milestone],
		}
		task.EstimatedStart, task.EstimatedEnd = t.Estimated.toModel()
		task.ActualStart, task.ActualEnd = t.Actual.toModel()

		p.Tasks = append(p.Tasks, task)
	}

	if b.Holidays != nil {
		p.HolidayRegion = b.Holidays.Region
		for _, h := range b.Holidays.Days {
			p.Holidays = append(p.Holidays, model.Holiday{
				Date:   model.MustParseDate(h.Date),
				Name:   h.Name,
				Region: b.Holidays.Region,
			})
		}
	}

	return p
}
