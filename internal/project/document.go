// Package project persists timelines as YAML documents. The document mirrors
// the timeline model field for field, with no schema version and no
// migration. Transient view state (the selection) is not part of the document.
package project

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ivlev/trackline/internal/timeline"
)

// Document is the on-disk shape of a timeline.
type Document struct {
	TotalLength   float64 `yaml:"total_length"`
	ZoomLevel     float64 `yaml:"zoom_level"`
	ScrollOffset  float64 `yaml:"scroll_offset"`
	CurrentTime   float64 `yaml:"current_time"`
	ViewportWidth float64 `yaml:"viewport_width"`
	Tracks        []Track `yaml:"tracks"`
}

// Track is the on-disk shape of a track.
type Track struct {
	Name   string  `yaml:"name"`
	Height float64 `yaml:"height"`
	Clips  []Clip  `yaml:"clips"`
}

// Clip is the on-disk shape of a clip.
type Clip struct {
	ID        string  `yaml:"id,omitempty"`
	Name      string  `yaml:"name"`
	StartTime float64 `yaml:"start_time"`
	Duration  float64 `yaml:"duration"`
	Color     string  `yaml:"color,omitempty"`
	Action    string  `yaml:"action,omitempty"`
	Script    string  `yaml:"script,omitempty"`
}

// FromTimeline snapshots a timeline into a document.
func FromTimeline(t *timeline.Timeline) *Document {
	doc := &Document{
		TotalLength:   t.TotalLength,
		ZoomLevel:     t.ZoomLevel,
		ScrollOffset:  t.ScrollOffset,
		CurrentTime:   t.CurrentTime,
		ViewportWidth: t.ViewportWidth,
	}

	for _, tr := range t.Tracks {
		td := Track{
			Name:   tr.Name,
			Height: tr.Height,
		}
		for _, c := range tr.Clips {
			td.Clips = append(td.Clips, Clip{
				ID:        c.ID.String(),
				Name:      c.Name,
				StartTime: c.StartTime,
				Duration:  c.Duration,
				Color:     c.Color,
				Action:    string(c.Action),
				Script:    c.Script,
			})
		}
		doc.Tracks = append(doc.Tracks, td)
	}

	return doc
}

// Timeline rebuilds the in-memory model from a document. Malformed data fails
// the whole load; there is no partial recovery. A clip without an ID (a
// hand-written file) gets a fresh one.
func (d *Document) Timeline() (*timeline.Timeline, error) {
	t := &timeline.Timeline{
		TotalLength:   d.TotalLength,
		ZoomLevel:     d.ZoomLevel,
		ScrollOffset:  d.ScrollOffset,
		CurrentTime:   d.CurrentTime,
		ViewportWidth: d.ViewportWidth,
	}

	for _, td := range d.Tracks {
		tr := timeline.NewTrack(td.Name)
		if td.Height > 0 {
			tr.Height = td.Height
		}
		for _, cd := range td.Clips {
			c, err := cd.clip()
			if err != nil {
				return nil, fmt.Errorf("track %q: %w", td.Name, err)
			}
			tr.Clips = append(tr.Clips, c)
		}
		t.Tracks = append(t.Tracks, tr)
	}

	if len(t.Tracks) == 0 {
		t.Tracks = []*timeline.Track{timeline.NewTrack("Track 1")}
	}

	return t, nil
}

func (cd Clip) clip() (*timeline.Clip, error) {
	id := uuid.New()
	if cd.ID != "" {
		parsed, err := uuid.Parse(cd.ID)
		if err != nil {
			return nil, fmt.Errorf("clip %q: invalid id: %w", cd.Name, err)
		}
		id = parsed
	}

	c := &timeline.Clip{
		ID:        id,
		Name:      cd.Name,
		StartTime: cd.StartTime,
		Duration:  cd.Duration,
		Color:     cd.Color,
		Action:    timeline.Action(cd.Action),
		Script:    cd.Script,
	}
	if c.Color == "" {
		c.Color = timeline.DefaultClipColor
	}
	if c.Action == "" {
		c.Action = timeline.ActionWait
	}
	return c, nil
}
