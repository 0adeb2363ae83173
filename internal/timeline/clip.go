package timeline

import "github.com/google/uuid"

// Action categorizes what a clip does. It is an advisory display tag; the
// compiler only looks at the clip's script body.
type Action string

const (
	ActionWait  Action = "wait"
	ActionKeys  Action = "keys"
	ActionMouse Action = "mouse"
	ActionRun   Action = "run"
)

// MinClipDuration is the practical floor enforced during interactive resize (seconds).
const MinClipDuration = 0.1

// DefaultClipColor is the display color assigned to new clips.
const DefaultClipColor = "#4285f4"

// Clip is a single named, timed unit of automation with its own script body.
// Two clips with identical fields are still distinct entities: identity is the ID.
type Clip struct {
	ID        uuid.UUID
	Name      string
	StartTime float64 // seconds, >= 0
	Duration  float64 // seconds, > 0
	Color     string  // hex color, display only
	Action    Action
	Script    string // custom script body; empty means the compiler emits a placeholder
}

// NewClip creates a clip with a fresh identity and default display attributes.
func NewClip(name string, start, duration float64) *Clip {
	return &Clip{
		ID:        uuid.New(),
		Name:      name,
		StartTime: start,
		Duration:  duration,
		Color:     DefaultClipColor,
		Action:    ActionWait,
	}
}

// EndTime returns the exclusive end of the clip's interval.
func (c *Clip) EndTime() float64 {
	return c.StartTime + c.Duration
}

// Clone copies all fields except identity.
func (c *Clip) Clone() *Clip {
	dup := *c
	dup.ID = uuid.New()
	return &dup
}
