package timeline

import (
	"fmt"

	"github.com/google/uuid"
)

// Addressable duration bounds: one second up to one week.
const (
	MinTotalLength = 1.0
	MaxTotalLength = 604800.0
)

// DefaultTotalLength is the length of a freshly created timeline (seconds).
const DefaultTotalLength = 60.0

// duplicateGap is the space left between a clip and its duplicate (seconds).
const duplicateGap = 0.1

// Timeline is the top-level container: total duration, all tracks, and the
// zoom/scroll/playhead view state. All operations are synchronous and
// in-memory; callers that share a timeline across goroutines must serialize
// mutations themselves.
type Timeline struct {
	TotalLength   float64
	Tracks        []*Track
	ZoomLevel     float64
	ScrollOffset  float64 // pixels
	CurrentTime   float64 // playhead; advanced by the playback collaborator
	ViewportWidth float64 // pixels, supplied by the presentation layer

	// selected is transient view state, never persisted. uuid.Nil means no
	// selection. At most one clip is selected across all tracks.
	selected uuid.UUID
}

// New creates a timeline with one default empty track, fit to view.
func New() *Timeline {
	return &Timeline{
		TotalLength: DefaultTotalLength,
		Tracks:      []*Track{NewTrack("Track 1")},
		ZoomLevel:   MinZoom,
	}
}

// SetTotalLength clamps the new length to [MinTotalLength, MaxTotalLength] and
// refits the view so existing clips stay visible. Clips are not rescaled or
// moved; a clip whose end now exceeds the timeline is corrected the next time
// it is dragged or resized.
func (t *Timeline) SetTotalLength(sec float64) {
	t.TotalLength = clampFloat(sec, MinTotalLength, MaxTotalLength)
	t.FitToView()
}

// SetZoom clamps and commits a new zoom level.
func (t *Timeline) SetZoom(zoom float64) {
	t.ZoomLevel = clampFloat(zoom, MinZoom, MaxZoom)
}

// FitToView sets the zoom so the entire timeline fills the viewport.
func (t *Timeline) FitToView() {
	t.ZoomLevel = MinZoom
}

// AddTrack appends a new empty track. An empty name gets a numbered default.
func (t *Timeline) AddTrack(name string) *Track {
	if name == "" {
		name = fmt.Sprintf("Track %d", len(t.Tracks)+1)
	}
	tr := NewTrack(name)
	t.Tracks = append(t.Tracks, tr)
	return tr
}

// RemoveTrack removes the track at index together with its clips. The
// selection is cleared if the selected clip lived on it.
func (t *Timeline) RemoveTrack(index int) bool {
	if index < 0 || index >= len(t.Tracks) {
		return false
	}
	tr := t.Tracks[index]
	if t.selected != uuid.Nil && tr.ClipByID(t.selected) != nil {
		t.selected = uuid.Nil
	}
	t.Tracks = append(t.Tracks[:index], t.Tracks[index+1:]...)
	return true
}

// MoveTrack reorders the track at from to position to.
func (t *Timeline) MoveTrack(from, to int) bool {
	if from < 0 || from >= len(t.Tracks) || to < 0 || to >= len(t.Tracks) {
		return false
	}
	tr := t.Tracks[from]
	t.Tracks = append(t.Tracks[:from], t.Tracks[from+1:]...)
	t.Tracks = append(t.Tracks[:to], append([]*Track{tr}, t.Tracks[to:]...)...)
	return true
}

// AddClip inserts a clip into the track after resolving its start time to a
// collision-free position. The insert is rejected when no free slot exists
// within the search radius.
func (t *Timeline) AddClip(tr *Track, c *Clip) bool {
	resolved := tr.FindNearestValidPosition(c, c.StartTime, t.TotalLength)
	if tr.WouldCollide(c, resolved, c.Duration) {
		return false
	}
	c.StartTime = resolved
	tr.appendClip(c)
	return true
}

// MoveClip commits a drag of the clip to the desired start time, corrected by
// the placement resolver. An unresolvable move leaves the clip where it was.
func (t *Timeline) MoveClip(tr *Track, c *Clip, desired float64) {
	c.StartTime = tr.FindNearestValidPosition(c, desired, t.TotalLength)
}

// ResizeClip commits a resize to the desired duration, clamped between the
// minimum clip duration and the room before the next clip on the track. When
// there is less room than the minimum duration the resize is dropped, so the
// floor can never push the clip into its neighbor.
func (t *Timeline) ResizeClip(tr *Track, c *Clip, desired float64) {
	maxDur := tr.FindMaxDuration(c, t.TotalLength)
	if maxDur < MinClipDuration {
		return
	}
	if desired > maxDur {
		desired = maxDur
	}
	if desired < MinClipDuration {
		desired = MinClipDuration
	}
	c.Duration = desired
}

// RemoveClip detaches the clip with the given identity from whichever track
// holds it, clearing the selection if it was selected.
func (t *Timeline) RemoveClip(id uuid.UUID) bool {
	for _, tr := range t.Tracks {
		if tr.removeClip(id) {
			if t.selected == id {
				t.selected = uuid.Nil
			}
			return true
		}
	}
	return false
}

// Duplicate copies a clip onto the target track, leaving a small gap after
// the source clip's end and shifting left so the copy fits inside the
// timeline. The candidate position is still run through the placement
// resolver, and the paste is rejected (nil) when no collision-free slot
// exists within the search radius: a duplicate has no prior valid position to
// revert to.
func (t *Timeline) Duplicate(src *Clip, target *Track) *Clip {
	dup := src.Clone()

	start := src.EndTime() + duplicateGap
	if start+dup.Duration > t.TotalLength {
		start = t.TotalLength - dup.Duration
		if start < 0 {
			start = 0
		}
	}
	dup.StartTime = start

	resolved := target.FindNearestValidPosition(dup, start, t.TotalLength)
	if target.WouldCollide(dup, resolved, dup.Duration) {
		return nil
	}
	dup.StartTime = resolved
	target.appendClip(dup)
	return dup
}

// Select marks the clip with the given identity as the single selected clip.
func (t *Timeline) Select(id uuid.UUID) {
	t.selected = id
}

// ClearSelection drops the current selection.
func (t *Timeline) ClearSelection() {
	t.selected = uuid.Nil
}

// SelectedClip returns the selected clip, or nil when nothing is selected.
func (t *Timeline) SelectedClip() *Clip {
	if t.selected == uuid.Nil {
		return nil
	}
	for _, tr := range t.Tracks {
		if c := tr.ClipByID(t.selected); c != nil {
			return c
		}
	}
	return nil
}

// FindClip locates a clip by identity and returns its track.
func (t *Timeline) FindClip(id uuid.UUID) (*Track, *Clip) {
	for _, tr := range t.Tracks {
		if c := tr.ClipByID(id); c != nil {
			return tr, c
		}
	}
	return nil, nil
}

// ClipCount returns the number of clips across all tracks.
func (t *Timeline) ClipCount() int {
	n := 0
	for _, tr := range t.Tracks {
		n += len(tr.Clips)
	}
	return n
}
