package timeline

import "github.com/google/uuid"

// DefaultTrackHeight is the display height assigned to new tracks (pixels).
const DefaultTrackHeight = 60.0

// Placement search parameters: clips are positioned by direct manipulation,
// so a near-miss is nudged to the closest free slot instead of being rejected
// outright. The search gives up beyond searchRadius seconds.
const (
	searchStep   = 0.1
	searchRadius = 10.0
)

// Track is an independent lane holding a non-overlapping sequence of clips.
// The slice keeps insertion order; all interval logic is by StartTime.
type Track struct {
	Name   string
	Height float64 // display only
	Clips  []*Clip
}

// NewTrack creates an empty track with the default display height.
func NewTrack(name string) *Track {
	return &Track{
		Name:   name,
		Height: DefaultTrackHeight,
	}
}

// ClipByID returns the clip with the given identity, or nil.
func (t *Track) ClipByID(id uuid.UUID) *Clip {
	for _, c := range t.Clips {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (t *Track) appendClip(c *Clip) {
	t.Clips = append(t.Clips, c)
}

// removeClip detaches the clip with the given identity and reports whether it
// was present.
func (t *Track) removeClip(id uuid.UUID) bool {
	for i, c := range t.Clips {
		if c.ID == id {
			t.Clips = append(t.Clips[:i], t.Clips[i+1:]...)
			return true
		}
	}
	return false
}

// WouldCollide reports whether the half-open interval [start, start+duration)
// intersects any other clip on this track. The clip itself is excluded by
// identity, so a clip never collides with its own current position. Touching
// endpoints do not count as a collision.
func (t *Track) WouldCollide(clip *Clip, start, duration float64) bool {
	end := start + duration
	for _, other := range t.Clips {
		if other.ID == clip.ID {
			continue
		}
		if start < other.EndTime() && end > other.StartTime {
			return true
		}
	}
	return false
}

// FindNearestValidPosition resolves a desired start time to a collision-free
// one. A free desired position is returned clamped to the timeline; otherwise
// the search walks outward in searchStep increments, trying the right side
// before the left at each offset. When nothing free exists within
// searchRadius the clip's current start time is returned, which reverts the
// move.
func (t *Track) FindNearestValidPosition(clip *Clip, desired, timelineLength float64) float64 {
	maxStart := timelineLength - clip.Duration
	if maxStart < 0 {
		maxStart = 0
	}

	clamped := clampFloat(desired, 0, maxStart)
	if !t.WouldCollide(clip, clamped, clip.Duration) {
		return clamped
	}

	for i := 1; ; i++ {
		offset := float64(i) * searchStep
		if offset > searchRadius+1e-9 {
			break
		}

		if right := desired + offset; right <= maxStart && !t.WouldCollide(clip, right, clip.Duration) {
			return right
		}
		if left := desired - offset; left >= 0 && !t.WouldCollide(clip, left, clip.Duration) {
			return left
		}
	}

	return clip.StartTime
}

// FindMaxDuration returns the largest duration the clip could have without
// running into the next clip on this track or past the end of the timeline.
// Used to cap interactive resize.
func (t *Track) FindMaxDuration(clip *Clip, timelineLength float64) float64 {
	limit := timelineLength
	for _, other := range t.Clips {
		if other.ID == clip.ID {
			continue
		}
		if other.StartTime > clip.StartTime && other.StartTime < limit {
			limit = other.StartTime
		}
	}
	return limit - clip.StartTime
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
