package timeline

import (
	"math"
	"testing"
)

func TestNewTimeline(t *testing.T) {
	tl := New()

	if len(tl.Tracks) != 1 {
		t.Fatalf("expected 1 default track, got %d", len(tl.Tracks))
	}
	if tl.ZoomLevel != MinZoom {
		t.Errorf("expected fit-to-view zoom, got %v", tl.ZoomLevel)
	}
	if tl.SelectedClip() != nil {
		t.Error("new timeline must have no selection")
	}
}

func TestSetTotalLengthClampsAndRefits(t *testing.T) {
	tl := New()
	tl.SetZoom(0.5)

	tl.SetTotalLength(100)
	if tl.TotalLength != 100 {
		t.Errorf("got length %v, want 100", tl.TotalLength)
	}
	if tl.ZoomLevel != MinZoom {
		t.Errorf("length change must refit the view, zoom = %v", tl.ZoomLevel)
	}

	tl.SetTotalLength(0.2)
	if tl.TotalLength != MinTotalLength {
		t.Errorf("got length %v, want clamp to %v", tl.TotalLength, MinTotalLength)
	}

	tl.SetTotalLength(1e9)
	if tl.TotalLength != MaxTotalLength {
		t.Errorf("got length %v, want clamp to %v", tl.TotalLength, MaxTotalLength)
	}
}

func TestSetTotalLengthDoesNotMoveClips(t *testing.T) {
	tl := New()
	tl.SetTotalLength(100)
	c := NewClip("late", 80, 5)
	if !tl.AddClip(tl.Tracks[0], c) {
		t.Fatal("add failed")
	}

	// Shrinking the timeline leaves the clip out of range; it is corrected
	// lazily on its next drag.
	tl.SetTotalLength(50)
	if c.StartTime != 80 {
		t.Errorf("clip moved on length change: %v", c.StartTime)
	}

	tl.MoveClip(tl.Tracks[0], c, c.StartTime)
	if c.EndTime() > tl.TotalLength {
		t.Errorf("drag did not pull clip back in range: end %v > %v", c.EndTime(), tl.TotalLength)
	}
}

func TestSetZoomClamps(t *testing.T) {
	tl := New()

	tl.SetZoom(5)
	if tl.ZoomLevel != MaxZoom {
		t.Errorf("got %v, want %v", tl.ZoomLevel, MaxZoom)
	}
	tl.SetZoom(-1)
	if tl.ZoomLevel != MinZoom {
		t.Errorf("got %v, want %v", tl.ZoomLevel, MinZoom)
	}
}

// assertNoOverlap verifies the post-commit collision invariant on every track.
func assertNoOverlap(t *testing.T, tl *Timeline) {
	t.Helper()
	for _, tr := range tl.Tracks {
		for i, a := range tr.Clips {
			for _, b := range tr.Clips[i+1:] {
				if a.StartTime < b.EndTime() && a.EndTime() > b.StartTime {
					t.Fatalf("track %q: %q [%v,%v) overlaps %q [%v,%v)",
						tr.Name, a.Name, a.StartTime, a.EndTime(), b.Name, b.StartTime, b.EndTime())
				}
			}
		}
	}
}

func TestMoveClipNeverCommitsOverlap(t *testing.T) {
	tl := New()
	tl.SetTotalLength(100)
	tr := tl.Tracks[0]

	a := NewClip("a", 0, 5)
	b := NewClip("b", 10, 3)
	tl.AddClip(tr, a)
	tl.AddClip(tr, b)

	// A pile of hostile drags; none may commit an overlap.
	for _, desired := range []float64{0, 1, 4.9, 9, 10.5, 12.9, 50, -3, 200} {
		tl.MoveClip(tr, b, desired)
		assertNoOverlap(t, tl)
	}
}

func TestResizeClip(t *testing.T) {
	tl := New()
	tl.SetTotalLength(100)
	tr := tl.Tracks[0]

	a := NewClip("a", 0, 2)
	next := NewClip("next", 6, 2)
	tl.AddClip(tr, a)
	tl.AddClip(tr, next)

	tl.ResizeClip(tr, a, 0.01)
	if a.Duration != MinClipDuration {
		t.Errorf("duration floor: got %v, want %v", a.Duration, MinClipDuration)
	}

	tl.ResizeClip(tr, a, 50)
	if a.Duration != 6 {
		t.Errorf("resize cap at next clip: got %v, want 6", a.Duration)
	}
	assertNoOverlap(t, tl)
}

func TestResizeClipDroppedWhenNoRoom(t *testing.T) {
	tl := New()
	tl.SetTotalLength(100)
	tr := tl.Tracks[0]

	// A neighbor closer than the minimum duration: the floor must not win
	// over the cap and push a into it.
	a := NewClip("a", 0, 0.05)
	near := NewClip("near", 0.08, 5)
	tr.Clips = append(tr.Clips, a, near)

	tl.ResizeClip(tr, a, 3)
	if a.Duration != 0.05 {
		t.Errorf("resize with no room must be dropped: got %v", a.Duration)
	}
	assertNoOverlap(t, tl)

	// A clip stranded past the end of the timeline has negative room.
	tl.SetTotalLength(50)
	late := NewClip("late", 80, 5)
	tr2 := tl.AddTrack("second")
	tr2.Clips = append(tr2.Clips, late)

	tl.ResizeClip(tr2, late, 2)
	if late.Duration != 5 {
		t.Errorf("out-of-range resize must be dropped: got %v", late.Duration)
	}
}

func TestAddClipRejectsWhenNoRoom(t *testing.T) {
	tl := New()
	tl.SetTotalLength(30)
	tr := tl.Tracks[0]

	blocker := NewClip("blocker", 0, 30)
	if !tl.AddClip(tr, blocker) {
		t.Fatal("first add failed")
	}

	c := NewClip("c", 10, 1)
	if tl.AddClip(tr, c) {
		t.Error("add into a fully occupied track must be rejected")
	}
	if len(tr.Clips) != 1 {
		t.Errorf("rejected clip was appended anyway")
	}
}

func TestDuplicatePlacement(t *testing.T) {
	tl := New()
	tl.SetTotalLength(20)
	tr := tl.Tracks[0]

	src := NewClip("src", 10, 2) // [10, 12)
	tl.AddClip(tr, src)

	dup := tl.Duplicate(src, tr)
	if dup == nil {
		t.Fatal("duplicate onto an empty tail must succeed")
	}
	if math.Abs(dup.StartTime-12.1) > 1e-9 {
		t.Errorf("duplicate start: got %v, want 12.1", dup.StartTime)
	}
	if dup.ID == src.ID {
		t.Error("duplicate must have its own identity")
	}
	if dup.Name != src.Name || dup.Duration != src.Duration || dup.Color != src.Color {
		t.Error("duplicate must copy display fields")
	}
	assertNoOverlap(t, tl)
}

func TestDuplicateShiftsLeftAtTimelineEnd(t *testing.T) {
	tl := New()
	tl.SetTotalLength(20)
	tr := tl.Tracks[0]

	src := NewClip("src", 18, 2) // flush against the end
	tl.AddClip(tr, src)

	dup := tl.Duplicate(src, tr)
	if dup == nil {
		t.Fatal("duplicate must fit by shifting left")
	}
	if dup.EndTime() > tl.TotalLength+1e-9 {
		t.Errorf("duplicate runs past the timeline: end %v", dup.EndTime())
	}
	assertNoOverlap(t, tl)
}

func TestDuplicateRejectedWhenBlocked(t *testing.T) {
	tl := New()
	tl.SetTotalLength(30)
	tr := tl.Tracks[0]

	src := NewClip("src", 0, 2) // [0, 2)
	blocker := NewClip("blk", 2.1, 27.9)
	tl.AddClip(tr, src)
	tl.AddClip(tr, blocker)

	// The gap position lands exactly on the blocker and every offset within
	// the search radius is occupied or off the left edge.
	if dup := tl.Duplicate(src, tr); dup != nil {
		t.Errorf("blocked duplicate committed at [%v,%v)", dup.StartTime, dup.EndTime())
	}
	if len(tr.Clips) != 2 {
		t.Errorf("rejected duplicate was appended anyway: %d clips", len(tr.Clips))
	}
	assertNoOverlap(t, tl)
}

func TestDuplicateRejectedOnFullTrack(t *testing.T) {
	tl := New()
	tl.SetTotalLength(30)
	tr := tl.Tracks[0]

	src := NewClip("src", 0, 30)
	tl.AddClip(tr, src)

	if dup := tl.Duplicate(src, tr); dup != nil {
		t.Errorf("duplicate onto a full track committed at %v", dup.StartTime)
	}
	if len(tr.Clips) != 1 {
		t.Errorf("got %d clips, want 1", len(tr.Clips))
	}
	assertNoOverlap(t, tl)
}

func TestSelection(t *testing.T) {
	tl := New()
	tl.SetTotalLength(100)
	tr := tl.Tracks[0]

	c := NewClip("c", 0, 2)
	tl.AddClip(tr, c)

	tl.Select(c.ID)
	if got := tl.SelectedClip(); got != c {
		t.Fatalf("selected = %v, want %v", got, c)
	}

	tl.RemoveClip(c.ID)
	if tl.SelectedClip() != nil {
		t.Error("removing the selected clip must clear the selection")
	}
}

func TestRemoveTrackClearsSelection(t *testing.T) {
	tl := New()
	tl.SetTotalLength(100)
	second := tl.AddTrack("")

	if second.Name != "Track 2" {
		t.Errorf("default track name: got %q", second.Name)
	}

	c := NewClip("c", 0, 2)
	tl.AddClip(second, c)
	tl.Select(c.ID)

	if !tl.RemoveTrack(1) {
		t.Fatal("remove failed")
	}
	if tl.SelectedClip() != nil {
		t.Error("selection must be cleared with its track")
	}
	if len(tl.Tracks) != 1 {
		t.Errorf("got %d tracks, want 1", len(tl.Tracks))
	}
}

func TestMoveTrack(t *testing.T) {
	tl := New()
	b := tl.AddTrack("b")
	tl.AddTrack("c")

	if !tl.MoveTrack(1, 2) {
		t.Fatal("move failed")
	}
	if tl.Tracks[2] != b {
		t.Errorf("track order after move: %q, %q, %q", tl.Tracks[0].Name, tl.Tracks[1].Name, tl.Tracks[2].Name)
	}

	if tl.MoveTrack(0, 5) {
		t.Error("out-of-range move must fail")
	}
}
