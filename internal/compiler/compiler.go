// Package compiler turns a timeline's clips into one linear, delay-annotated
// automation script. It is a pure function of the timeline state: same clips,
// same text. Clips from all tracks are flattened and sequenced strictly by
// start time, so track membership does not matter to execution order.
package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ivlev/trackline/internal/timeline"
)

const (
	preamble = "#SingleInstance Force\nSendMode Input\nSetWorkingDir %A_ScriptDir%\n\n"

	terminator = "\nExitApp\n"

	// defaultAction stands in for clips without a script body.
	defaultAction = "Sleep, 100\n"

	// emptyScript is emitted for a timeline with no clips at all.
	emptyScript = "; empty timeline\nExitApp\n"
)

// Compile renders the timeline's clips as script text. The walk keeps a
// running end time; gaps become Sleep instructions in whole milliseconds
// (fractions truncated). Overlaps across tracks emit no wait; a negative
// delay is never written.
func Compile(t *timeline.Timeline) string {
	var clips []*timeline.Clip
	for _, tr := range t.Tracks {
		clips = append(clips, tr.Clips...)
	}

	if len(clips) == 0 {
		return emptyScript
	}

	// Stable: ties keep track order, then insertion order.
	sort.SliceStable(clips, func(i, j int) bool {
		return clips[i].StartTime < clips[j].StartTime
	})

	var b strings.Builder
	b.WriteString(preamble)

	lastEnd := 0.0
	for _, c := range clips {
		if delay := c.StartTime - lastEnd; delay > 0 {
			fmt.Fprintf(&b, "Sleep, %d\n", int64(delay*1000))
		}

		fmt.Fprintf(&b, "; %s\n", c.Name)

		if strings.TrimSpace(c.Script) != "" {
			b.WriteString(c.Script)
			if !strings.HasSuffix(c.Script, "\n") {
				b.WriteString("\n")
			}
		} else {
			b.WriteString(defaultAction)
		}

		lastEnd = c.StartTime + c.Duration
	}

	b.WriteString(terminator)
	return b.String()
}
