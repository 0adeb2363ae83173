// Package importer is the engine side of the script-import boundary. The
// external script-synthesis collaborator hands over named tracks of named
// clips with a script body and a duration; this package turns them into model
// tracks with clips laid back to back. The remote call itself lives outside
// the engine.
package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/trackline/internal/timeline"
)

// clipGap is the space left between imported clips (seconds).
const clipGap = 0.1

// ClipSpec describes one clip as returned by the import collaborator.
type ClipSpec struct {
	Name     string  `yaml:"name"`
	Script   string  `yaml:"script,omitempty"`
	Duration float64 `yaml:"duration"`
}

// TrackSpec describes one track of clips.
type TrackSpec struct {
	Name  string     `yaml:"name"`
	Clips []ClipSpec `yaml:"clips"`
}

// ReadSpecs loads track specs from a YAML file, so an import can also be
// replayed offline from a saved response.
func ReadSpecs(path string) ([]TrackSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var specs []TrackSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parsing track specs %s: %w", path, err)
	}

	return specs, nil
}

// BuildTracks appends one track per spec to the timeline. Clips are placed
// back to back starting at time zero with a small gap, which keeps each track
// collision-free by construction. Durations below the clip floor are clamped.
func BuildTracks(specs []TrackSpec, t *timeline.Timeline) []*timeline.Track {
	var tracks []*timeline.Track

	for _, spec := range specs {
		tr := t.AddTrack(spec.Name)
		tracks = append(tracks, tr)

		cursor := 0.0
		for _, cs := range spec.Clips {
			dur := cs.Duration
			if dur < timeline.MinClipDuration {
				dur = timeline.MinClipDuration
			}

			c := timeline.NewClip(cs.Name, cursor, dur)
			if cs.Script != "" {
				c.Script = cs.Script
				c.Action = timeline.ActionKeys
			}
			tr.Clips = append(tr.Clips, c)

			cursor += dur + clipGap
		}
	}

	return tracks
}
