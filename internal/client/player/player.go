// Package player models the video page playback controls as a reducer over
// media element events and user input.
package player

import (
	"context"
	"fmt"
	"math"
)

// Speeds are the playback rates offered in the settings menu.
var Speeds = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2}

// volume moves in tenths
const volumeSteps = 10

type State struct {
	Playing          bool
	Position         float64 // seconds
	Duration         float64 // seconds, 0 until metadata loads
	Volume           float64 // 0..1
	Fullscreen       bool
	Speed            float64
	Loop             bool
	SettingsOpen     bool
	VolumeSliderOpen bool
	// ViewCounted is set once the first play of this page view was counted.
	ViewCounted bool
}

func NewState() State {
	return State{Volume: 1, Speed: 1}
}

type Event interface{ isEvent() }

// media element events
type MetadataLoaded struct{ Duration float64 }
type TimeUpdated struct{ Position float64 }
type Played struct{}
type Paused struct{}
type FullscreenChanged struct{ Fullscreen bool }

// user controls
type PlayPauseToggled struct{}
type Seeked struct{ Position float64 }
type VolumeChanged struct{ Volume float64 }
type SpeedSelected struct{ Speed float64 }
type LoopToggled struct{}
type FullscreenToggled struct{}
type SettingsToggled struct{}
type VolumeHover struct{ Hovering bool }

func (MetadataLoaded) isEvent()    {}
func (TimeUpdated) isEvent()       {}
func (Played) isEvent()            {}
func (Paused) isEvent()            {}
func (FullscreenChanged) isEvent() {}
func (PlayPauseToggled) isEvent()  {}
func (Seeked) isEvent()            {}
func (VolumeChanged) isEvent()     {}
func (SpeedSelected) isEvent()     {}
func (LoopToggled) isEvent()       {}
func (FullscreenToggled) isEvent() {}
func (SettingsToggled) isEvent()   {}
func (VolumeHover) isEvent()       {}

// Command is an effect for the media element or the API.
type Command interface{ isCommand() }

type Play struct{}
type Pause struct{}
type SeekTo struct{ Position float64 }
type SetVolume struct{ Volume float64 }
type SetRate struct{ Rate float64 }
type SetLoop struct{ Loop bool }
type RequestFullscreen struct{}
type ExitFullscreen struct{}
type IncrementViews struct{}

func (Play) isCommand()              {}
func (Pause) isCommand()             {}
func (SeekTo) isCommand()            {}
func (SetVolume) isCommand()         {}
func (SetRate) isCommand()           {}
func (SetLoop) isCommand()           {}
func (RequestFullscreen) isCommand() {}
func (ExitFullscreen) isCommand()    {}
func (IncrementViews) isCommand()    {}

// Reduce returns the next state and the commands that realize it.
func Reduce(s State, e Event) (State, []Command) {
	switch e := e.(type) {
	case MetadataLoaded:
		s.Duration = finite(e.Duration)
		return s, nil

	case TimeUpdated:
		s.Position = finite(e.Position)
		return s, nil

	case Played:
		s.Playing = true
		if s.ViewCounted {
			return s, nil
		}
		s.ViewCounted = true
		return s, []Command{IncrementViews{}}

	case Paused:
		s.Playing = false
		return s, nil

	case PlayPauseToggled:
		if s.Playing {
			s.Playing = false
			return s, []Command{Pause{}}
		}
		s.Playing = true
		return s, []Command{Play{}}

	case Seeked:
		pos := math.Max(0, finite(e.Position))
		if s.Duration > 0 {
			pos = math.Min(pos, s.Duration)
		}
		s.Position = pos
		return s, []Command{SeekTo{Position: pos}}

	case VolumeChanged:
		s.Volume = snapVolume(e.Volume)
		return s, []Command{SetVolume{Volume: s.Volume}}

	case SpeedSelected:
		if !validSpeed(e.Speed) {
			return s, nil
		}
		s.Speed = e.Speed
		return s, []Command{SetRate{Rate: s.Speed}}

	case LoopToggled:
		s.Loop = !s.Loop
		return s, []Command{SetLoop{Loop: s.Loop}}

	case FullscreenToggled:
		// the flag follows FullscreenChanged, not the request
		if s.Fullscreen {
			return s, []Command{ExitFullscreen{}}
		}
		return s, []Command{RequestFullscreen{}}

	case FullscreenChanged:
		s.Fullscreen = e.Fullscreen
		return s, nil

	case SettingsToggled:
		s.SettingsOpen = !s.SettingsOpen
		return s, nil

	case VolumeHover:
		s.VolumeSliderOpen = e.Hovering
		return s, nil
	}
	return s, nil
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func snapVolume(v float64) float64 {
	v = math.Min(1, math.Max(0, finite(v)))
	return math.Round(v*volumeSteps) / volumeSteps
}

func validSpeed(speed float64) bool {
	for _, s := range Speeds {
		if s == speed {
			return true
		}
	}
	return false
}

// FormatTime renders seconds as m:ss.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

type ViewCounter interface {
	IncrementViews(ctx context.Context, id string) error
}

// Session owns the player state for one page view of one video.
type Session struct {
	videoID string
	views   ViewCounter
	state   State
}

func NewSession(videoID string, views ViewCounter) *Session {
	return &Session{videoID: videoID, views: views, state: NewState()}
}

func (s *Session) State() State { return s.state }

// Dispatch applies e, runs API commands itself and returns the commands
// meant for the media element.
func (s *Session) Dispatch(ctx context.Context, e Event) ([]Command, error) {
	next, cmds := Reduce(s.state, e)
	s.state = next

	media := cmds[:0:0]
	var err error
	for _, c := range cmds {
		if _, ok := c.(IncrementViews); ok {
			err = s.views.IncrementViews(ctx, s.videoID)
			continue
		}
		media = append(media, c)
	}
	return media, err
}
