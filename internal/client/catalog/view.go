package catalog

import (
	"context"

	"wonderscape/internal/video"
)

const (
	NoticeCorrected     = "Search text was auto-corrected"
	NoticeNoVideoFile   = "Please select a video file"
	NoticeUploadFailed  = "Upload failed"
	NoticeUploadSuccess = "Video uploaded successfully!"
	NoticeListFailed    = "Failed to load videos"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notice struct {
	Level Level
	Text  string
}

// State is the catalog screen. It changes only through Reduce.
type State struct {
	Sort       video.SortBy
	Input      string // search box contents
	Query      string // last submitted, corrected query
	UploadOpen bool
	Videos     []video.VideoView
	Loading    bool
	// Generation increases on every change that requires a new listing.
	Generation int
	Notices    []Notice
}

func NewState() State {
	return State{Sort: video.SortRecent, Loading: true}
}

type Event interface{ isEvent() }

type SortChanged struct{ Sort video.SortBy }
type InputChanged struct{ Text string }
type SearchSubmitted struct{}
type UploadToggled struct{ Open bool }
type UploadFinished struct{ Err error }
type Listed struct {
	Generation int
	Videos     []video.VideoView
	Err        error
}
type NoticesCleared struct{}

func (SortChanged) isEvent()     {}
func (InputChanged) isEvent()    {}
func (SearchSubmitted) isEvent() {}
func (UploadToggled) isEvent()   {}
func (UploadFinished) isEvent()  {}
func (Listed) isEvent()          {}
func (NoticesCleared) isEvent()  {}

// Reduce applies e to s. A change of sort mode or submitted query bumps
// Generation, which tells the owner to issue a new listing.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case SortChanged:
		if !e.Sort.Valid() || e.Sort == s.Sort {
			return s
		}
		s.Sort = e.Sort
		return stale(s)

	case InputChanged:
		s.Input = e.Text
		return s

	case SearchSubmitted:
		corrected, changed := AutoCorrect(s.Input)
		if changed {
			s.Input = corrected
			s = notify(s, LevelInfo, NoticeCorrected)
		}
		if corrected == s.Query {
			return s
		}
		s.Query = corrected
		return stale(s)

	case UploadToggled:
		s.UploadOpen = e.Open
		return s

	case UploadFinished:
		switch {
		case e.Err == nil:
			s.UploadOpen = false
			return notify(s, LevelSuccess, NoticeUploadSuccess)
		case isNoVideoFile(e.Err):
			return notify(s, LevelError, NoticeNoVideoFile)
		default:
			return notify(s, LevelError, NoticeUploadFailed)
		}

	case Listed:
		// answers to superseded listings are dropped
		if e.Generation != s.Generation {
			return s
		}
		s.Loading = false
		if e.Err != nil {
			// the previous list stays on screen
			return notify(s, LevelError, NoticeListFailed)
		}
		s.Videos = e.Videos
		return s

	case NoticesCleared:
		s.Notices = nil
		return s
	}
	return s
}

func stale(s State) State {
	s.Generation++
	s.Loading = true
	return s
}

func notify(s State, level Level, text string) State {
	notices := make([]Notice, len(s.Notices), len(s.Notices)+1)
	copy(notices, s.Notices)
	s.Notices = append(notices, Notice{Level: level, Text: text})
	return s
}

type Lister interface {
	ListVideos(ctx context.Context, sortBy video.SortBy, searchQuery string) ([]video.VideoView, error)
}

// Fetch lists videos for the current state in the background. The channel
// yields exactly one Listed event and is then closed.
func Fetch(ctx context.Context, api Lister, s State) <-chan Listed {
	out := make(chan Listed, 1)
	gen, sortBy, query := s.Generation, s.Sort, s.Query

	go func() {
		defer close(out)
		videos, err := api.ListVideos(ctx, sortBy, query)
		out <- Listed{Generation: gen, Videos: videos, Err: err}
	}()
	return out
}
