package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"wonderscape/internal/video"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ---- autocorrect ----

func TestAutoCorrect(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		changed bool
	}{
		{"teh recieved", "the received", true},
		{"TEH Cat", "the Cat", true},
		{"alot of fun", "a lot of fun", true},
		{"cats and dogs", "cats and dogs", false},
		{"", "", false},
		{"two  spaces", "two spaces", true},
		{"definately wierd begining", "definitely weird beginning", true},
		{"the", "the", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, changed := AutoCorrect(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

// ---- reducer ----

func TestReduce_SearchSubmitted(t *testing.T) {
	s := NewState()
	s = Reduce(s, InputChanged{Text: "teh recieved"})
	s = Reduce(s, SearchSubmitted{})

	assert.Equal(t, "the received", s.Query)
	assert.Equal(t, "the received", s.Input)
	assert.Equal(t, 1, s.Generation)
	assert.Equal(t, []Notice{{Level: LevelInfo, Text: NoticeCorrected}}, s.Notices)

	// same query again does not trigger another listing
	s = Reduce(s, SearchSubmitted{})
	assert.Equal(t, 1, s.Generation)
	assert.Len(t, s.Notices, 1)
}

func TestReduce_SearchWithoutCorrection(t *testing.T) {
	s := Reduce(NewState(), InputChanged{Text: "cat"})
	s = Reduce(s, SearchSubmitted{})

	assert.Equal(t, "cat", s.Query)
	assert.Empty(t, s.Notices)
	assert.Equal(t, 1, s.Generation)
}

func TestReduce_Sort(t *testing.T) {
	s := NewState()
	assert.Equal(t, video.SortRecent, s.Sort)

	s = Reduce(s, SortChanged{Sort: video.SortViews})
	assert.Equal(t, video.SortViews, s.Sort)
	assert.Equal(t, 1, s.Generation)

	s = Reduce(s, SortChanged{Sort: video.SortViews})
	assert.Equal(t, 1, s.Generation)

	s = Reduce(s, SortChanged{Sort: "oldest"})
	assert.Equal(t, video.SortViews, s.Sort)
	assert.Equal(t, 1, s.Generation)
}

func TestReduce_ListedDropsStaleAnswers(t *testing.T) {
	s := Reduce(NewState(), SortChanged{Sort: video.SortViews}) // generation 1

	s = Reduce(s, Listed{Generation: 0, Videos: []video.VideoView{{Title: "old"}}})
	assert.Nil(t, s.Videos)
	assert.True(t, s.Loading)

	s = Reduce(s, Listed{Generation: 1, Videos: []video.VideoView{{Title: "new"}}})
	require.Len(t, s.Videos, 1)
	assert.Equal(t, "new", s.Videos[0].Title)
	assert.False(t, s.Loading)
}

func TestReduce_ListedFailureNotifiesOnce(t *testing.T) {
	s := Reduce(NewState(), Listed{Generation: 0, Videos: []video.VideoView{{Title: "kept"}}})
	s = Reduce(s, SortChanged{Sort: video.SortViews})

	s = Reduce(s, Listed{Generation: 1, Err: errors.New("connection refused")})
	assert.False(t, s.Loading)
	assert.Equal(t, []Notice{{Level: LevelError, Text: NoticeListFailed}}, s.Notices)
	require.Len(t, s.Videos, 1)
	assert.Equal(t, "kept", s.Videos[0].Title)

	// a late duplicate for the same superseded request adds nothing
	s = Reduce(s, SortChanged{Sort: video.SortRecent})
	s = Reduce(s, Listed{Generation: 1, Err: errors.New("connection refused")})
	assert.Len(t, s.Notices, 1)
}

func TestReduce_UploadFinished(t *testing.T) {
	open := Reduce(NewState(), UploadToggled{Open: true})
	require.True(t, open.UploadOpen)

	ok := Reduce(open, UploadFinished{})
	assert.False(t, ok.UploadOpen)
	assert.Equal(t, []Notice{{Level: LevelSuccess, Text: NoticeUploadSuccess}}, ok.Notices)

	noFile := Reduce(open, UploadFinished{Err: ErrNoVideoFile})
	assert.True(t, noFile.UploadOpen)
	assert.Equal(t, NoticeNoVideoFile, noFile.Notices[0].Text)

	failed := Reduce(open, UploadFinished{Err: errors.Join(ErrUploadFailed, io.ErrUnexpectedEOF)})
	assert.True(t, failed.UploadOpen)
	assert.Equal(t, []Notice{{Level: LevelError, Text: NoticeUploadFailed}}, failed.Notices)

	assert.Empty(t, Reduce(failed, NoticesCleared{}).Notices)
}

func TestReduce_DoesNotShareNotices(t *testing.T) {
	base := Reduce(NewState(), UploadFinished{})
	a := Reduce(base, UploadFinished{Err: ErrNoVideoFile})
	b := Reduce(base, UploadFinished{})

	assert.Equal(t, NoticeNoVideoFile, a.Notices[1].Text)
	assert.Equal(t, NoticeUploadSuccess, b.Notices[1].Text)
}

// ---- fetch ----

type fakeLister struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeLister) ListVideos(ctx context.Context, sortBy video.SortBy, q string) ([]video.VideoView, error) {
	f.mu.Lock()
	f.calls = append(f.calls, string(sortBy)+"|"+q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []video.VideoView{{Title: q}}, nil
}

func TestFetch(t *testing.T) {
	api := &fakeLister{}
	s := Reduce(NewState(), InputChanged{Text: "teh"})
	s = Reduce(s, SearchSubmitted{})

	ev, ok := <-Fetch(context.Background(), api, s)
	require.True(t, ok)
	s = Reduce(s, ev)

	assert.Equal(t, []string{"recent|the"}, api.calls)
	require.Len(t, s.Videos, 1)
	assert.False(t, s.Loading)
}

func TestFetch_ErrorKeepsVideos(t *testing.T) {
	s := NewState()
	s.Videos = []video.VideoView{{Title: "kept"}}

	ev := <-Fetch(context.Background(), &fakeLister{err: errors.New("offline")}, s)
	s = Reduce(s, ev)

	assert.Error(t, ev.Err)
	assert.Equal(t, "kept", s.Videos[0].Title)
}

// ---- upload ----

type fakeUploadAPI struct {
	calls     []string
	failOn    string
	slots     int
	lastInput video.CreateVideoInput
}

func (f *fakeUploadAPI) RequestUploadSlot(ctx context.Context) (string, error) {
	f.calls = append(f.calls, "slot")
	if f.failOn == "slot" {
		return "", errors.New("slot refused")
	}
	f.slots++
	return "http://api/api/v1/uploads/" + string(rune('0'+f.slots)), nil
}

func (f *fakeUploadAPI) Upload(ctx context.Context, url, name, contentType string, size int64, body io.Reader) (string, error) {
	f.calls = append(f.calls, "upload:"+name)
	if f.failOn == "upload:"+name {
		return "", errors.New("connection reset")
	}
	return "ref-" + name, nil
}

func (f *fakeUploadAPI) CreateVideo(ctx context.Context, in video.CreateVideoInput) (string, error) {
	f.calls = append(f.calls, "create")
	f.lastInput = in
	if f.failOn == "create" {
		return "", errors.New("validation")
	}
	return "vid-1", nil
}

func file(name string) *File {
	return &File{Name: name, ContentType: "application/octet-stream", Size: 1, Body: strings.NewReader("x")}
}

func TestUploader_Sequence(t *testing.T) {
	api := &fakeUploadAPI{}
	id, err := NewUploader(api).Upload(context.Background(), Form{
		Title: "Intro", Description: "Hello world", Video: file("clip.mp4"), Thumbnail: file("thumb.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "vid-1", id)

	want := []string{"slot", "upload:clip.mp4", "slot", "upload:thumb.png", "create"}
	if diff := cmp.Diff(want, api.calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "ref-clip.mp4", api.lastInput.StorageID)
	require.NotNil(t, api.lastInput.ThumbnailID)
	assert.Equal(t, "ref-thumb.png", *api.lastInput.ThumbnailID)
}

func TestUploader_WithoutThumbnail(t *testing.T) {
	api := &fakeUploadAPI{}
	_, err := NewUploader(api).Upload(context.Background(), Form{Title: "Intro", Description: "Hello world", Video: file("clip.mp4")})
	require.NoError(t, err)

	assert.Equal(t, []string{"slot", "upload:clip.mp4", "create"}, api.calls)
	assert.Nil(t, api.lastInput.ThumbnailID)
}

func TestUploader_NoVideoFile(t *testing.T) {
	api := &fakeUploadAPI{}
	_, err := NewUploader(api).Upload(context.Background(), Form{Title: "t", Thumbnail: file("thumb.png")})

	assert.ErrorIs(t, err, ErrNoVideoFile)
	assert.Empty(t, api.calls)
}

func TestUploader_FailuresCollapse(t *testing.T) {
	steps := []struct {
		failOn    string
		wantCalls []string
	}{
		{"slot", []string{"slot"}},
		{"upload:clip.mp4", []string{"slot", "upload:clip.mp4"}},
		{"upload:thumb.png", []string{"slot", "upload:clip.mp4", "slot", "upload:thumb.png"}},
		{"create", []string{"slot", "upload:clip.mp4", "slot", "upload:thumb.png", "create"}},
	}

	for _, tt := range steps {
		t.Run(tt.failOn, func(t *testing.T) {
			api := &fakeUploadAPI{failOn: tt.failOn}
			_, err := NewUploader(api).Upload(context.Background(), Form{
				Title: "t", Description: "d", Video: file("clip.mp4"), Thumbnail: file("thumb.png"),
			})

			assert.ErrorIs(t, err, ErrUploadFailed)
			assert.Equal(t, NoticeUploadFailed, Reduce(NewState(), UploadFinished{Err: err}).Notices[0].Text)
			assert.Equal(t, tt.wantCalls, api.calls)
		})
	}
}
