package media

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wonderscape/internal/common"
	"wonderscape/internal/dbmongo"
	"wonderscape/internal/logging"
	"wonderscape/internal/storage"
)

// ---- fakes ----

type fakeSlots struct {
	owners map[string]uint64
	err    error
}

func (f *fakeSlots) Consume(ctx context.Context, token string) (uint64, error) {
	if f.err != nil {
		return 0, f.err
	}
	owner, ok := f.owners[token]
	if !ok {
		return 0, storage.ErrSlotNotFound
	}
	delete(f.owners, token)
	return owner, nil
}

type putCall struct {
	name, contentType string
	uploader          uint64
	size              int64
	body              string
}

type fakeBlobs struct {
	mu    sync.Mutex
	calls []putCall
	err   error
	// strict fails the Put when the body cannot be read to the end
	strict bool
}

func (f *fakeBlobs) Put(ctx context.Context, name, contentType string, uploader uint64, size int64, r io.Reader) (string, error) {
	data, readErr := io.ReadAll(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, putCall{name, contentType, uploader, size, string(data)})
	if f.strict && readErr != nil {
		return "", readErr
	}
	if f.err != nil {
		return "", f.err
	}
	return "ref-1", nil
}

func (f *fakeBlobs) recorded() []putCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]putCall(nil), f.calls...)
}

// slowBody yields parts with a pause between them.
func slowBody(pause time.Duration, parts ...string) io.Reader {
	pr, pw := io.Pipe()
	go func() {
		for i, p := range parts {
			if i > 0 {
				time.Sleep(pause)
			}
			if _, err := pw.Write([]byte(p)); err != nil {
				return
			}
		}
		pw.Close()
	}()
	return pr
}

type fakeFiles struct {
	files map[string]string
	meta  map[string]*dbmongo.MediaFile
	err   error
}

func (f *fakeFiles) DownloadFile(ctx context.Context, id string) (io.ReadCloser, *dbmongo.MediaFile, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	body, ok := f.files[id]
	if !ok {
		return nil, nil, dbmongo.ErrFileNotFound
	}
	return io.NopCloser(strings.NewReader(body)), f.meta[id], nil
}

func newUploadRouter(slots *fakeSlots, blobs *fakeBlobs) *mux.Router {
	r := mux.NewRouter()
	NewUploadHandler(slots, blobs, 0, logging.Nop()).RegisterRoutes(r, nil)
	return r
}

// ---- upload ----

func TestUpload_StoresBodyForSlotOwner(t *testing.T) {
	slots := &fakeSlots{owners: map[string]uint64{"tok": 7}}
	blobs := &fakeBlobs{}
	r := newUploadRouter(slots, blobs)

	req := httptest.NewRequest(http.MethodPost, "/uploads/tok", strings.NewReader("video-bytes"))
	req.Header.Set("Content-Type", "video/mp4")
	req.Header.Set("X-Filename", "clip.mp4")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ref-1", resp.StorageID)

	require.Len(t, blobs.calls, 1)
	assert.Equal(t, putCall{
		name: "clip.mp4", contentType: "video/mp4", uploader: 7, size: int64(len("video-bytes")), body: "video-bytes",
	}, blobs.calls[0])
}

func TestUpload_SlotIsSingleUse(t *testing.T) {
	slots := &fakeSlots{owners: map[string]uint64{"tok": 7}}
	blobs := &fakeBlobs{}
	r := newUploadRouter(slots, blobs)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/uploads/tok", strings.NewReader("a")))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/uploads/tok", strings.NewReader("b")))
	assert.Equal(t, http.StatusNotFound, second.Code)

	var body common.ErrorResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, common.CodeNotFound, body.Error.Code)
	assert.Len(t, blobs.calls, 1)
}

func TestUpload_DefaultsNameAndContentType(t *testing.T) {
	slots := &fakeSlots{owners: map[string]uint64{"tok": 1}}
	blobs := &fakeBlobs{}
	r := newUploadRouter(slots, blobs)

	req := httptest.NewRequest(http.MethodPost, "/uploads/tok", strings.NewReader("x"))
	req.Header.Del("Content-Type")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok", blobs.calls[0].name)
	assert.Equal(t, common.DefaultContentType, blobs.calls[0].contentType)
}

func TestUpload_Failures(t *testing.T) {
	t.Run("slot store error", func(t *testing.T) {
		r := newUploadRouter(&fakeSlots{err: errors.New("mongo down")}, &fakeBlobs{})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/uploads/tok", strings.NewReader("x")))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("blob store error", func(t *testing.T) {
		slots := &fakeSlots{owners: map[string]uint64{"tok": 1}}
		r := newUploadRouter(slots, &fakeBlobs{err: errors.New("bucket gone")})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/uploads/tok", strings.NewReader("x")))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		// no rollback: the slot stays spent
		assert.Empty(t, slots.owners)
	})
}

func TestUpload_BodyOutlivesServerReadTimeout(t *testing.T) {
	slots := &fakeSlots{owners: map[string]uint64{"tok": 7}}
	blobs := &fakeBlobs{strict: true}
	r := mux.NewRouter()
	NewUploadHandler(slots, blobs, time.Minute, logging.Nop()).RegisterRoutes(r, nil)

	srv := httptest.NewUnstartedServer(r)
	srv.Config.ReadTimeout = 100 * time.Millisecond
	srv.Start()
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/uploads/tok", slowBody(300*time.Millisecond, "first-", "second"))
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	calls := blobs.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "first-second", calls[0].body)
}

func TestUpload_DeadlineUnsupportedByWriter(t *testing.T) {
	// recorders cannot set deadlines; the upload still goes through
	slots := &fakeSlots{owners: map[string]uint64{"tok": 7}}
	r := mux.NewRouter()
	NewUploadHandler(slots, &fakeBlobs{}, time.Minute, logging.Nop()).RegisterRoutes(r, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/uploads/tok", strings.NewReader("x")))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// ---- rate limit ----

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	limited := RateLimit(2, time.Minute)(ok)

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/uploads/tok", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	blocked := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
	var body common.ErrorResponse
	require.NoError(t, json.Unmarshal(blocked.Body.Bytes(), &body))
	assert.Equal(t, common.CodeRateLimited, body.Error.Code)

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	limited := RateLimit(0, time.Minute)(ok)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

// ---- download ----

func TestHTTPServer_ServeFile(t *testing.T) {
	files := &fakeFiles{
		files: map[string]string{"abc": "PNGDATA", "raw": "bytes"},
		meta: map[string]*dbmongo.MediaFile{
			"abc": {ID: "abc", Filename: "thumb.png", Size: 7, ContentType: "image/png"},
			"raw": {ID: "raw", Filename: "movie.webm", Size: 5, ContentType: common.DefaultContentType},
		},
	}
	srv := newHTTPServer(files, logging.Nop())

	t.Run("streams with recorded type", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/abc", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "7", rec.Header().Get("Content-Length"))
		assert.Equal(t, "PNGDATA", rec.Body.String())
	})

	t.Run("falls back to extension", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/raw", nil))

		assert.Equal(t, "video/webm", rec.Header().Get("Content-Type"))
	})

	t.Run("head has no body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/media/abc", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("unknown file", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHTTPServer_StorageError(t *testing.T) {
	srv := newHTTPServer(&fakeFiles{err: errors.New("timeout")}, logging.Nop())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/abc", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContentType(t *testing.T) {
	tests := []struct {
		file dbmongo.MediaFile
		want string
	}{
		{dbmongo.MediaFile{Filename: "a.JPG"}, "image/jpeg"},
		{dbmongo.MediaFile{Filename: "a.mp4"}, "video/mp4"},
		{dbmongo.MediaFile{Filename: "a.bin"}, common.DefaultContentType},
		{dbmongo.MediaFile{Filename: "a.bin", ContentType: "video/ogg"}, "video/ogg"},
	}
	for _, tt := range tests {
		t.Run(tt.file.Filename+tt.file.ContentType, func(t *testing.T) {
			assert.Equal(t, tt.want, contentType(&tt.file))
		})
	}
}
