// Package cli implements the wonder terminal client.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"wonderscape/internal/client/api"
	"wonderscape/internal/client/catalog"
	"wonderscape/internal/client/player"
	"wonderscape/internal/common"
	"wonderscape/internal/video"
)

const usage = `usage: wonder [-api URL] [-token TOKEN] <command> [flags]

commands:
  register -email E -password P
  login    -email E -password P
  list     [-sort recent|views] [-q QUERY]
  upload   -title T [-desc D] -video FILE [-thumb FILE]
  watch    ID
`

type App struct {
	api *api.Client
	out io.Writer
	log zerolog.Logger

	// open is swapped in tests
	open func(path string) (*catalog.File, func() error, error)
}

func NewApp(client *api.Client, out io.Writer, log zerolog.Logger) *App {
	return &App{api: client, out: out, log: log, open: openFile}
}

// Run dispatches one command line, without the global flags.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errors.New("no command given")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return a.auth(ctx, cmd, rest, a.api.Register)
	case "login":
		return a.auth(ctx, cmd, rest, a.api.Login)
	case "list":
		return a.list(ctx, rest)
	case "upload":
		return a.upload(ctx, rest)
	case "watch":
		return a.watch(ctx, rest)
	case "help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

type authFunc func(ctx context.Context, email, password string) (*api.AuthResult, error)

func (a *App) auth(ctx context.Context, name string, args []string, call authFunc) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := call(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (user %d)\n", res.Email, res.UserID)
	fmt.Fprintf(a.out, "export WONDER_TOKEN=%s\n", res.Token)
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	sortBy := fs.String("sort", string(video.SortRecent), "recent or views")
	query := fs.String("q", "", "search text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !video.SortBy(*sortBy).Valid() {
		return fmt.Errorf("unknown sort %q", *sortBy)
	}

	s := catalog.NewState()
	s = catalog.Reduce(s, catalog.SortChanged{Sort: video.SortBy(*sortBy)})
	s = catalog.Reduce(s, catalog.InputChanged{Text: *query})
	s = catalog.Reduce(s, catalog.SearchSubmitted{})
	a.printNotices(s.Notices)
	shown := len(s.Notices)

	listed := <-catalog.Fetch(ctx, a.api, s)
	s = catalog.Reduce(s, listed)
	if listed.Err != nil {
		a.printNotices(s.Notices[shown:])
		return listed.Err
	}

	if s.Query != "" {
		fmt.Fprintf(a.out, "Results for %q\n", s.Query)
	}
	if len(s.Videos) == 0 {
		fmt.Fprintln(a.out, "No videos found")
		return nil
	}
	for _, v := range s.Videos {
		fmt.Fprintf(a.out, "%s  %-40s  %s  %s\n", v.ID, v.Title, v.Username, viewCount(v.Views))
	}
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(a.out)
	title := fs.String("title", "", "video title")
	desc := fs.String("desc", "", "video description")
	videoPath := fs.String("video", "", "video file")
	thumbPath := fs.String("thumb", "", "thumbnail image (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := catalog.Form{Title: *title, Description: *desc}
	if *videoPath != "" {
		f, closeFn, err := a.open(*videoPath)
		if err != nil {
			return err
		}
		defer closeFn()
		form.Video = f
	}
	if *thumbPath != "" {
		f, closeFn, err := a.open(*thumbPath)
		if err != nil {
			return err
		}
		defer closeFn()
		form.Thumbnail = f
	}

	id, err := catalog.NewUploader(a.api).Upload(ctx, form)

	s := catalog.Reduce(catalog.NewState(), catalog.UploadFinished{Err: err})
	a.printNotices(s.Notices)
	if err != nil {
		a.log.Debug().Err(err).Msg("upload failed")
		return err
	}
	fmt.Fprintf(a.out, "id: %s\n", id)
	return nil
}

func (a *App) watch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: wonder watch <id>")
	}
	id := args[0]

	v, err := a.api.GetVideo(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		fmt.Fprintln(a.out, "Video not found")
		return nil
	}

	fmt.Fprintln(a.out, v.Title)
	fmt.Fprintf(a.out, "by %s, %s\n", v.Username, viewCount(v.Views))
	if v.Description != "" {
		fmt.Fprintln(a.out, v.Description)
	}
	if v.URL == nil {
		fmt.Fprintln(a.out, "Video file is unavailable")
		return nil
	}
	fmt.Fprintf(a.out, "stream: %s\n", *v.URL)

	// starting playback counts the view
	sess := player.NewSession(id, a.api)
	if _, err := sess.Dispatch(ctx, player.Played{}); err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			return err
		}
		a.log.Warn().Err(err).Str("video_id", id).Msg("view not counted")
	}
	return nil
}

func (a *App) printNotices(notices []catalog.Notice) {
	for _, n := range notices {
		fmt.Fprintf(a.out, "[%s] %s\n", n.Level, n.Text)
	}
}

func viewCount(n int64) string {
	if n == 1 {
		return "1 view"
	}
	return fmt.Sprintf("%d views", n)
}

func openFile(path string) (*catalog.File, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = common.DefaultContentType
	}
	return &catalog.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		Body:        f,
	}, f.Close, nil
}
