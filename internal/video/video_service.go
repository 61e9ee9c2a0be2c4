package video

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"wonderscape/internal/common"
	"wonderscape/internal/metrics"
)

//go:generate mockgen -source=video_service.go -destination=mock_video_service.go -package=video

type VideoService interface {
	RequestUploadSlot(ctx context.Context) (string, error)
	CreateVideo(ctx context.Context, in CreateVideoInput) (string, error)
	// GetVideo returns nil, nil for unknown or malformed ids
	GetVideo(ctx context.Context, id string) (*VideoView, error)
	ListVideos(ctx context.Context, sortBy SortBy, searchQuery string) ([]VideoView, error)
	// IncrementViews is a no-op for unknown or malformed ids
	IncrementViews(ctx context.Context, id string) error
}

type SlotIssuer interface {
	Allocate(ctx context.Context, userID uint64) (string, error)
}

type NameResolver interface {
	DisplayNames(ctx context.Context, userIDs []uint64) (map[uint64]string, error)
}

type URLResolver interface {
	URL(ctx context.Context, ref string) (string, bool, error)
}

// resolving storage URLs may hit the blob backend once per reference
const urlResolveParallelism = 8

type videoService struct {
	repo      VideoRepository
	slots     SlotIssuer
	names     NameResolver
	blobs     URLResolver
	uploadURL func(token string) string
	log       zerolog.Logger
	now       func() time.Time
}

func NewVideoService(
	repo VideoRepository,
	slots SlotIssuer,
	names NameResolver,
	blobs URLResolver,
	uploadURL func(token string) string,
	log zerolog.Logger,
) VideoService {
	return &videoService{
		repo:      repo,
		slots:     slots,
		names:     names,
		blobs:     blobs,
		uploadURL: uploadURL,
		log:       log,
		now:       time.Now,
	}
}

func (s *videoService) RequestUploadSlot(ctx context.Context) (string, error) {
	userID, err := common.RequireUser(ctx)
	if err != nil {
		return "", err
	}

	token, err := s.slots.Allocate(ctx, userID)
	if err != nil {
		return "", err
	}
	metrics.RecordUploadSlot()

	return s.uploadURL(token), nil
}

func (s *videoService) CreateVideo(ctx context.Context, in CreateVideoInput) (string, error) {
	userID, err := common.RequireUser(ctx)
	if err != nil {
		return "", err
	}

	switch {
	case in.Title == "":
		return "", fmt.Errorf("%w: title is required", ErrValidation)
	case in.Description == "":
		return "", fmt.Errorf("%w: description is required", ErrValidation)
	case in.StorageID == "":
		return "", fmt.Errorf("%w: storageId is required", ErrValidation)
	}

	thumb := in.ThumbnailID
	if thumb != nil && *thumb == "" {
		thumb = nil
	}

	createdAt := s.now().UnixMilli()
	v := &Video{
		Title:       in.Title,
		Description: in.Description,
		UserID:      userID,
		StorageID:   in.StorageID,
		ThumbnailID: thumb,
		Views:       0,
		CreatedAt:   &createdAt,
	}
	if err := s.repo.Insert(ctx, v); err != nil {
		return "", err
	}

	metrics.RecordVideoCreated()
	s.log.Info().Str("video_id", v.ID.Hex()).Uint64("user_id", userID).Msg("video created")

	return v.ID.Hex(), nil
}

func (s *videoService) GetVideo(ctx context.Context, id string) (*VideoView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	v, err := s.repo.FindByID(ctx, oid)
	if err != nil || v == nil {
		return nil, err
	}

	views, err := s.enrich(ctx, []Video{*v})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *videoService) ListVideos(ctx context.Context, sortBy SortBy, searchQuery string) ([]VideoView, error) {
	if sortBy == "" {
		sortBy = SortRecent
	}
	if !sortBy.Valid() {
		return nil, fmt.Errorf("%w: sortBy must be %q or %q", ErrValidation, SortRecent, SortViews)
	}

	videos, err := s.repo.List(ctx, sortBy)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, filterVideos(videos, searchQuery))
}

func (s *videoService) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		metrics.RecordViewIncrement(false)
		return nil
	}

	applied, err := s.repo.IncrementViews(ctx, oid)
	if err != nil {
		return err
	}
	metrics.RecordViewIncrement(applied)
	return nil
}

// filterVideos keeps videos whose title or description contains query,
// ignoring case. Order is preserved; an empty query keeps everything.
func filterVideos(videos []Video, query string) []Video {
	if query == "" {
		return videos
	}
	q := strings.ToLower(query)

	out := make([]Video, 0, len(videos))
	for _, v := range videos {
		if strings.Contains(strings.ToLower(v.Title), q) || strings.Contains(strings.ToLower(v.Description), q) {
			out = append(out, v)
		}
	}
	return out
}

func (s *videoService) enrich(ctx context.Context, videos []Video) ([]VideoView, error) {
	out := make([]VideoView, len(videos))
	if len(videos) == 0 {
		return out, nil
	}

	ids := make([]uint64, len(videos))
	for i, v := range videos {
		ids[i] = v.UserID
	}
	names, err := s.names.DisplayNames(ctx, ids)
	if err != nil {
		// owners show as Anonymous until identity is reachable again
		s.log.Warn().Err(err).Int("videos", len(videos)).Msg("owner lookup failed")
		names = nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(urlResolveParallelism)
	for i := range videos {
		i := i
		v := videos[i]
		out[i] = VideoView{
			ID:          v.ID.Hex(),
			Title:       v.Title,
			Description: v.Description,
			UserID:      v.UserID,
			StorageID:   v.StorageID,
			ThumbnailID: v.ThumbnailID,
			Views:       v.Views,
			CreatedAt:   v.CreatedAt,
			Username:    displayName(names, v.UserID),
		}

		// each goroutine writes only its own slot of out
		g.Go(func() error {
			url, err := s.resolve(gctx, v.StorageID)
			if err != nil {
				return err
			}
			out[i].URL = url

			if v.ThumbnailID != nil {
				thumb, err := s.resolve(gctx, *v.ThumbnailID)
				if err != nil {
					return err
				}
				out[i].ThumbnailURL = thumb
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *videoService) resolve(ctx context.Context, ref string) (*string, error) {
	if ref == "" {
		return nil, nil
	}
	url, ok, err := s.blobs.URL(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve storage reference: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &url, nil
}

func displayName(names map[uint64]string, userID uint64) string {
	if name, ok := names[userID]; ok && name != "" {
		return name
	}
	return "Anonymous"
}
