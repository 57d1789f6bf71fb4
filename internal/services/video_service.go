package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/streamhive/streamhive-backend/internal/events"
	"github.com/streamhive/streamhive-backend/internal/metrics"
	"github.com/streamhive/streamhive-backend/internal/models"
	"github.com/streamhive/streamhive-backend/internal/repository"
	"github.com/streamhive/streamhive-backend/internal/storage"
)

// allowedSortFields is the closed set a listing may sort on; anything else
// falls back to creation time.
var allowedSortFields = map[string]bool{
	"createdAt": true,
	"views":     true,
	"duration":  true,
	"title":     true,
}

const (
	defaultSortField = "createdAt"
	DefaultPage      = 1
	DefaultLimit     = 10
)

type VideoService struct {
	videos   repository.VideoRepository
	store    storage.ObjectStore
	resolver *URLResolver
	events   *events.Publisher
	log      *zap.Logger
}

func NewVideoService(
	videos repository.VideoRepository,
	store storage.ObjectStore,
	resolver *URLResolver,
	publisher *events.Publisher,
	logger *zap.Logger,
) *VideoService {
	return &VideoService{
		videos:   videos,
		store:    store,
		resolver: resolver,
		events:   publisher,
		log:      logger,
	}
}

type ListVideosInput struct {
	Query   string
	OwnerID string
	SortBy  string
	SortDir string
	Page    int64
	Limit   int64
}

// List returns the public page of published videos. Page and limit must be
// positive. An owner filter that is not a valid ObjectID hex narrows nothing
// rather than erroring.
func (s *VideoService) List(ctx context.Context, in ListVideosInput) (*models.VideoPage, error) {
	if in.Page <= 0 || in.Limit <= 0 {
		return nil, fmt.Errorf("%w: page and limit must be positive", ErrInvalidArgument)
	}

	params := repository.ListVideosParams{
		Query:   strings.TrimSpace(in.Query),
		SortBy:  defaultSortField,
		SortAsc: in.SortDir == "asc",
		Page:    in.Page,
		Limit:   in.Limit,
	}
	if allowedSortFields[in.SortBy] {
		params.SortBy = in.SortBy
	}
	if in.OwnerID != "" {
		if oid, err := primitive.ObjectIDFromHex(in.OwnerID); err == nil {
			params.OwnerID = &oid
		}
	}

	page, err := s.videos.List(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range page.Videos {
		s.resolveMediaURLs(ctx, &page.Videos[i])
	}
	return page, nil
}

type PublishInput struct {
	Title       string
	Description string
	VideoFile   Upload
	Thumbnail   Upload
	Duration    float64
}

func (s *VideoService) Publish(ctx context.Context, ownerID string, in PublishInput) (*models.Video, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrInvalidArgument
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrInvalidArgument)
	}
	if len(in.VideoFile.Data) == 0 || len(in.Thumbnail.Data) == 0 {
		return nil, fmt.Errorf("%w: video file and thumbnail are required", ErrInvalidArgument)
	}

	videoKey := fmt.Sprintf("videos/%s_%s", uuid.NewString(), in.VideoFile.Filename)
	videoURL, err := s.store.Upload(ctx, videoKey, in.VideoFile.ContentType, in.VideoFile.Data)
	if err != nil {
		s.log.Error("video upload failed", zap.Error(err))
		return nil, err
	}
	thumbURL, err := s.uploadThumbnail(ctx, in.Thumbnail)
	if err != nil {
		return nil, err
	}

	video := &models.Video{
		Title:       in.Title,
		Description: in.Description,
		VideoFile:   videoURL,
		Thumbnail:   thumbURL,
		Duration:    in.Duration,
		IsPublished: true,
		Owner:       owner,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}

	metrics.VideoPublishes.Inc()
	s.events.PublishVideoPublished(ctx, events.VideoPublishedEvent{
		VideoID: video.ID.Hex(),
		OwnerID: owner.Hex(),
		Title:   video.Title,
	})
	return video, nil
}

// Get loads a single video with its owner summary and bumps the view counter.
func (s *VideoService) Get(ctx context.Context, videoID string) (*models.VideoSummary, error) {
	oid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid video id", ErrInvalidArgument)
	}
	video, err := s.videos.GetWithOwner(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := s.videos.IncrementViews(ctx, oid); err != nil {
		s.log.Warn("view count update failed", zap.String("video", videoID), zap.Error(err))
	} else {
		video.Views++
	}
	s.resolveMediaURLs(ctx, video)
	return video, nil
}

type UpdateVideoInput struct {
	Title       string
	Description string
	Thumbnail   *Upload
}

func (s *VideoService) Update(ctx context.Context, ownerID, videoID string, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return nil, err
	}
	var thumbURL string
	if in.Thumbnail != nil && len(in.Thumbnail.Data) > 0 {
		thumbURL, err = s.uploadThumbnail(ctx, *in.Thumbnail)
		if err != nil {
			return nil, err
		}
	}
	return s.videos.UpdateDetails(ctx, video.ID, strings.TrimSpace(in.Title), strings.TrimSpace(in.Description), thumbURL)
}

func (s *VideoService) Delete(ctx context.Context, ownerID, videoID string) error {
	video, err := s.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return err
	}
	return s.videos.Delete(ctx, video.ID)
}

// TogglePublish flips the publish flag and returns the new state.
func (s *VideoService) TogglePublish(ctx context.Context, ownerID, videoID string) (bool, error) {
	video, err := s.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return false, err
	}
	next := !video.IsPublished
	if err := s.videos.SetPublished(ctx, video.ID, next); err != nil {
		return false, err
	}
	return next, nil
}

func (s *VideoService) ownedVideo(ctx context.Context, ownerID, videoID string) (*models.Video, error) {
	oid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid video id", ErrInvalidArgument)
	}
	video, err := s.videos.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if video.Owner.Hex() != ownerID {
		return nil, ErrForbidden
	}
	return video, nil
}

func (s *VideoService) uploadThumbnail(ctx context.Context, thumb Upload) (string, error) {
	thumb = downscaleImage(thumb, thumbnailMaxWidth)
	key := fmt.Sprintf("thumbnails/%s_%s", uuid.NewString(), thumb.Filename)
	url, err := s.store.Upload(ctx, key, thumb.ContentType, thumb.Data)
	if err != nil {
		s.log.Error("thumbnail upload failed", zap.Error(err))
		return "", err
	}
	return url, nil
}

func (s *VideoService) resolveMediaURLs(ctx context.Context, v *models.VideoSummary) {
	if s.resolver == nil {
		return
	}
	if url, err := s.resolver.Resolve(ctx, v.VideoFile); err == nil {
		v.VideoFile = url
	}
	if url, err := s.resolver.Resolve(ctx, v.Thumbnail); err == nil {
		v.Thumbnail = url
	}
}
