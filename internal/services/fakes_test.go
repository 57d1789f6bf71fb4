package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/streamhive/streamhive-backend/internal/models"
	"github.com/streamhive/streamhive-backend/internal/repository"
)

type fakeUserRepo struct {
	createFn            func(ctx context.Context, u *models.User) error
	findByIDFn          func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	findByUsernameFn    func(ctx context.Context, username string) (*models.User, error)
	findByEmailFn       func(ctx context.Context, email string) (*models.User, error)
	existsFn            func(ctx context.Context, email, username string) (bool, error)
	setRefreshTokenFn   func(ctx context.Context, id primitive.ObjectID, token string) error
	getChannelProfileFn func(ctx context.Context, username string, viewer *primitive.ObjectID) (*models.ChannelProfile, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	u.ID = primitive.NewObjectID()
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.findByUsernameFn != nil {
		return f.findByUsernameFn(ctx, username)
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, email, username)
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateAccount(ctx context.Context, id primitive.ObjectID, fullname, email string) (*models.User, error) {
	return &models.User{ID: id, FullName: fullname, Email: email}, nil
}

func (f *fakeUserRepo) UpdateAvatar(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error) {
	return &models.User{ID: id, Avatar: url}, nil
}

func (f *fakeUserRepo) UpdateCoverImage(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error) {
	return &models.User{ID: id, CoverImage: url}, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return nil
}

func (f *fakeUserRepo) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	if f.setRefreshTokenFn != nil {
		return f.setRefreshTokenFn(ctx, id, token)
	}
	return nil
}

func (f *fakeUserRepo) GetChannelProfile(ctx context.Context, username string, viewer *primitive.ObjectID) (*models.ChannelProfile, error) {
	if f.getChannelProfileFn != nil {
		return f.getChannelProfileFn(ctx, username, viewer)
	}
	return nil, repository.ErrUserNotFound
}

type fakeVideoRepo struct {
	listFn     func(ctx context.Context, p repository.ListVideosParams) (*models.VideoPage, error)
	findByIDFn func(ctx context.Context, id primitive.ObjectID) (*models.Video, error)
	createFn   func(ctx context.Context, v *models.Video) error

	published *bool
	deleted   bool
	views     int
}

func (f *fakeVideoRepo) Create(ctx context.Context, v *models.Video) error {
	if f.createFn != nil {
		return f.createFn(ctx, v)
	}
	v.ID = primitive.NewObjectID()
	return nil
}

func (f *fakeVideoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (f *fakeVideoRepo) GetWithOwner(ctx context.Context, id primitive.ObjectID) (*models.VideoSummary, error) {
	return &models.VideoSummary{ID: id}, nil
}

func (f *fakeVideoRepo) List(ctx context.Context, p repository.ListVideosParams) (*models.VideoPage, error) {
	if f.listFn != nil {
		return f.listFn(ctx, p)
	}
	return &models.VideoPage{}, nil
}

func (f *fakeVideoRepo) UpdateDetails(ctx context.Context, id primitive.ObjectID, title, description, thumbnail string) (*models.Video, error) {
	return &models.Video{ID: id, Title: title, Description: description, Thumbnail: thumbnail}, nil
}

func (f *fakeVideoRepo) SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error {
	f.published = &published
	return nil
}

func (f *fakeVideoRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	f.views++
	return nil
}

func (f *fakeVideoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.deleted = true
	return nil
}

type fakeSubscriptionRepo struct {
	toggleFn func(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
}

func (f *fakeSubscriptionRepo) Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	if f.toggleFn != nil {
		return f.toggleFn(ctx, subscriber, channel)
	}
	return true, nil
}

func (f *fakeSubscriptionRepo) ListSubscribers(ctx context.Context, channel primitive.ObjectID, page, limit int64) (*models.SubscriptionPage, error) {
	return &models.SubscriptionPage{}, nil
}

func (f *fakeSubscriptionRepo) ListSubscribedChannels(ctx context.Context, subscriber primitive.ObjectID, page, limit int64) (*models.SubscriptionPage, error) {
	return &models.SubscriptionPage{}, nil
}

type fakeObjectStore struct {
	uploads map[string]string // key -> contentType
}

func (f *fakeObjectStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if f.uploads == nil {
		f.uploads = map[string]string{}
	}
	f.uploads[key] = contentType
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeObjectStore) PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://signed.example.com/" + key, nil
}
