package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/streamhive/streamhive-backend/internal/events"
	"github.com/streamhive/streamhive-backend/internal/models"
	"github.com/streamhive/streamhive-backend/internal/repository"
	"github.com/streamhive/streamhive-backend/internal/storage"
	"github.com/streamhive/streamhive-backend/internal/utils"
)

type UserService struct {
	users    repository.UserRepository
	store    storage.ObjectStore
	jwt      *utils.JWTManager
	events   *events.Publisher
	hashCost int
	log      *zap.Logger
}

func NewUserService(
	users repository.UserRepository,
	store storage.ObjectStore,
	jwtMgr *utils.JWTManager,
	publisher *events.Publisher,
	hashCost int,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		users:    users,
		store:    store,
		jwt:      jwtMgr,
		events:   publisher,
		hashCost: hashCost,
		log:      logger,
	}
}

type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Avatar     Upload
	CoverImage *Upload
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	if in.FullName == "" || in.Email == "" || in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidArgument)
	}
	if len(in.Avatar.Data) == 0 {
		return nil, fmt.Errorf("%w: avatar is required", ErrInvalidArgument)
	}

	exists, err := s.users.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email or username taken", ErrAlreadyExists)
	}

	hash, err := utils.HashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	avatarURL, err := s.uploadImage(ctx, "avatars", in.Avatar, avatarMaxWidth)
	if err != nil {
		return nil, err
	}
	var coverURL string
	if in.CoverImage != nil && len(in.CoverImage.Data) > 0 {
		coverURL, err = s.uploadImage(ctx, "covers", *in.CoverImage, coverMaxWidth)
		if err != nil {
			return nil, err
		}
	}

	user := &models.User{
		Username:   in.Username,
		Email:      in.Email,
		FullName:   in.FullName,
		Password:   hash,
		Avatar:     avatarURL,
		CoverImage: coverURL,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.events.PublishUserRegistered(ctx, events.UserRegisteredEvent{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		Email:    user.Email,
	})
	return user, nil
}

// Login accepts either email or username as the identifier.
func (s *UserService) Login(ctx context.Context, email, username, password string) (*models.User, *models.AuthTokens, error) {
	if email == "" && username == "" {
		return nil, nil, fmt.Errorf("%w: username or email is required", ErrInvalidArgument)
	}

	var user *models.User
	var err error
	if email != "" {
		user, err = s.users.FindByEmail(ctx, email)
	} else {
		user, err = s.users.FindByUsername(ctx, username)
	}
	if err != nil {
		return nil, nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, nil, ErrUnauthorized
	}

	tokens, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidArgument
	}
	return s.users.SetRefreshToken(ctx, oid, "")
}

// Refresh rotates the token pair when the presented refresh token matches
// the single active one stored on the user document.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	userID, err := s.jwt.ParseRefresh(refreshToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, ErrUnauthorized
	}
	return s.issueTokens(ctx, user.ID)
}

func (s *UserService) issueTokens(ctx context.Context, id primitive.ObjectID) (*models.AuthTokens, error) {
	access, err := s.jwt.GenerateAccessToken(id.Hex())
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(id.Hex())
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshToken(ctx, id, refresh); err != nil {
		return nil, err
	}
	return &models.AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidArgument
	}
	return s.users.FindByID(ctx, oid)
}

func (s *UserService) UpdateAccount(ctx context.Context, userID, fullname, email string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidArgument
	}
	fullname = strings.TrimSpace(fullname)
	email = strings.TrimSpace(email)
	if fullname == "" && email == "" {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}
	return s.users.UpdateAccount(ctx, oid, fullname, email)
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID string, avatar Upload) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidArgument
	}
	if len(avatar.Data) == 0 {
		return nil, fmt.Errorf("%w: avatar is required", ErrInvalidArgument)
	}
	url, err := s.uploadImage(ctx, "avatars", avatar, avatarMaxWidth)
	if err != nil {
		return nil, err
	}
	return s.users.UpdateAvatar(ctx, oid, url)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID string, cover Upload) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidArgument
	}
	if len(cover.Data) == 0 {
		return nil, fmt.Errorf("%w: cover image is required", ErrInvalidArgument)
	}
	url, err := s.uploadImage(ctx, "covers", cover, coverMaxWidth)
	if err != nil {
		return nil, err
	}
	return s.users.UpdateCoverImage(ctx, oid, url)
}

func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidArgument
	}
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrInvalidArgument)
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.Password, oldPassword) {
		return ErrUnauthorized
	}
	hash, err := utils.HashPassword(newPassword, s.hashCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, oid, hash)
}

// GetChannelProfile resolves a channel page for an optionally authenticated
// viewer. A viewer id that is not a valid ObjectID is treated as anonymous.
func (s *UserService) GetChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}
	var viewer *primitive.ObjectID
	if viewerID != "" {
		if oid, err := primitive.ObjectIDFromHex(viewerID); err == nil {
			viewer = &oid
		}
	}
	return s.users.GetChannelProfile(ctx, username, viewer)
}

func (s *UserService) uploadImage(ctx context.Context, kind string, up Upload, maxWidth int) (string, error) {
	up = downscaleImage(up, maxWidth)
	key := fmt.Sprintf("%s/%s_%s", kind, uuid.NewString(), up.Filename)
	url, err := s.store.Upload(ctx, key, up.ContentType, up.Data)
	if err != nil {
		s.log.Error("image upload failed", zap.String("kind", kind), zap.Error(err))
		return "", err
	}
	return url, nil
}
