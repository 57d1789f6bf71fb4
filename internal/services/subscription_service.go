package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/streamhive/streamhive-backend/internal/models"
	"github.com/streamhive/streamhive-backend/internal/repository"
)

type SubscriptionService struct {
	subs  repository.SubscriptionRepository
	users repository.UserRepository
}

func NewSubscriptionService(subs repository.SubscriptionRepository, users repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subs: subs, users: users}
}

// Toggle flips the viewer's subscription to a channel. Returns whether the
// viewer is subscribed after the call.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	subscriber, err := primitive.ObjectIDFromHex(subscriberID)
	if err != nil {
		return false, fmt.Errorf("%w: invalid subscriber id", ErrInvalidArgument)
	}
	channel, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return false, fmt.Errorf("%w: invalid channel id", ErrInvalidArgument)
	}
	if subscriber == channel {
		return false, fmt.Errorf("%w: cannot subscribe to your own channel", ErrInvalidArgument)
	}
	// channel must be a real user; surfaces ErrUserNotFound otherwise
	if _, err := s.users.FindByID(ctx, channel); err != nil {
		return false, err
	}
	return s.subs.Toggle(ctx, subscriber, channel)
}

func (s *SubscriptionService) ListSubscribers(ctx context.Context, channelID string, page, limit int64) (*models.SubscriptionPage, error) {
	channel, err := parseListArgs(channelID, page, limit)
	if err != nil {
		return nil, err
	}
	return s.subs.ListSubscribers(ctx, channel, page, limit)
}

func (s *SubscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID string, page, limit int64) (*models.SubscriptionPage, error) {
	subscriber, err := parseListArgs(subscriberID, page, limit)
	if err != nil {
		return nil, err
	}
	return s.subs.ListSubscribedChannels(ctx, subscriber, page, limit)
}

func parseListArgs(id string, page, limit int64) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid user id", ErrInvalidArgument)
	}
	if page <= 0 || limit <= 0 {
		return primitive.NilObjectID, fmt.Errorf("%w: page and limit must be positive", ErrInvalidArgument)
	}
	return oid, nil
}
