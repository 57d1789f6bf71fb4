package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/streamhive/streamhive-backend/internal/models"
	"github.com/streamhive/streamhive-backend/internal/repository"
)

func TestToggleRejectsMalformedIDs(t *testing.T) {
	svc := NewSubscriptionService(&fakeSubscriptionRepo{}, &fakeUserRepo{})
	valid := primitive.NewObjectID().Hex()

	if _, err := svc.Toggle(context.Background(), "nope", valid); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("bad subscriber err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Toggle(context.Background(), valid, "nope"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("bad channel err = %v, want ErrInvalidArgument", err)
	}
}

func TestToggleRejectsSelfSubscription(t *testing.T) {
	svc := NewSubscriptionService(&fakeSubscriptionRepo{}, &fakeUserRepo{})
	id := primitive.NewObjectID().Hex()
	if _, err := svc.Toggle(context.Background(), id, id); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("self subscription err = %v, want ErrInvalidArgument", err)
	}
}

func TestToggleUnknownChannel(t *testing.T) {
	svc := NewSubscriptionService(&fakeSubscriptionRepo{}, &fakeUserRepo{})
	_, err := svc.Toggle(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())
	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestToggleFlipsState(t *testing.T) {
	users := &fakeUserRepo{findByIDFn: func(_ context.Context, id primitive.ObjectID) (*models.User, error) {
		return &models.User{ID: id}, nil
	}}
	subscribed := false
	subs := &fakeSubscriptionRepo{toggleFn: func(_ context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
		subscribed = !subscribed
		return subscribed, nil
	}}
	svc := NewSubscriptionService(subs, users)

	subscriber := primitive.NewObjectID().Hex()
	channel := primitive.NewObjectID().Hex()

	on, err := svc.Toggle(context.Background(), subscriber, channel)
	if err != nil || !on {
		t.Fatalf("first toggle = (%v, %v), want subscribed", on, err)
	}
	on, err = svc.Toggle(context.Background(), subscriber, channel)
	if err != nil || on {
		t.Fatalf("second toggle = (%v, %v), want unsubscribed", on, err)
	}
}

func TestSubscriptionListingsValidateArgs(t *testing.T) {
	svc := NewSubscriptionService(&fakeSubscriptionRepo{}, &fakeUserRepo{})
	id := primitive.NewObjectID().Hex()

	if _, err := svc.ListSubscribers(context.Background(), "nope", 1, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("bad channel id err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.ListSubscribers(context.Background(), id, 0, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("page 0 err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.ListSubscribedChannels(context.Background(), id, 1, -5); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("negative limit err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.ListSubscribedChannels(context.Background(), id, 1, 10); err != nil {
		t.Fatalf("valid listing: %v", err)
	}
}
