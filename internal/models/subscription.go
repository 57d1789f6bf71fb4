package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/streamhive/streamhive-backend/internal/pagination"
)

// Subscription is a directed edge: Subscriber follows Channel. Both sides are
// user ids. A compound unique index keeps the edge set free of duplicates.
type Subscription struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subscriber primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    primitive.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// SubscriptionEntry is a subscription edge joined with the user summary of
// the far side (the subscriber when listing a channel's audience, the channel
// when listing what a user follows).
type SubscriptionEntry struct {
	User         UserSummary `bson:"user" json:"user"`
	SubscribedAt time.Time   `bson:"createdAt" json:"subscribedAt"`
}

// SubscriptionPage is one page of joined subscription edges.
type SubscriptionPage struct {
	Entries []SubscriptionEntry `json:"entries"`
	Meta    pagination.Meta     `json:"pagination"`
}
