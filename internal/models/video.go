package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/streamhive/streamhive-backend/internal/pagination"
)

// Video is a published or draft upload owned by a single user.
type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Duration    float64            `bson:"duration" json:"duration"` // seconds
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// VideoSummary is a video row joined with its owner's public summary. A video
// whose owner document no longer exists keeps a zero-valued Owner rather than
// being dropped from listings.
type VideoSummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       UserSummary        `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// VideoPage is one page of a video listing.
type VideoPage struct {
	Videos []VideoSummary  `json:"videos"`
	Meta   pagination.Meta `json:"pagination"`
}
