package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account on the platform. Every user owns a channel under the
// same username. Password and the active refresh token are never serialized.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // stored lowercase
	Email        string             `bson:"email" json:"email"`
	FullName     string             `bson:"fullname" json:"fullname"`
	Password     string             `bson:"password" json:"-"` // bcrypt hash
	Avatar       string             `bson:"avatar" json:"avatar"`
	CoverImage   string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	RefreshToken string             `bson:"refreshToken,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the public projection of a user embedded in listings
// (video owner, subscriber rows).
type UserSummary struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"fullname" json:"fullname"`
	Avatar   string             `bson:"avatar" json:"avatar"`
}

// ChannelProfile is a user joined with both directions of the subscription
// graph. Only public fields survive the projection.
type ChannelProfile struct {
	ID                        primitive.ObjectID `bson:"_id" json:"id"`
	FullName                  string             `bson:"fullname" json:"fullname"`
	Username                  string             `bson:"username" json:"username"`
	Email                     string             `bson:"email" json:"email"`
	Avatar                    string             `bson:"avatar" json:"avatar"`
	CoverImage                string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	SubscribersCount          int64              `bson:"subscribersCount" json:"subscribersCount"`
	ChannelsSubscribedToCount int64              `bson:"channelsSubscribedToCount" json:"channelsSubscribedToCount"`
	IsSubscribed              bool               `bson:"isSubscribed" json:"isSubscribed"`
	CreatedAt                 time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt                 time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AuthTokens is the access/refresh pair returned by login and refresh.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
