package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streamhive/streamhive-backend/internal/models"
	"github.com/streamhive/streamhive-backend/internal/pagination"
)

type SubscriptionRepository interface {
	// Toggle removes the edge if it exists, creates it otherwise. Returns
	// whether the subscriber follows the channel after the call.
	Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
	ListSubscribers(ctx context.Context, channel primitive.ObjectID, page, limit int64) (*models.SubscriptionPage, error)
	ListSubscribedChannels(ctx context.Context, subscriber primitive.ObjectID, page, limit int64) (*models.SubscriptionPage, error)
}

type mongoSubscriptionRepo struct {
	col *mongo.Collection
}

func NewMongoSubscriptionRepo(db *mongo.Database) SubscriptionRepository {
	col := db.Collection("subscriptions")
	// one edge per subscriber/channel pair; counts stay edge-set cardinality
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "channel", Value: 1}}},
	})
	return &mongoSubscriptionRepo{col: col}
}

func (r *mongoSubscriptionRepo) Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	filter := bson.M{"subscriber": subscriber, "channel": channel}
	err := r.col.FindOneAndDelete(ctx, filter).Err()
	if err == nil {
		return false, nil
	}
	if err != mongo.ErrNoDocuments {
		return false, err
	}
	_, err = r.col.InsertOne(ctx, &models.Subscription{
		Subscriber: subscriber,
		Channel:    channel,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		// a concurrent toggle can race the unique index; treat as subscribed
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *mongoSubscriptionRepo) ListSubscribers(ctx context.Context, channel primitive.ObjectID, page, limit int64) (*models.SubscriptionPage, error) {
	return r.list(ctx, bson.D{{Key: "channel", Value: channel}}, "subscriber", page, limit)
}

func (r *mongoSubscriptionRepo) ListSubscribedChannels(ctx context.Context, subscriber primitive.ObjectID, page, limit int64) (*models.SubscriptionPage, error) {
	return r.list(ctx, bson.D{{Key: "subscriber", Value: subscriber}}, "channel", page, limit)
}

// list joins the far side of each edge with its user summary and paginates
// with the same $facet shape the video listing uses.
func (r *mongoSubscriptionRepo) list(ctx context.Context, match bson.D, joinField string, page, limit int64) (*models.SubscriptionPage, error) {
	cur, err := r.col.Aggregate(ctx, subscriptionListPipeline(match, joinField, page, limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var facets []struct {
		Metadata []struct {
			Total int64 `bson:"total"`
		} `bson:"metadata"`
		Data []models.SubscriptionEntry `bson:"data"`
	}
	if err := cur.All(ctx, &facets); err != nil {
		return nil, err
	}

	out := &models.SubscriptionPage{Entries: []models.SubscriptionEntry{}}
	var total int64
	if len(facets) > 0 {
		if len(facets[0].Metadata) > 0 {
			total = facets[0].Metadata[0].Total
		}
		if facets[0].Data != nil {
			out.Entries = facets[0].Data
		}
	}
	out.Meta = pagination.NewMeta(total, page, limit)
	return out, nil
}

func subscriptionListPipeline(match bson.D, joinField string, page, limit int64) mongo.Pipeline {
	w := pagination.Window{Skip: (page - 1) * limit}
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: joinField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "username", Value: 1},
					{Key: "fullname", Value: 1},
					{Key: "avatar", Value: 1},
				}}},
			}},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "user", Value: bson.D{{Key: "$first", Value: "$user"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "user", Value: 1},
			{Key: "createdAt", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$facet", Value: bson.D{
			{Key: "metadata", Value: bson.A{
				bson.D{{Key: "$count", Value: "total"}},
			}},
			{Key: "data", Value: bson.A{
				bson.D{{Key: "$skip", Value: w.Skip}},
				bson.D{{Key: "$limit", Value: limit}},
			}},
		}}},
	}
}
