package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streamhive/streamhive-backend/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	UpdateAccount(ctx context.Context, id primitive.ObjectID, fullname, email string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error)
	UpdateCoverImage(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	GetChannelProfile(ctx context.Context, username string, viewer *primitive.ObjectID) (*models.ChannelProfile, error)
}

type mongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) UserRepository {
	col := db.Collection("users")
	// indexes
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return &mongoUserRepo{col: col}
}

func (r *mongoUserRepo) Create(ctx context.Context, u *models.User) error {
	u.Username = strings.ToLower(u.Username)
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": strings.ToLower(username)})
}

func (r *mongoUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": strings.ToLower(username)},
	}}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *mongoUserRepo) UpdateAccount(ctx context.Context, id primitive.ObjectID, fullname, email string) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if fullname != "" {
		set["fullname"] = fullname
	}
	if email != "" {
		set["email"] = email
	}
	return r.findAndSet(ctx, id, set)
}

func (r *mongoUserRepo) UpdateAvatar(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error) {
	return r.findAndSet(ctx, id, bson.M{"avatar": url, "updatedAt": time.Now().UTC()})
}

func (r *mongoUserRepo) UpdateCoverImage(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error) {
	return r.findAndSet(ctx, id, bson.M{"coverImage": url, "updatedAt": time.Now().UTC()})
}

func (r *mongoUserRepo) findAndSet(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	var u models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password":  hash,
		"updatedAt": time.Now().UTC(),
	}})
	return err
}

// SetRefreshToken stores the single active refresh token for the user. An
// empty token clears it (logout).
func (r *mongoUserRepo) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	var update bson.M
	if token == "" {
		update = bson.M{"$unset": bson.M{"refreshToken": ""}}
	} else {
		update = bson.M{"$set": bson.M{"refreshToken": token}}
	}
	_, err := r.col.UpdateByID(ctx, id, update)
	return err
}

// GetChannelProfile resolves a channel page in one aggregation: the user
// document matched by normalized username, joined with subscription edges in
// both directions to derive subscriber counts and the viewer's subscription
// state. Sensitive fields never leave the projection.
func (r *mongoUserRepo) GetChannelProfile(ctx context.Context, username string, viewer *primitive.ObjectID) (*models.ChannelProfile, error) {
	cur, err := r.col.Aggregate(ctx, channelProfilePipeline(username, viewer))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var profiles []models.ChannelProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrUserNotFound
	}
	return &profiles[0], nil
}

// channelProfilePipeline is kept separate so each stage can be exercised
// without a live store.
func channelProfilePipeline(username string, viewer *primitive.ObjectID) mongo.Pipeline {
	// isSubscribed is a literal false for anonymous viewers; for an
	// authenticated viewer it checks membership in the joined subscriber set.
	var isSubscribed interface{} = false
	if viewer != nil {
		isSubscribed = bson.D{{Key: "$cond", Value: bson.D{
			{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{*viewer, "$subscribers.subscriber"}}}},
			{Key: "then", Value: true},
			{Key: "else", Value: false},
		}}}
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "username", Value: strings.ToLower(strings.TrimSpace(username))}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "subscriptions"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel"},
			{Key: "as", Value: "subscribers"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "subscriptions"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "subscriber"},
			{Key: "as", Value: "subscribedTo"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "subscribersCount", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "channelsSubscribedToCount", Value: bson.D{{Key: "$size", Value: "$subscribedTo"}}},
			{Key: "isSubscribed", Value: isSubscribed},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "fullname", Value: 1},
			{Key: "username", Value: 1},
			{Key: "email", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "subscribersCount", Value: 1},
			{Key: "channelsSubscribedToCount", Value: 1},
			{Key: "isSubscribed", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "updatedAt", Value: 1},
		}}},
	}
}
