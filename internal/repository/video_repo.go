package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streamhive/streamhive-backend/internal/models"
	"github.com/streamhive/streamhive-backend/internal/pagination"
)

// ListVideosParams is a validated listing request. The service layer owns
// defaults and validation; the repository only translates to a pipeline.
type ListVideosParams struct {
	Query   string
	OwnerID *primitive.ObjectID
	SortBy  string
	SortAsc bool
	Page    int64
	Limit   int64
}

type VideoRepository interface {
	Create(ctx context.Context, v *models.Video) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error)
	GetWithOwner(ctx context.Context, id primitive.ObjectID) (*models.VideoSummary, error)
	List(ctx context.Context, p ListVideosParams) (*models.VideoPage, error)
	UpdateDetails(ctx context.Context, id primitive.ObjectID, title, description, thumbnail string) (*models.Video, error)
	SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoVideoRepo struct {
	col *mongo.Collection
}

func NewMongoVideoRepo(db *mongo.Database) VideoRepository {
	col := db.Collection("videos")
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "isPublished", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return &mongoVideoRepo{col: col}
}

func (r *mongoVideoRepo) Create(ctx context.Context, v *models.Video) error {
	v.CreatedAt = time.Now().UTC()
	v.UpdatedAt = v.CreatedAt
	res, err := r.col.InsertOne(ctx, v)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		v.ID = oid
	}
	return nil
}

func (r *mongoVideoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	var v models.Video
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetWithOwner loads a single video joined with its owner's public summary.
func (r *mongoVideoRepo) GetWithOwner(ctx context.Context, id primitive.ObjectID) (*models.VideoSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		lookupOwnerStage(),
		flattenOwnerStage(),
		videoProjectionStage(),
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.VideoSummary
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrVideoNotFound
	}
	return &out[0], nil
}

// List runs the public listing pipeline: match published videos (optionally
// narrowed by text query and owner), join the owner summary, sort, then
// paginate inside a single $facet so the page and the total come from one
// round-trip.
func (r *mongoVideoRepo) List(ctx context.Context, p ListVideosParams) (*models.VideoPage, error) {
	cur, err := r.col.Aggregate(ctx, listVideosPipeline(p))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var facets []struct {
		Metadata []struct {
			Total int64 `bson:"total"`
		} `bson:"metadata"`
		Data []models.VideoSummary `bson:"data"`
	}
	if err := cur.All(ctx, &facets); err != nil {
		return nil, err
	}

	page := &models.VideoPage{Videos: []models.VideoSummary{}}
	var total int64
	if len(facets) > 0 {
		if len(facets[0].Metadata) > 0 {
			total = facets[0].Metadata[0].Total
		}
		if facets[0].Data != nil {
			page.Videos = facets[0].Data
		}
	}
	page.Meta = pagination.NewMeta(total, p.Page, p.Limit)
	return page, nil
}

func (r *mongoVideoRepo) UpdateDetails(ctx context.Context, id primitive.ObjectID, title, description, thumbnail string) (*models.Video, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if title != "" {
		set["title"] = title
	}
	if description != "" {
		set["description"] = description
	}
	if thumbnail != "" {
		set["thumbnail"] = thumbnail
	}
	var v models.Video
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *mongoVideoRepo) SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"isPublished": published,
		"updatedAt":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *mongoVideoRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

func (r *mongoVideoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrVideoNotFound
	}
	return nil
}

// listVideosPipeline builds the listing aggregation. Stage construction is a
// pure function so the predicate composition can be tested directly.
func listVideosPipeline(p ListVideosParams) mongo.Pipeline {
	match := bson.D{{Key: "isPublished", Value: true}}
	if p.Query != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(p.Query), Options: "i"}
		match = append(match, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "description", Value: re}},
		}})
	}
	if p.OwnerID != nil {
		match = append(match, bson.E{Key: "owner", Value: *p.OwnerID})
	}

	dir := -1
	if p.SortAsc {
		dir = 1
	}
	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}

	w := pagination.Window{Skip: (p.Page - 1) * p.Limit}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		lookupOwnerStage(),
		flattenOwnerStage(),
		videoProjectionStage(),
		{{Key: "$sort", Value: bson.D{{Key: sortBy, Value: dir}}}},
		{{Key: "$facet", Value: bson.D{
			{Key: "metadata", Value: bson.A{
				bson.D{{Key: "$count", Value: "total"}},
			}},
			{Key: "data", Value: bson.A{
				bson.D{{Key: "$skip", Value: w.Skip}},
				bson.D{{Key: "$limit", Value: p.Limit}},
			}},
		}}},
	}
}

func lookupOwnerStage() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: "users"},
		{Key: "localField", Value: "owner"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "owner"},
		{Key: "pipeline", Value: bson.A{
			bson.D{{Key: "$project", Value: bson.D{
				{Key: "username", Value: 1},
				{Key: "fullname", Value: 1},
				{Key: "avatar", Value: 1},
			}}},
		}},
	}}}
}

// flattenOwnerStage collapses the joined owner array with $first instead of
// $unwind, so a video whose owner document is gone keeps its row with empty
// owner fields rather than vanishing from the listing.
func flattenOwnerStage() bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: "owner", Value: bson.D{{Key: "$first", Value: "$owner"}}},
	}}}
}

func videoProjectionStage() bson.D {
	return bson.D{{Key: "$project", Value: bson.D{
		{Key: "title", Value: 1},
		{Key: "description", Value: 1},
		{Key: "videoFile", Value: 1},
		{Key: "thumbnail", Value: 1},
		{Key: "duration", Value: 1},
		{Key: "views", Value: 1},
		{Key: "isPublished", Value: 1},
		{Key: "owner", Value: 1},
		{Key: "createdAt", Value: 1},
	}}}
}
