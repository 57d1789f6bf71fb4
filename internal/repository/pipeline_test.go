package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func findStage(t *testing.T, p mongo.Pipeline, key string) bson.D {
	t.Helper()
	for _, stage := range p {
		if len(stage) == 1 && stage[0].Key == key {
			if d, ok := stage[0].Value.(bson.D); ok {
				return d
			}
			t.Fatalf("stage %s is not a bson.D: %T", key, stage[0].Value)
		}
	}
	t.Fatalf("pipeline has no %s stage", key)
	return nil
}

func docValue(d bson.D, key string) (interface{}, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func TestChannelProfilePipelineNormalizesUsername(t *testing.T) {
	p := channelProfilePipeline("  ChaiAurCode ", nil)
	match := findStage(t, p, "$match")
	v, ok := docValue(match, "username")
	if !ok {
		t.Fatal("match stage has no username predicate")
	}
	if v != "chaiaurcode" {
		t.Fatalf("username = %q, want %q", v, "chaiaurcode")
	}
}

func TestChannelProfilePipelineAnonymousViewer(t *testing.T) {
	p := channelProfilePipeline("alice", nil)
	addFields := findStage(t, p, "$addFields")
	v, ok := docValue(addFields, "isSubscribed")
	if !ok {
		t.Fatal("addFields has no isSubscribed")
	}
	if v != false {
		t.Fatalf("isSubscribed for anonymous viewer = %v, want literal false", v)
	}
}

func TestChannelProfilePipelineAuthenticatedViewer(t *testing.T) {
	viewer := primitive.NewObjectID()
	p := channelProfilePipeline("alice", &viewer)
	addFields := findStage(t, p, "$addFields")
	v, _ := docValue(addFields, "isSubscribed")
	cond, ok := v.(bson.D)
	if !ok {
		t.Fatalf("isSubscribed = %T, want $cond document", v)
	}
	if _, ok := docValue(cond, "$cond"); !ok {
		t.Fatal("isSubscribed is not built from $cond")
	}
}

func TestChannelProfilePipelineProjectsOnlyPublicFields(t *testing.T) {
	p := channelProfilePipeline("alice", nil)
	project := findStage(t, p, "$project")
	for _, forbidden := range []string{"password", "refreshToken"} {
		if _, ok := docValue(project, forbidden); ok {
			t.Errorf("projection exposes %s", forbidden)
		}
	}
	for _, required := range []string{"fullname", "username", "email", "avatar", "coverImage",
		"subscribersCount", "channelsSubscribedToCount", "isSubscribed", "createdAt", "updatedAt"} {
		if _, ok := docValue(project, required); !ok {
			t.Errorf("projection is missing %s", required)
		}
	}
}

func TestListVideosPipelineAlwaysRestrictsToPublished(t *testing.T) {
	p := listVideosPipeline(ListVideosParams{Page: 1, Limit: 10})
	match := findStage(t, p, "$match")
	v, ok := docValue(match, "isPublished")
	if !ok || v != true {
		t.Fatalf("match stage does not pin isPublished=true: %v", match)
	}
	if len(match) != 1 {
		t.Fatalf("unfiltered listing should match on isPublished only, got %v", match)
	}
}

func TestListVideosPipelineQueryPredicate(t *testing.T) {
	p := listVideosPipeline(ListVideosParams{Query: "ocean", Page: 1, Limit: 10})
	match := findStage(t, p, "$match")
	v, ok := docValue(match, "$or")
	if !ok {
		t.Fatal("query did not produce an $or predicate")
	}
	or, ok := v.(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("$or = %v, want two pattern tests", v)
	}
	title, _ := docValue(or[0].(bson.D), "title")
	re, ok := title.(primitive.Regex)
	if !ok {
		t.Fatalf("title predicate = %T, want regex", title)
	}
	if re.Pattern != "ocean" || re.Options != "i" {
		t.Fatalf("regex = %+v, want case-insensitive 'ocean'", re)
	}
	if _, ok := docValue(or[1].(bson.D), "description"); !ok {
		t.Fatal("second pattern test should target description")
	}
}

func TestListVideosPipelineEscapesRegexMeta(t *testing.T) {
	p := listVideosPipeline(ListVideosParams{Query: "c++ (intro)", Page: 1, Limit: 10})
	match := findStage(t, p, "$match")
	v, _ := docValue(match, "$or")
	title, _ := docValue(v.(bson.A)[0].(bson.D), "title")
	re := title.(primitive.Regex)
	if re.Pattern != `c\+\+ \(intro\)` {
		t.Fatalf("pattern = %q, user text must be quoted", re.Pattern)
	}
}

func TestListVideosPipelineOwnerFilter(t *testing.T) {
	owner := primitive.NewObjectID()
	p := listVideosPipeline(ListVideosParams{OwnerID: &owner, Page: 1, Limit: 10})
	match := findStage(t, p, "$match")
	v, ok := docValue(match, "owner")
	if !ok || v != owner {
		t.Fatalf("owner predicate = %v, want %v", v, owner)
	}
}

func TestListVideosPipelineSort(t *testing.T) {
	p := listVideosPipeline(ListVideosParams{Page: 1, Limit: 10})
	sort := findStage(t, p, "$sort")
	if v, _ := docValue(sort, "createdAt"); v != -1 {
		t.Fatalf("default sort = %v, want createdAt descending", sort)
	}

	p = listVideosPipeline(ListVideosParams{SortBy: "views", SortAsc: true, Page: 1, Limit: 10})
	sort = findStage(t, p, "$sort")
	if v, _ := docValue(sort, "views"); v != 1 {
		t.Fatalf("sort = %v, want views ascending", sort)
	}
}

func TestListVideosPipelinePaginationWindow(t *testing.T) {
	p := listVideosPipeline(ListVideosParams{Page: 3, Limit: 10})
	facet := findStage(t, p, "$facet")
	dataV, ok := docValue(facet, "data")
	if !ok {
		t.Fatal("facet has no data branch")
	}
	data := dataV.(bson.A)
	skip, _ := docValue(data[0].(bson.D), "$skip")
	if skip != int64(20) {
		t.Fatalf("$skip = %v, want 20", skip)
	}
	limit, _ := docValue(data[1].(bson.D), "$limit")
	if limit != int64(10) {
		t.Fatalf("$limit = %v, want 10", limit)
	}

	metaV, ok := docValue(facet, "metadata")
	if !ok {
		t.Fatal("facet has no metadata branch")
	}
	count, _ := docValue(metaV.(bson.A)[0].(bson.D), "$count")
	if count != "total" {
		t.Fatalf("$count = %v, want total", count)
	}
}

func TestListVideosPipelineOwnerJoinKeepsOrphans(t *testing.T) {
	p := listVideosPipeline(ListVideosParams{Page: 1, Limit: 10})
	for _, stage := range p {
		if stage[0].Key == "$unwind" {
			t.Fatal("listing must not $unwind the owner join; orphaned videos would be dropped")
		}
	}
	addFields := findStage(t, p, "$addFields")
	owner, ok := docValue(addFields, "owner")
	if !ok {
		t.Fatal("owner join is never flattened")
	}
	if _, ok := docValue(owner.(bson.D), "$first"); !ok {
		t.Fatal("owner should be flattened with $first")
	}
}

func TestSubscriptionListPipelineJoinField(t *testing.T) {
	channel := primitive.NewObjectID()
	p := subscriptionListPipeline(bson.D{{Key: "channel", Value: channel}}, "subscriber", 2, 5)
	lookup := findStage(t, p, "$lookup")
	if v, _ := docValue(lookup, "localField"); v != "subscriber" {
		t.Fatalf("localField = %v, want subscriber", v)
	}
	facet := findStage(t, p, "$facet")
	data, _ := docValue(facet, "data")
	skip, _ := docValue(data.(bson.A)[0].(bson.D), "$skip")
	if skip != int64(5) {
		t.Fatalf("$skip = %v, want 5", skip)
	}
}
