package video

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VideoRepository interface {
	EnsureIndexes(ctx context.Context) error
	Insert(ctx context.Context, v *Video) error
	// FindByID returns nil when no video has this id
	FindByID(ctx context.Context, id primitive.ObjectID) (*Video, error)
	List(ctx context.Context, sortBy SortBy) ([]Video, error)
	// IncrementViews reports whether a video matched
	IncrementViews(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type mongoVideoRepository struct {
	videos   *mongo.Collection
	comments *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) VideoRepository {
	return &mongoVideoRepository{
		videos:   db.Collection(videosCollection),
		comments: db.Collection(commentsCollection),
	}
}

func (r *mongoVideoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.videos.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetName("by_user")},
		{Keys: bson.D{{Key: "views", Value: 1}}, Options: options.Index().SetName("by_views")},
	})
	if err != nil {
		return fmt.Errorf("create video indexes: %w", err)
	}

	_, err = r.comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "videoId", Value: 1}}, Options: options.Index().SetName("by_video"),
	})
	if err != nil {
		return fmt.Errorf("create comment indexes: %w", err)
	}
	return nil
}

func (r *mongoVideoRepository) Insert(ctx context.Context, v *Video) error {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	if _, err := r.videos.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	return nil
}

func (r *mongoVideoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Video, error) {
	var v Video
	err := r.videos.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	return &v, nil
}

func (r *mongoVideoRepository) List(ctx context.Context, sortBy SortBy) ([]Video, error) {
	// ObjectIDs grow with insertion time, so _id doubles as the recency key
	sort := bson.D{{Key: "_id", Value: -1}}
	if sortBy == SortViews {
		sort = bson.D{{Key: "views", Value: -1}, {Key: "_id", Value: -1}}
	}

	cursor, err := r.videos.Find(ctx, bson.D{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer cursor.Close(ctx)

	videos := []Video{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, fmt.Errorf("decode videos: %w", err)
	}
	return videos, nil
}

func (r *mongoVideoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.videos.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": int64(1)}})
	if err != nil {
		return false, fmt.Errorf("increment views: %w", err)
	}
	return res.MatchedCount > 0, nil
}
