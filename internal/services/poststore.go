package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gmbdash/gmb-backend/internal/models"
)

// MaxRecentPosts caps reads from MongoDB; writes are not capped.
const MaxRecentPosts = 100

// PostStore is the MongoDB post collection. Write safety comes from the
// server's atomic single-document insert.
type PostStore struct {
	collection *mongo.Collection
}

func NewPostStore(db *mongo.Database) *PostStore {
	return &PostStore{collection: db.Collection("posts")}
}

// Create inserts a posted record and returns it with the assigned id.
func (s *PostStore) Create(ctx context.Context, businessType, offer, generatedPost string, imageURL *string) (models.Post, error) {
	now := time.Now()
	post := models.Post{
		ID:            primitive.NewObjectID(),
		BusinessType:  businessType,
		Offer:         offer,
		GeneratedPost: generatedPost,
		ImageURL:      imageURL,
		Status:        models.StatusPosted,
		CreatedAt:     now,
		PostedAt:      &now,
	}

	if _, err := s.collection.InsertOne(ctx, post); err != nil {
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

// ListRecent returns the most recently created posts, newest first, capped
// at MaxRecentPosts.
func (s *PostStore) ListRecent(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.M{"createdAt": -1})
	findOptions.SetLimit(MaxRecentPosts)

	cursor, err := s.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}
