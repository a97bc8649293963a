package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post statuses. File-store posts stay drafts; MongoDB posts are created
// directly in the posted state.
const (
	StatusDraft  = "draft"
	StatusPosted = "posted"
)

// Post is a generated post persisted in MongoDB.
type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusinessType  string             `bson:"businessType" json:"businessType"`
	Offer         string             `bson:"offer" json:"offer"`
	GeneratedPost string             `bson:"generatedPost" json:"generatedPost"`
	ImageURL      *string            `bson:"imageUrl" json:"imageUrl"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	PostedAt      *time.Time         `bson:"postedAt" json:"postedAt"`
}

// FilePost is a generated post saved in the flat-file collection.
// The id is derived from the wall clock at save time.
type FilePost struct {
	ID            string    `json:"id"`
	BusinessType  string    `json:"businessType"`
	Offer         string    `json:"offer"`
	GeneratedPost string    `json:"generatedPost"`
	ImageURL      *string   `json:"imageUrl"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
