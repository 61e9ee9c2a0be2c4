package video

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	videosCollection   = "videos"
	commentsCollection = "comments"
)

// Video is a stored upload. Only Views changes after creation.
type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	UserID      uint64             `bson:"userId"`
	StorageID   string             `bson:"storageId"`
	ThumbnailID *string            `bson:"thumbnailId,omitempty"`
	Views       int64              `bson:"views"`
	// unix millis; absent on rows written before it was tracked
	CreatedAt *int64 `bson:"createdAt,omitempty"`
}

// Comment has a collection and an index but no operations yet.
type Comment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	VideoID primitive.ObjectID `bson:"videoId"`
	UserID  uint64             `bson:"userId"`
	Text    string             `bson:"text"`
}

// VideoView is a Video enriched for display.
type VideoView struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	UserID       uint64  `json:"userId"`
	StorageID    string  `json:"storageId"`
	ThumbnailID  *string `json:"thumbnailId,omitempty"`
	Views        int64   `json:"views"`
	CreatedAt    *int64  `json:"createdAt,omitempty"`
	Username     string  `json:"username"`
	URL          *string `json:"url"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}

type SortBy string

const (
	SortRecent SortBy = "recent"
	SortViews  SortBy = "views"
)

func (s SortBy) Valid() bool {
	return s == SortRecent || s == SortViews
}

type CreateVideoInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StorageID   string  `json:"storageId"`
	ThumbnailID *string `json:"thumbnailId,omitempty"`
}
