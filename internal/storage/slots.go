package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const slotsCollection = "upload_slots"

type uploadSlot struct {
	Token     string    `bson:"_id"`
	UserID    uint64    `bson:"userId"`
	CreatedAt time.Time `bson:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// Slots issues one-time upload tokens. Expired slots are removed by a TTL
// index; Consume also rejects them so a lagging TTL monitor cannot revive one.
type Slots struct {
	coll *mongo.Collection
	ttl  time.Duration
	now  func() time.Time
}

func NewSlots(db *mongo.Database, ttl time.Duration) *Slots {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Slots{
		coll: db.Collection(slotsCollection),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *Slots) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetName("slot_ttl").SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("create upload slot index: %w", err)
	}
	return nil
}

// Allocate records a fresh slot for userID and returns its token.
func (s *Slots) Allocate(ctx context.Context, userID uint64) (string, error) {
	now := s.now().UTC()
	slot := uploadSlot{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if _, err := s.coll.InsertOne(ctx, slot); err != nil {
		return "", fmt.Errorf("allocate upload slot: %w", err)
	}
	return slot.Token, nil
}

// Consume atomically removes the slot and returns the user it was issued to.
func (s *Slots) Consume(ctx context.Context, token string) (uint64, error) {
	if token == "" {
		return 0, ErrSlotNotFound
	}

	filter := bson.M{
		"_id":       token,
		"expiresAt": bson.M{"$gt": s.now().UTC()},
	}

	var slot uploadSlot
	err := s.coll.FindOneAndDelete(ctx, filter).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrSlotNotFound
		}
		return 0, fmt.Errorf("consume upload slot: %w", err)
	}
	return slot.UserID, nil
}
