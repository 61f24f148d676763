package slotRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voicebook/models"
	"voicebook/utils"
)

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo returns a Repository backed by the "slots" collection.
func NewMongoSlotRepo(db *mongo.Database) Repository {
	return &mongoSlotRepo{coll: db.Collection("slots")}
}

func (r *mongoSlotRepo) Seed(ctx context.Context, slots []models.Slot) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	created := 0
	for _, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		if slot.CreatedAt.IsZero() {
			slot.CreatedAt = time.Now().UTC()
		}

		// Upsert keyed on (date, time) keeps seeding idempotent without
		// touching slots that already exist.
		filter := bson.M{"slot_date": slot.Date, "slot_time": slot.Time}
		update := bson.M{"$setOnInsert": slot}
		res, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			return created, err
		}
		if res.UpsertedCount > 0 {
			created++
		}
	}
	return created, nil
}

func (r *mongoSlotRepo) Find(ctx context.Context, date, timeStr string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	err := r.coll.FindOne(ctx, bson.M{"slot_date": date, "slot_time": timeStr}).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *mongoSlotRepo) ListAvailable(ctx context.Context, fromDate string, now time.Time) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"is_available": true,
		"slot_date":    bson.M{"$gte": fromDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "slot_date", Value: 1}, {Key: "slot_time", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}

	// Slots on fromDate whose time has already passed are filtered here;
	// the stored time is a plain "HH:MM" string the query cannot compare
	// against a clock.
	nowTime := now.Format(utils.TimeLayout)
	out := slots[:0]
	for _, s := range slots {
		if s.Date == fromDate && s.Time <= nowTime && fromDate == now.Format(utils.DateLayout) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *mongoSlotRepo) Reserve(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Single conditional write: the filter requires is_available=true, so a
	// racing reservation leaves nothing to match and the loser fails cleanly.
	filter := bson.M{"id": slotID, "is_available": true}
	update := bson.M{"$set": bson.M{"is_available": false}}

	res := r.coll.FindOneAndUpdate(ctx, filter, update)
	if errors.Is(res.Err(), mongo.ErrNoDocuments) {
		// Distinguish "already held" from "no such slot".
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": slotID})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrUnavailable
	}
	return res.Err()
}

func (r *mongoSlotRepo) Release(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": slotID},
		bson.M{"$set": bson.M{"is_available": true}},
	)
	return err
}
