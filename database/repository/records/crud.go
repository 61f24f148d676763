package recordsRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voicebook/models"
)

// ErrNotFound indicates no call record matches the query.
var ErrNotFound = errors.New("call record not found")

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a Repository backed by the "call_records"
// collection.
func NewMongoRecordRepo(db *mongo.Database) Repository {
	return &mongoRecordRepo{coll: db.Collection("call_records")}
}

// Create inserts a new call record and returns its ID.
func (r *mongoRecordRepo) Create(ctx context.Context, record models.CallRecord) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now().UTC()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

func (r *mongoRecordRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.CallRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record models.CallRecord
	err := r.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *mongoRecordRepo) GetByContact(ctx context.Context, contactNumber string) ([]models.CallRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"contact_number": contactNumber}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.CallRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
