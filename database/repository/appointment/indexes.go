package appointmentRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the appointment indexes. The partial unique index on
// scheduled (date, time) is belt-and-braces only: the coordinator enforces
// uniqueness through the slot reservation and its own re-check, and must not
// depend on this constraint existing.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := db.Collection("appointments")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "contact_number", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "appointment_date", Value: 1}, {Key: "appointment_time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": "scheduled"}),
		},
	})
	return err
}
