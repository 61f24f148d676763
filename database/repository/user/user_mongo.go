package userRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"voicebook/models"
)

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo returns a Repository backed by the "users" collection.
func NewMongoUserRepo(db *mongo.Database) Repository {
	return &mongoUserRepo{coll: db.Collection("users")}
}

func (r *mongoUserRepo) FindOrCreate(ctx context.Context, contactNumber string) (*models.User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"contact_number": contactNumber}).Decode(&user)
	if err == nil {
		return &user, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}

	now := time.Now().UTC()
	user = models.User{ContactNumber: contactNumber, CreatedAt: now, UpdatedAt: now}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return nil, false, err
	}
	return &user, false, nil
}

func (r *mongoUserRepo) UpdateName(ctx context.Context, contactNumber, name string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"contact_number": contactNumber},
		bson.M{"$set": bson.M{"name": name, "updated_at": time.Now().UTC()}},
	)
	return err
}
