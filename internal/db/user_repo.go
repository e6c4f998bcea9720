package db

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Takoua852/Kanmind-backend/internal/errs"
	"github.com/Takoua852/Kanmind-backend/internal/models"
)

type UserRepo struct {
	coll   *mongo.Collection
	logger *log.Logger
}

func NewUserRepo(database *mongo.Database, logger *log.Logger) *UserRepo {
	return &UserRepo{coll: database.Collection("users"), logger: logger}
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NotFound("user %q not found", id)
	}

	var user models.User
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errs.NotFound("user %q not found", id)
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errs.NotFound("no user with email %q", email)
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepo) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, user)
	return err
}

// GetByIDs resolves a batch of user ids, silently skipping ids that no
// longer resolve. Used when rendering member and assignee details.
func (r *UserRepo) GetByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			r.logger.Printf("skipping malformed user id %q", id)
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []models.User{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
