package db

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Takoua852/Kanmind-backend/internal/errs"
	"github.com/Takoua852/Kanmind-backend/internal/models"
)

type CommentRepo struct {
	coll   *mongo.Collection
	logger *log.Logger
}

func NewCommentRepo(database *mongo.Database, logger *log.Logger) *CommentRepo {
	return &CommentRepo{coll: database.Collection("comments"), logger: logger}
}

func (r *CommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NotFound("comment %q not found", id)
	}

	var comment models.Comment
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&comment)
	if err == mongo.ErrNoDocuments {
		return nil, errs.NotFound("comment %q not found", id)
	} else if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTask returns the task's comments in creation order.
func (r *CommentRepo) ListByTask(ctx context.Context, taskID string) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"task_id": taskID}, opts)
	if err != nil {
		return nil, err
	}
	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepo) Insert(ctx context.Context, comment *models.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, comment)
	return err
}

func (r *CommentRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.NotFound("comment %q not found", id)
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errs.NotFound("comment %q not found", id)
	}
	return nil
}

func (r *CommentRepo) DeleteByTask(ctx context.Context, taskID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"task_id": taskID})
	return err
}

func (r *CommentRepo) CountByTask(ctx context.Context, taskID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"task_id": taskID})
}
