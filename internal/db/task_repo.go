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

type TaskRepo struct {
	coll   *mongo.Collection
	logger *log.Logger
}

func NewTaskRepo(database *mongo.Database, logger *log.Logger) *TaskRepo {
	return &TaskRepo{coll: database.Collection("tasks"), logger: logger}
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NotFound("task %q not found", id)
	}

	var task models.Task
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, errs.NotFound("task %q not found", id)
	} else if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepo) ListByBoard(ctx context.Context, boardID string) ([]models.Task, error) {
	return r.list(ctx, bson.M{"board_id": boardID})
}

func (r *TaskRepo) ListByAssignee(ctx context.Context, userID string) ([]models.Task, error) {
	return r.list(ctx, bson.M{"assignee_id": userID})
}

func (r *TaskRepo) ListByReviewer(ctx context.Context, userID string) ([]models.Task, error) {
	return r.list(ctx, bson.M{"reviewer_id": userID})
}

func (r *TaskRepo) list(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepo) Insert(ctx context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, task)
	return err
}

func (r *TaskRepo) Update(ctx context.Context, task *models.Task) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errs.NotFound("task %q not found", task.ID.Hex())
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.NotFound("task %q not found", id)
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errs.NotFound("task %q not found", id)
	}
	return nil
}

func (r *TaskRepo) DeleteByBoard(ctx context.Context, boardID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"board_id": boardID})
	return err
}

func (r *TaskRepo) CountByBoard(ctx context.Context, boardID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"board_id": boardID})
}

func (r *TaskRepo) CountByBoardAndStatus(ctx context.Context, boardID, status string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"board_id": boardID, "status": status})
}

func (r *TaskRepo) CountByBoardAndPriority(ctx context.Context, boardID, priority string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"board_id": boardID, "priority": priority})
}
