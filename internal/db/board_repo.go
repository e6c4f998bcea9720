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

type BoardRepo struct {
	coll   *mongo.Collection
	logger *log.Logger
}

func NewBoardRepo(database *mongo.Database, logger *log.Logger) *BoardRepo {
	return &BoardRepo{coll: database.Collection("boards"), logger: logger}
}

func (r *BoardRepo) GetByID(ctx context.Context, id string) (*models.Board, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NotFound("board %q not found", id)
	}

	var board models.Board
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&board)
	if err == mongo.ErrNoDocuments {
		return nil, errs.NotFound("board %q not found", id)
	} else if err != nil {
		return nil, err
	}
	return &board, nil
}

// ListVisibleTo returns the boards the user owns or is a member of.
// Superusers see every board; the filter mirrors policy.CanAccessBoard.
func (r *BoardRepo) ListVisibleTo(ctx context.Context, userID string, superuser bool) ([]models.Board, error) {
	filter := bson.M{}
	if !superuser {
		filter = bson.M{"$or": []bson.M{
			{"owner_id": userID},
			{"members": userID},
		}}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	boards := []models.Board{}
	if err := cursor.All(ctx, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *BoardRepo) Insert(ctx context.Context, board *models.Board) error {
	if board.ID.IsZero() {
		board.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, board)
	return err
}

func (r *BoardRepo) Update(ctx context.Context, board *models.Board) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": board.ID}, board)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errs.NotFound("board %q not found", board.ID.Hex())
	}
	return nil
}

func (r *BoardRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.NotFound("board %q not found", id)
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errs.NotFound("board %q not found", id)
	}
	return nil
}
