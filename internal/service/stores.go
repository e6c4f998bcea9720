// Package service implements the board, task, comment and account operations
// on top of injected storage collaborators. All permission decisions are
// delegated to the policy package; all storage access goes through the store
// interfaces below so the Mongo repos stay swappable.
package service

import (
	"context"

	"github.com/Takoua852/Kanmind-backend/internal/models"
)

type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, user *models.User) error
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

type BoardStore interface {
	GetByID(ctx context.Context, id string) (*models.Board, error)
	ListVisibleTo(ctx context.Context, userID string, superuser bool) ([]models.Board, error)
	Insert(ctx context.Context, board *models.Board) error
	Update(ctx context.Context, board *models.Board) error
	Delete(ctx context.Context, id string) error
}

type TaskStore interface {
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByBoard(ctx context.Context, boardID string) ([]models.Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]models.Task, error)
	ListByReviewer(ctx context.Context, userID string) ([]models.Task, error)
	Insert(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	DeleteByBoard(ctx context.Context, boardID string) error
	CountByBoard(ctx context.Context, boardID string) (int64, error)
	CountByBoardAndStatus(ctx context.Context, boardID, status string) (int64, error)
	CountByBoardAndPriority(ctx context.Context, boardID, priority string) (int64, error)
}

type CommentStore interface {
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByTask(ctx context.Context, taskID string) ([]models.Comment, error)
	Insert(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id string) error
	DeleteByTask(ctx context.Context, taskID string) error
	CountByTask(ctx context.Context, taskID string) (int64, error)
}
