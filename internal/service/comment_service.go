package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Takoua852/Kanmind-backend/internal/errs"
	"github.com/Takoua852/Kanmind-backend/internal/models"
	"github.com/Takoua852/Kanmind-backend/internal/policy"
)

type CommentService struct {
	boards   BoardStore
	tasks    TaskStore
	comments CommentStore
	users    UserStore
	logger   *log.Logger
}

func NewCommentService(boards BoardStore, tasks TaskStore, comments CommentStore, users UserStore, logger *log.Logger) *CommentService {
	return &CommentService{boards: boards, tasks: tasks, comments: comments, users: users, logger: logger}
}

// List returns the task's comments in creation order, with author names
// resolved. Requires access to the task's board.
func (s *CommentService) List(ctx context.Context, actor *models.User, taskID string) ([]CommentView, error) {
	task, err := s.authorizedTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByTask(ctx, task.ID.Hex())
	if err != nil {
		return nil, err
	}

	authorIDs := make([]string, 0, len(comments))
	for i := range comments {
		authorIDs = append(authorIDs, comments[i].AuthorID)
	}
	index, err := userIndex(ctx, s.users, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		view := CommentView{
			ID:        c.ID.Hex(),
			CreatedAt: c.CreatedAt,
			Content:   c.Content,
		}
		if u, ok := index[c.AuthorID]; ok {
			view.Author = u.Fullname
		}
		views = append(views, view)
	}
	return views, nil
}

// Create adds a comment authored by the actor with a server-assigned
// timestamp. Requires access to the task's board.
func (s *CommentService) Create(ctx context.Context, actor *models.User, taskID, content string) (*CommentView, error) {
	task, err := s.authorizedTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, errs.Validation("comment content must not be empty").AddField("content", "content is required")
	}

	comment := models.Comment{
		TaskID:    task.ID.Hex(),
		AuthorID:  actor.ID.Hex(),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Insert(ctx, &comment); err != nil {
		return nil, err
	}

	return &CommentView{
		ID:        comment.ID.Hex(),
		CreatedAt: comment.CreatedAt,
		Author:    actor.Fullname,
		Content:   comment.Content,
	}, nil
}

// Delete removes a comment. Author only: neither the board owner nor a
// superuser may delete someone else's comment, and an author keeps the
// right even after leaving the board. The comment must belong to the task
// named in the path.
func (s *CommentService) Delete(ctx context.Context, actor *models.User, taskID, commentID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.TaskID != task.ID.Hex() {
		return errs.NotFound("comment %q not found on task %q", commentID, taskID)
	}
	if !policy.CanDeleteComment(actor, comment) {
		return errs.PermissionDenied("only the comment author may delete the comment")
	}

	// Re-checked right before removal as well, matching the destroy hook.
	if comment.AuthorID != actor.ID.Hex() {
		return errs.PermissionDenied("only the comment author may delete the comment")
	}
	return s.comments.Delete(ctx, comment.ID.Hex())
}

func (s *CommentService) authorizedTask(ctx context.Context, actor *models.User, taskID string) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	board, err := s.boards.GetByID(ctx, task.BoardID)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessTask(actor, board) {
		return nil, errs.PermissionDenied("user is not a member or owner of the board")
	}
	return task, nil
}
