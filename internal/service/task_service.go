package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Takoua852/Kanmind-backend/internal/errs"
	"github.com/Takoua852/Kanmind-backend/internal/events"
	"github.com/Takoua852/Kanmind-backend/internal/models"
	"github.com/Takoua852/Kanmind-backend/internal/policy"
)

type TaskService struct {
	boards   BoardStore
	tasks    TaskStore
	comments CommentStore
	users    UserStore
	events   events.Publisher
	logger   *log.Logger
}

func NewTaskService(boards BoardStore, tasks TaskStore, comments CommentStore, users UserStore, publisher events.Publisher, logger *log.Logger) *TaskService {
	return &TaskService{boards: boards, tasks: tasks, comments: comments, users: users, events: publisher, logger: logger}
}

// Create adds a task to a board. The board must exist before any permission
// check runs, so a missing board reads as NotFound rather than a denial.
// Assignee and reviewer must be members of the board.
func (s *TaskService) Create(ctx context.Context, actor *models.User, req CreateTaskRequest) (*TaskView, error) {
	board, err := s.boards.GetByID(ctx, req.BoardID)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessBoard(actor, board) {
		return nil, errs.PermissionDenied("user is not a member or owner of the board")
	}

	verr := errs.Validation("invalid task")
	if strings.TrimSpace(req.Title) == "" {
		verr.AddField("title", "title is required")
	}

	status := req.Status
	if status == "" {
		status = models.StatusToDo
	}
	if !models.ValidStatus(status) {
		verr.AddField("status", "invalid status "+status)
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		verr.AddField("priority", "invalid priority "+priority)
	}

	if req.AssigneeID != "" {
		s.checkMemberRef(ctx, board, req.AssigneeID, "assignee_id", verr)
	}
	if req.ReviewerID != "" {
		s.checkMemberRef(ctx, board, req.ReviewerID, "reviewer_id", verr)
	}
	if verr.HasFields() {
		return nil, verr
	}

	task := models.Task{
		BoardID:     board.ID.Hex(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		OwnerID:     actor.ID.Hex(),
		AssigneeID:  req.AssigneeID,
		ReviewerID:  req.ReviewerID,
		DueDate:     req.DueDate,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.tasks.Insert(ctx, &task); err != nil {
		return nil, err
	}
	s.events.Publish(events.SubjectTasks, events.TaskCreated, task)

	return s.view(ctx, &task)
}

// Get returns a single task; visibility follows the task's board.
func (s *TaskService) Get(ctx context.Context, actor *models.User, taskID string) (*TaskView, error) {
	task, _, err := s.authorizedTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, task)
}

// Update applies a partial patch. Assignee and reviewer are tri-state:
// omitted keeps the current value, explicit null clears it, and an id is
// re-validated against the board membership before assignment.
func (s *TaskService) Update(ctx context.Context, actor *models.User, taskID string, req UpdateTaskRequest) (*TaskView, error) {
	task, board, err := s.authorizedTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	verr := errs.Validation("invalid task update")
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			verr.AddField("title", "title must not be empty")
		} else {
			task.Title = *req.Title
		}
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			verr.AddField("status", "invalid status "+*req.Status)
		} else {
			task.Status = *req.Status
		}
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			verr.AddField("priority", "invalid priority "+*req.Priority)
		} else {
			task.Priority = *req.Priority
		}
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Assignee.Set {
		if req.Assignee.Value == "" {
			task.AssigneeID = ""
		} else if s.checkMemberRef(ctx, board, req.Assignee.Value, "assignee_id", verr) {
			task.AssigneeID = req.Assignee.Value
		}
	}
	if req.Reviewer.Set {
		if req.Reviewer.Value == "" {
			task.ReviewerID = ""
		} else if s.checkMemberRef(ctx, board, req.Reviewer.Value, "reviewer_id", verr) {
			task.ReviewerID = req.Reviewer.Value
		}
	}
	if verr.HasFields() {
		return nil, verr
	}

	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	s.events.Publish(events.SubjectTasks, events.TaskUpdated, task)

	return s.view(ctx, task)
}

// Delete removes the task and its comments. Allowed for the task creator,
// the board owner, and superusers.
func (s *TaskService) Delete(ctx context.Context, actor *models.User, taskID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	board, err := s.boards.GetByID(ctx, task.BoardID)
	if err != nil {
		return err
	}
	if !policy.CanDeleteTask(actor, task, board) {
		return errs.PermissionDenied("only the task creator, the board owner or a superuser may delete the task")
	}

	if err := s.comments.DeleteByTask(ctx, task.ID.Hex()); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, task.ID.Hex()); err != nil {
		return err
	}
	s.events.Publish(events.SubjectTasks, events.TaskDeleted, task)
	return nil
}

// ListAssignedTo returns every task assigned to the actor, regardless of the
// actor's current board memberships.
func (s *TaskService) ListAssignedTo(ctx context.Context, actor *models.User) ([]TaskView, error) {
	tasks, err := s.tasks.ListByAssignee(ctx, actor.ID.Hex())
	if err != nil {
		return nil, err
	}
	return taskViews(ctx, s.users, s.comments, tasks)
}

// ListReviewingFor returns every task the actor reviews.
func (s *TaskService) ListReviewingFor(ctx context.Context, actor *models.User) ([]TaskView, error) {
	tasks, err := s.tasks.ListByReviewer(ctx, actor.ID.Hex())
	if err != nil {
		return nil, err
	}
	return taskViews(ctx, s.users, s.comments, tasks)
}

// authorizedTask loads a task and its board and applies the access policy.
// A missing task or board is NotFound, never PermissionDenied.
func (s *TaskService) authorizedTask(ctx context.Context, actor *models.User, taskID string) (*models.Task, *models.Board, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	board, err := s.boards.GetByID(ctx, task.BoardID)
	if err != nil {
		return nil, nil, err
	}
	if !policy.CanAccessTask(actor, board) {
		return nil, nil, errs.PermissionDenied("user is not a member or owner of the board")
	}
	return task, board, nil
}

// checkMemberRef records a field violation unless userID resolves to an
// existing user who is a member of the board. Reports whether the reference
// is usable.
func (s *TaskService) checkMemberRef(ctx context.Context, board *models.Board, userID, field string, verr *errs.Error) bool {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			verr.AddField(field, "user "+userID+" does not exist")
			return false
		}
		s.logger.Printf("Error resolving user %s: %v", userID, err)
		verr.AddField(field, "user "+userID+" could not be resolved")
		return false
	}
	if !board.HasMember(userID) {
		verr.AddField(field, "user "+userID+" is not a member of the board")
		return false
	}
	return true
}

func (s *TaskService) view(ctx context.Context, task *models.Task) (*TaskView, error) {
	views, err := taskViews(ctx, s.users, s.comments, []models.Task{*task})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// taskViews assembles the response form of tasks: nested assignee/reviewer
// info and a fresh comment count per task.
func taskViews(ctx context.Context, users UserStore, comments CommentStore, tasks []models.Task) ([]TaskView, error) {
	refs := make([]string, 0, len(tasks)*2)
	for i := range tasks {
		refs = append(refs, tasks[i].AssigneeID, tasks[i].ReviewerID)
	}
	index, err := userIndex(ctx, users, refs)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		task := &tasks[i]
		count, err := comments.CountByTask(ctx, task.ID.Hex())
		if err != nil {
			return nil, err
		}
		view := TaskView{
			ID:            task.ID.Hex(),
			Board:         task.BoardID,
			Title:         task.Title,
			Description:   task.Description,
			Status:        task.Status,
			Priority:      task.Priority,
			DueDate:       task.DueDate,
			CommentsCount: count,
		}
		if u, ok := index[task.AssigneeID]; ok {
			view.Assignee = userInfo(u)
		}
		if u, ok := index[task.ReviewerID]; ok {
			view.Reviewer = userInfo(u)
		}
		views = append(views, view)
	}
	return views, nil
}
