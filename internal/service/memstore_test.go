package service

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Takoua852/Kanmind-backend/internal/errs"
	"github.com/Takoua852/Kanmind-backend/internal/models"
)

// memStore implements all four store interfaces in memory so the services
// can be exercised without a database.
type memStore struct {
	users    map[string]models.User
	boards   map[string]models.Board
	tasks    map[string]models.Task
	comments map[string]models.Comment
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]models.User{},
		boards:   map[string]models.Board{},
		tasks:    map[string]models.Task{},
		comments: map[string]models.Comment{},
	}
}

func (m *memStore) addUser(fullname, email string, superuser bool) *models.User {
	u := models.NewUser(fullname, email, "x")
	u.ID = primitive.NewObjectID()
	u.IsSuperuser = superuser
	m.users[u.ID.Hex()] = u
	return &u
}

// UserStore

func (m *memStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errs.NotFound("user %q not found", id)
	}
	return &u, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, errs.NotFound("no user with email %q", email)
}

func (m *memStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if errs.IsKind(err, errs.KindNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *memStore) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID.Hex()] = *user
	return nil
}

func (m *memStore) GetByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	users := []models.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// boardStore wraps memStore because BoardStore and UserStore both declare
// GetByID/Insert/Delete with different entity types.
type boardStore struct{ m *memStore }

func (s boardStore) GetByID(ctx context.Context, id string) (*models.Board, error) {
	b, ok := s.m.boards[id]
	if !ok {
		return nil, errs.NotFound("board %q not found", id)
	}
	return &b, nil
}

func (s boardStore) ListVisibleTo(ctx context.Context, userID string, superuser bool) ([]models.Board, error) {
	boards := []models.Board{}
	for _, b := range s.m.boards {
		if superuser || b.OwnerID == userID || b.HasMember(userID) {
			boards = append(boards, b)
		}
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].ID.Hex() < boards[j].ID.Hex() })
	return boards, nil
}

func (s boardStore) Insert(ctx context.Context, board *models.Board) error {
	if board.ID.IsZero() {
		board.ID = primitive.NewObjectID()
	}
	s.m.boards[board.ID.Hex()] = *board
	return nil
}

func (s boardStore) Update(ctx context.Context, board *models.Board) error {
	if _, ok := s.m.boards[board.ID.Hex()]; !ok {
		return errs.NotFound("board %q not found", board.ID.Hex())
	}
	s.m.boards[board.ID.Hex()] = *board
	return nil
}

func (s boardStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.m.boards[id]; !ok {
		return errs.NotFound("board %q not found", id)
	}
	delete(s.m.boards, id)
	return nil
}

type taskStore struct{ m *memStore }

func (s taskStore) GetByID(ctx context.Context, id string) (*models.Task, error) {
	t, ok := s.m.tasks[id]
	if !ok {
		return nil, errs.NotFound("task %q not found", id)
	}
	return &t, nil
}

func (s taskStore) list(match func(models.Task) bool) []models.Task {
	tasks := []models.Task{}
	for _, t := range s.m.tasks {
		if match(t) {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID.Hex() < tasks[j].ID.Hex() })
	return tasks
}

func (s taskStore) ListByBoard(ctx context.Context, boardID string) ([]models.Task, error) {
	return s.list(func(t models.Task) bool { return t.BoardID == boardID }), nil
}

func (s taskStore) ListByAssignee(ctx context.Context, userID string) ([]models.Task, error) {
	return s.list(func(t models.Task) bool { return t.AssigneeID == userID }), nil
}

func (s taskStore) ListByReviewer(ctx context.Context, userID string) ([]models.Task, error) {
	return s.list(func(t models.Task) bool { return t.ReviewerID == userID }), nil
}

func (s taskStore) Insert(ctx context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	s.m.tasks[task.ID.Hex()] = *task
	return nil
}

func (s taskStore) Update(ctx context.Context, task *models.Task) error {
	if _, ok := s.m.tasks[task.ID.Hex()]; !ok {
		return errs.NotFound("task %q not found", task.ID.Hex())
	}
	s.m.tasks[task.ID.Hex()] = *task
	return nil
}

func (s taskStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.m.tasks[id]; !ok {
		return errs.NotFound("task %q not found", id)
	}
	delete(s.m.tasks, id)
	return nil
}

func (s taskStore) DeleteByBoard(ctx context.Context, boardID string) error {
	for id, t := range s.m.tasks {
		if t.BoardID == boardID {
			delete(s.m.tasks, id)
		}
	}
	return nil
}

func (s taskStore) CountByBoard(ctx context.Context, boardID string) (int64, error) {
	return int64(len(s.list(func(t models.Task) bool { return t.BoardID == boardID }))), nil
}

func (s taskStore) CountByBoardAndStatus(ctx context.Context, boardID, status string) (int64, error) {
	return int64(len(s.list(func(t models.Task) bool { return t.BoardID == boardID && t.Status == status }))), nil
}

func (s taskStore) CountByBoardAndPriority(ctx context.Context, boardID, priority string) (int64, error) {
	return int64(len(s.list(func(t models.Task) bool { return t.BoardID == boardID && t.Priority == priority }))), nil
}

type commentStore struct{ m *memStore }

func (s commentStore) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	c, ok := s.m.comments[id]
	if !ok {
		return nil, errs.NotFound("comment %q not found", id)
	}
	return &c, nil
}

func (s commentStore) ListByTask(ctx context.Context, taskID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	for _, c := range s.m.comments {
		if c.TaskID == taskID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.Before(comments[j].CreatedAt) })
	return comments, nil
}

func (s commentStore) Insert(ctx context.Context, comment *models.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	s.m.comments[comment.ID.Hex()] = *comment
	return nil
}

func (s commentStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.m.comments[id]; !ok {
		return errs.NotFound("comment %q not found", id)
	}
	delete(s.m.comments, id)
	return nil
}

func (s commentStore) DeleteByTask(ctx context.Context, taskID string) error {
	for id, c := range s.m.comments {
		if c.TaskID == taskID {
			delete(s.m.comments, id)
		}
	}
	return nil
}

func (s commentStore) CountByTask(ctx context.Context, taskID string) (int64, error) {
	comments, _ := s.ListByTask(ctx, taskID)
	return int64(len(comments)), nil
}

var (
	_ UserStore    = (*memStore)(nil)
	_ BoardStore   = boardStore{}
	_ TaskStore    = taskStore{}
	_ CommentStore = commentStore{}
)
