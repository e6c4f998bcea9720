package service

import (
	"context"
	"time"

	"github.com/Takoua852/Kanmind-backend/internal/models"
)

// UserInfo is the trimmed user representation embedded in board and task
// responses.
type UserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

func userInfo(u *models.User) *UserInfo {
	return &UserInfo{ID: u.ID.Hex(), Email: u.Email, Fullname: u.Fullname}
}

// BoardSummary carries the counters computed fresh on every request.
type BoardSummary struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	OwnerID            string `json:"owner_id"`
	MemberCount        int    `json:"member_count"`
	TicketCount        int64  `json:"ticket_count"`
	TasksToDoCount     int64  `json:"tasks_to_do_count"`
	TasksHighPrioCount int64  `json:"tasks_high_prio_count"`
}

type BoardDetail struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	OwnerID string     `json:"owner_id"`
	Members []UserInfo `json:"members"`
	Tasks   []TaskView `json:"tasks"`
}

type TaskView struct {
	ID            string    `json:"id"`
	Board         string    `json:"board"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	Assignee      *UserInfo `json:"assignee"`
	Reviewer      *UserInfo `json:"reviewer"`
	DueDate       string    `json:"due_date,omitempty"`
	CommentsCount int64     `json:"comments_count"`
}

type CommentView struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

// userIndex resolves the referenced users once and serves lookups while a
// view is assembled.
func userIndex(ctx context.Context, users UserStore, ids []string) (map[string]*models.User, error) {
	uniq := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		uniq = append(uniq, id)
	}

	resolved, err := users.GetByIDs(ctx, uniq)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*models.User, len(resolved))
	for i := range resolved {
		index[resolved[i].ID.Hex()] = &resolved[i]
	}
	return index, nil
}
