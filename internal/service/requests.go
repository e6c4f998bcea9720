package service

import "encoding/json"

// OptionalID is a tri-state reference field for patch requests: omitted from
// the JSON body (Set false, keep current value), explicit null (Set true,
// Value empty, clear the field), or an id (Set true, re-validate and assign).
type OptionalID struct {
	Set   bool
	Value string
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type RegistrationRequest struct {
	Fullname         string `json:"fullname"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	RepeatedPassword string `json:"repeated_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateBoardRequest struct {
	Title   string   `json:"title"`
	Members []string `json:"members"`
}

// UpdateBoardRequest replaces a field only when it is present in the body.
// Members are replaced wholesale, never merged.
type UpdateBoardRequest struct {
	Title   *string   `json:"title"`
	Members *[]string `json:"members"`
}

type CreateTaskRequest struct {
	BoardID     string `json:"board"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssigneeID  string `json:"assignee_id"`
	ReviewerID  string `json:"reviewer_id"`
	DueDate     string `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Assignee    OptionalID `json:"assignee_id"`
	Reviewer    OptionalID `json:"reviewer_id"`
	DueDate     *string    `json:"due_date"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}
