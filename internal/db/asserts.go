package db

import "github.com/Takoua852/Kanmind-backend/internal/service"

var (
	_ service.UserStore    = (*UserRepo)(nil)
	_ service.BoardStore   = (*BoardRepo)(nil)
	_ service.TaskStore    = (*TaskRepo)(nil)
	_ service.CommentStore = (*CommentRepo)(nil)
)
