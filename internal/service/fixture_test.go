package service

import (
	"io"
	"log"
	"time"

	"github.com/Takoua852/Kanmind-backend/internal/events"
	"github.com/Takoua852/Kanmind-backend/internal/security"
)

type fixture struct {
	store    *memStore
	users    *UserService
	boards   *BoardService
	tasks    *TaskService
	comments *CommentService
}

func newFixture() *fixture {
	m := newMemStore()
	logger := log.New(io.Discard, "", 0)
	publisher := events.Discard{}

	boardService := NewBoardService(boardStore{m}, taskStore{m}, commentStore{m}, m, publisher, logger)
	taskService := NewTaskService(boardStore{m}, taskStore{m}, commentStore{m}, m, publisher, logger)

	return &fixture{
		store:    m,
		users:    NewUserService(m, security.NewTokens("test-secret", time.Hour), logger),
		boards:   boardService,
		tasks:    taskService,
		comments: NewCommentService(boardStore{m}, taskStore{m}, commentStore{m}, m, logger),
	}
}
