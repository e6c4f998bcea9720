package service

import (
	"context"
	"log"
	"strings"

	"github.com/Takoua852/Kanmind-backend/internal/errs"
	"github.com/Takoua852/Kanmind-backend/internal/events"
	"github.com/Takoua852/Kanmind-backend/internal/models"
	"github.com/Takoua852/Kanmind-backend/internal/policy"
)

type BoardService struct {
	boards   BoardStore
	tasks    TaskStore
	comments CommentStore
	users    UserStore
	events   events.Publisher
	logger   *log.Logger
}

func NewBoardService(boards BoardStore, tasks TaskStore, comments CommentStore, users UserStore, publisher events.Publisher, logger *log.Logger) *BoardService {
	return &BoardService{boards: boards, tasks: tasks, comments: comments, users: users, events: publisher, logger: logger}
}

// ListVisibleTo returns summaries for every board the actor may access:
// boards they own, boards they are a member of, or all boards for superusers.
func (s *BoardService) ListVisibleTo(ctx context.Context, actor *models.User) ([]BoardSummary, error) {
	boards, err := s.boards.ListVisibleTo(ctx, actor.ID.Hex(), actor.IsSuperuser)
	if err != nil {
		return nil, err
	}

	summaries := make([]BoardSummary, 0, len(boards))
	for i := range boards {
		summary, err := s.summarize(ctx, &boards[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

// Create stores a new board owned by the actor. The actor is always added to
// the member set; duplicate member ids collapse.
func (s *BoardService) Create(ctx context.Context, actor *models.User, req CreateBoardRequest) (*BoardSummary, error) {
	verr := errs.Validation("invalid board")
	if strings.TrimSpace(req.Title) == "" {
		verr.AddField("title", "title is required")
	}
	members, err := s.resolveMembers(ctx, req.Members, verr)
	if err != nil {
		return nil, err
	}
	if verr.HasFields() {
		return nil, verr
	}

	board := models.Board{
		Title:   req.Title,
		OwnerID: actor.ID.Hex(),
		Members: members,
	}
	board.AddMember(actor.ID.Hex())

	if err := s.boards.Insert(ctx, &board); err != nil {
		return nil, err
	}
	s.events.Publish(events.SubjectBoards, events.BoardCreated, board)

	return s.summarize(ctx, &board)
}

// GetDetail returns the board with resolved members and its nested tasks.
func (s *BoardService) GetDetail(ctx context.Context, actor *models.User, boardID string) (*BoardDetail, error) {
	board, err := s.authorizedBoard(ctx, actor, boardID)
	if err != nil {
		return nil, err
	}

	memberIndex, err := userIndex(ctx, s.users, board.Members)
	if err != nil {
		return nil, err
	}
	detail := BoardDetail{
		ID:      board.ID.Hex(),
		Title:   board.Title,
		OwnerID: board.OwnerID,
		Members: []UserInfo{},
		Tasks:   []TaskView{},
	}
	for _, id := range board.Members {
		if u, ok := memberIndex[id]; ok {
			detail.Members = append(detail.Members, *userInfo(u))
		}
	}

	tasks, err := s.tasks.ListByBoard(ctx, board.ID.Hex())
	if err != nil {
		return nil, err
	}
	views, err := taskViews(ctx, s.users, s.comments, tasks)
	if err != nil {
		return nil, err
	}
	detail.Tasks = views

	return &detail, nil
}

// Update rewrites title and membership. Any user with board access may do
// this, not just the owner; that permissive rule is intentional. Members are
// replaced wholesale when provided.
func (s *BoardService) Update(ctx context.Context, actor *models.User, boardID string, req UpdateBoardRequest) (*BoardSummary, error) {
	board, err := s.authorizedBoard(ctx, actor, boardID)
	if err != nil {
		return nil, err
	}

	verr := errs.Validation("invalid board update")
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			verr.AddField("title", "title must not be empty")
		} else {
			board.Title = *req.Title
		}
	}
	if req.Members != nil {
		members, err := s.resolveMembers(ctx, *req.Members, verr)
		if err != nil {
			return nil, err
		}
		board.Members = members
	}
	if verr.HasFields() {
		return nil, verr
	}

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, err
	}
	s.events.Publish(events.SubjectBoards, events.BoardUpdated, board)

	return s.summarize(ctx, board)
}

// Delete removes the board and cascades over its tasks and their comments.
// Owner only; superusers get no override.
func (s *BoardService) Delete(ctx context.Context, actor *models.User, boardID string) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if !policy.CanDeleteBoard(actor, board) {
		return errs.PermissionDenied("only the board owner may delete the board")
	}

	tasks, err := s.tasks.ListByBoard(ctx, board.ID.Hex())
	if err != nil {
		return err
	}
	for i := range tasks {
		if err := s.comments.DeleteByTask(ctx, tasks[i].ID.Hex()); err != nil {
			return err
		}
	}
	if err := s.tasks.DeleteByBoard(ctx, board.ID.Hex()); err != nil {
		return err
	}
	if err := s.boards.Delete(ctx, board.ID.Hex()); err != nil {
		return err
	}
	s.events.Publish(events.SubjectBoards, events.BoardDeleted, board)
	return nil
}

// authorizedBoard loads the board and applies the access policy. A missing
// board is NotFound, never PermissionDenied.
func (s *BoardService) authorizedBoard(ctx context.Context, actor *models.User, boardID string) (*models.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessBoard(actor, board) {
		return nil, errs.PermissionDenied("user is not a member or owner of the board")
	}
	return board, nil
}

// summarize computes the derived counters; nothing is cached.
func (s *BoardService) summarize(ctx context.Context, board *models.Board) (*BoardSummary, error) {
	boardID := board.ID.Hex()
	total, err := s.tasks.CountByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	toDo, err := s.tasks.CountByBoardAndStatus(ctx, boardID, models.StatusToDo)
	if err != nil {
		return nil, err
	}
	highPrio, err := s.tasks.CountByBoardAndPriority(ctx, boardID, models.PriorityHigh)
	if err != nil {
		return nil, err
	}
	return &BoardSummary{
		ID:                 boardID,
		Title:              board.Title,
		OwnerID:            board.OwnerID,
		MemberCount:        len(board.Members),
		TicketCount:        total,
		TasksToDoCount:     toDo,
		TasksHighPrioCount: highPrio,
	}, nil
}

// resolveMembers checks each id against the user store, collecting failures
// on verr, and returns the deduplicated set.
func (s *BoardService) resolveMembers(ctx context.Context, ids []string, verr *errs.Error) ([]string, error) {
	members := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.users.GetByID(ctx, id); err != nil {
			if errs.IsKind(err, errs.KindNotFound) {
				verr.AddField("members", "user "+id+" does not exist")
				continue
			}
			return nil, err
		}
		members = append(members, id)
	}
	return members, nil
}
