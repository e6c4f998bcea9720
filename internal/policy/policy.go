// Package policy holds the authorization predicates. They are pure functions
// over already-loaded entities; loading and NotFound handling happen in the
// service layer before any predicate runs.
package policy

import "github.com/Takoua852/Kanmind-backend/internal/models"

// CanAccessBoard grants the board owner, any board member, and superusers.
func CanAccessBoard(user *models.User, board *models.Board) bool {
	uid := user.ID.Hex()
	if board.OwnerID == uid {
		return true
	}
	if board.HasMember(uid) {
		return true
	}
	return user.IsSuperuser
}

// CanDeleteBoard is owner-only. Superusers deliberately get no override here.
func CanDeleteBoard(user *models.User, board *models.Board) bool {
	return board.OwnerID == user.ID.Hex()
}

// CanAccessTask delegates to board access; tasks have no visibility of
// their own.
func CanAccessTask(user *models.User, board *models.Board) bool {
	return CanAccessBoard(user, board)
}

// CanDeleteTask grants the task creator, the owner of the task's board, and
// superusers. Non-delete task operations only need CanAccessTask.
func CanDeleteTask(user *models.User, task *models.Task, board *models.Board) bool {
	uid := user.ID.Hex()
	if task.OwnerID == uid {
		return true
	}
	if board.OwnerID == uid {
		return true
	}
	return user.IsSuperuser
}

// CanDeleteComment is author-only. Neither the board owner nor superusers
// may remove someone else's comment.
func CanDeleteComment(user *models.User, comment *models.Comment) bool {
	return comment.AuthorID != "" && comment.AuthorID == user.ID.Hex()
}
