package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Takoua852/Kanmind-backend/internal/errs"
	"github.com/Takoua852/Kanmind-backend/internal/models"
)

func TestCreateTaskDefaultsAndOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.store.addUser("Owner", "owner@example.com", false)
	summary, err := f.boards.Create(ctx, owner, CreateBoardRequest{Title: "A"})
	if err != nil {
		t.Fatalf("Create board: %v", err)
	}

	view, err := f.tasks.Create(ctx, owner, CreateTaskRequest{BoardID: summary.ID, Title: "T"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Status != models.StatusToDo {
		t.Errorf("status = %q, want default %q", view.Status, models.StatusToDo)
	}
	if view.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want default %q", view.Priority, models.PriorityMedium)
	}
	if f.store.tasks[view.ID].OwnerID != owner.ID.Hex() {
		t.Error("task owner should be the creating user")
	}
}

func TestCreateTaskBoardMissingIsNotFound(t *testing.T) {
	f := newFixture()
	user := f.store.addUser("U", "u@example.com", false)

	_, err := f.tasks.Create(context.Background(), user, CreateTaskRequest{BoardID: "ffffffffffffffffffffffff", Title: "T"})
	if !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("got %v, want not found (before any permission check)", err)
	}
}

func TestCreateTaskRequiresBoardAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.store.addUser("Owner", "owner@example.com", false)
	outsider := f.store.addUser("Outsider", "outsider@example.com", false)
	summary, _ := f.boards.Create(ctx, owner, CreateBoardRequest{Title: "A"})

	_, err := f.tasks.Create(ctx, outsider, CreateTaskRequest{BoardID: summary.ID, Title: "T"})
	if !errs.IsKind(err, errs.KindPermissionDenied) {
		t.Fatalf("got %v, want permission denied", err)
	}
}

func TestCreateTaskAssigneeMustBeMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.store.addUser("Owner", "owner@example.com", false)
	member := f.store.addUser("Member", "member@example.com", false)
	outsider := f.store.addUser("Outsider", "outsider@example.com", false)
	summary, _ := f.boards.Create(ctx, owner, CreateBoardRequest{Title: "A", Members: []string{member.ID.Hex()}})

	_, err := f.tasks.Create(ctx, owner, CreateTaskRequest{BoardID: summary.ID, Title: "T", AssigneeID: outsider.ID.Hex()})
	if !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("non-member assignee: got %v, want validation error", err)
	}

	view, err := f.tasks.Create(ctx, owner, CreateTaskRequest{BoardID: summary.ID, Title: "T", AssigneeID: member.ID.Hex()})
	if err != nil {
		t.Fatalf("member assignee: %v", err)
	}
	if view.Assignee == nil || view.Assignee.ID != member.ID.Hex() {
		t.Errorf("assignee = %+v, want %s", view.Assignee, member.ID.Hex())
	}
}

func TestCreateTaskAggregatesFieldErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.store.addUser("Owner", "owner@example.com", false)
	summary, _ := f.boards.Create(ctx, owner, CreateBoardRequest{Title: "A"})

	_, err := f.tasks.Create(ctx, owner, CreateTaskRequest{
		BoardID:    summary.ID,
		Status:     "bogus",
		Priority:   "urgent",
		AssigneeID: "ffffffffffffffffffffffff",
	})
	var verr *errs.Error
	if !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
	verr = err.(*errs.Error)
	for _, field := range []string{"title", "status", "priority", "assignee_id"} {
		if len(verr.Fields[field]) == 0 {
			t.Errorf("expected a violation for field %q, got %v", field, verr.Fields)
		}
	}
}

// decodePatch builds an UpdateTaskRequest the way the handler does, so the
// omitted / null / value distinction of the JSON body is exercised.
func decodePatch(t *testing.T, body string) UpdateTaskRequest {
	t.Helper()
	var req UpdateTaskRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode patch: %v", err)
	}
	return req
}

func TestUpdateTaskAssigneeTriState(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.store.addUser("Owner", "owner@example.com", false)
	member := f.store.addUser("Member", "member@example.com", false)
	summary, _ := f.boards.Create(ctx, owner, CreateBoardRequest{Title: "A", Members: []string{member.ID.Hex()}})
	view, err := f.tasks.Create(ctx, owner, CreateTaskRequest{BoardID: summary.ID, Title: "T", AssigneeID: member.ID.Hex()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Omitted assignee_id leaves the assignment untouched.
	if _, err := f.tasks.Update(ctx, owner, view.ID, decodePatch(t, `{"title":"T2"}`)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := f.store.tasks[view.ID].AssigneeID; got != member.ID.Hex() {
		t.Errorf("after omitted field: assignee = %q, want unchanged %q", got, member.ID.Hex())
	}

	// Explicit null clears it.
	if _, err := f.tasks.Update(ctx, owner, view.ID, decodePatch(t, `{"assignee_id":null}`)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := f.store.tasks[view.ID].AssigneeID; got != "" {
		t.Errorf("after explicit null: assignee = %q, want empty", got)
	}

	// A value is re-validated against membership before assignment.
	patch := decodePatch(t, `{"assignee_id":"`+member.ID.Hex()+`"}`)
	if _, err := f.tasks.Update(ctx, owner, view.ID, patch); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := f.store.tasks[view.ID].AssigneeID; got != member.ID.Hex() {
		t.Errorf("after value: assignee = %q, want %q", got, member.ID.Hex())
	}

	outsider := f.store.addUser("Outsider", "outsider@example.com", false)
	patch = decodePatch(t, `{"assignee_id":"`+outsider.ID.Hex()+`"}`)
	if _, err := f.tasks.Update(ctx, owner, view.ID, patch); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("non-member value: got %v, want validation error", err)
	}

	patch = decodePatch(t, `{"assignee_id":"ffffffffffffffffffffffff"}`)
	if _, err := f.tasks.Update(ctx, owner, view.ID, patch); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("unknown user value: got %v, want validation error", err)
	}
}

func TestDeleteTaskPermissions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	boardOwner := f.store.addUser("Owner", "owner@example.com", false)
	creator := f.store.addUser("Creator", "creator@example.com", false)
	member := f.store.addUser("Member", "member@example.com", false)
	superuser := f.store.addUser("Root", "root@example.com", true)
	summary, _ := f.boards.Create(ctx, boardOwner, CreateBoardRequest{Title: "A", Members: []string{creator.ID.Hex(), member.ID.Hex()}})

	mkTask := func() string {
		t.Helper()
		view, err := f.tasks.Create(ctx, creator, CreateTaskRequest{BoardID: summary.ID, Title: "T"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if _, err := f.comments.Create(ctx, member, view.ID, "note"); err != nil {
			t.Fatalf("Create comment: %v", err)
		}
		return view.ID
	}

	id := mkTask()
	if err := f.tasks.Delete(ctx, member, id); !errs.IsKind(err, errs.KindPermissionDenied) {
		t.Fatalf("member delete: got %v, want permission denied", err)
	}
	for _, actor := range []*models.User{creator, boardOwner, superuser} {
		id := mkTask()
		if err := f.tasks.Delete(ctx, actor, id); err != nil {
			t.Fatalf("delete by %s: %v", actor.Fullname, err)
		}
		if _, ok := f.store.tasks[id]; ok {
			t.Errorf("task still present after delete by %s", actor.Fullname)
		}
	}
	if len(f.store.comments) != 1 {
		t.Errorf("comments not cascaded, %d left (one belongs to the undeleted task)", len(f.store.comments))
	}
}

func TestListAssignedToIgnoresMembership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.store.addUser("Owner", "owner@example.com", false)
	member := f.store.addUser("Member", "member@example.com", false)
	summary, _ := f.boards.Create(ctx, owner, CreateBoardRequest{Title: "A", Members: []string{member.ID.Hex()}})
	view, err := f.tasks.Create(ctx, owner, CreateTaskRequest{BoardID: summary.ID, Title: "T", AssigneeID: member.ID.Hex(), ReviewerID: owner.ID.Hex()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Remove the assignee from the board; the assignment listing must not care.
	members := []string{owner.ID.Hex()}
	if _, err := f.boards.Update(ctx, owner, summary.ID, UpdateBoardRequest{Members: &members}); err != nil {
		t.Fatalf("Update board: %v", err)
	}

	assigned, err := f.tasks.ListAssignedTo(ctx, member)
	if err != nil {
		t.Fatalf("ListAssignedTo: %v", err)
	}
	if len(assigned) != 1 || assigned[0].ID != view.ID {
		t.Errorf("assigned = %+v, want exactly task %s", assigned, view.ID)
	}

	reviewing, err := f.tasks.ListReviewingFor(ctx, owner)
	if err != nil {
		t.Fatalf("ListReviewingFor: %v", err)
	}
	if len(reviewing) != 1 || reviewing[0].ID != view.ID {
		t.Errorf("reviewing = %+v, want exactly task %s", reviewing, view.ID)
	}
	if none, _ := f.tasks.ListAssignedTo(ctx, owner); len(none) != 0 {
		t.Errorf("owner has no assignments, got %+v", none)
	}
}

func TestGetTaskRequiresBoardAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.store.addUser("Owner", "owner@example.com", false)
	outsider := f.store.addUser("Outsider", "outsider@example.com", false)
	summary, _ := f.boards.Create(ctx, owner, CreateBoardRequest{Title: "A"})
	view, _ := f.tasks.Create(ctx, owner, CreateTaskRequest{BoardID: summary.ID, Title: "T"})

	if _, err := f.tasks.Get(ctx, outsider, view.ID); !errs.IsKind(err, errs.KindPermissionDenied) {
		t.Fatalf("got %v, want permission denied", err)
	}
	if _, err := f.tasks.Get(ctx, owner, "ffffffffffffffffffffffff"); !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("got %v, want not found", err)
	}
}
