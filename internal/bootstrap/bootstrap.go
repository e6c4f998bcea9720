// Package bootstrap seeds demo data for local development. It only runs
// when ENABLE_BOOTSTRAP=true and only into an empty users collection.
package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Takoua852/Kanmind-backend/internal/models"
	"github.com/Takoua852/Kanmind-backend/internal/security"
	"github.com/Takoua852/Kanmind-backend/internal/service"
)

// Seed inserts an admin account, two demo users and a demo board with a
// couple of tasks.
func Seed(ctx context.Context, users service.UserStore, boards service.BoardStore, tasks service.TaskStore, logger *log.Logger) {
	if os.Getenv("ENABLE_BOOTSTRAP") != "true" {
		return
	}

	if exists, err := users.EmailExists(ctx, "admin@kanmind.local"); err != nil || exists {
		if err != nil {
			logger.Printf("Error checking bootstrap state: %v", err)
		}
		return
	}

	hash, err := security.HashPassword("admin1234")
	if err != nil {
		logger.Printf("Error hashing bootstrap password: %v", err)
		return
	}

	admin := models.NewUser("Admin", "admin@kanmind.local", hash)
	admin.IsStaff = true
	admin.IsSuperuser = true
	alice := models.NewUser("Alice Example", "alice@kanmind.local", hash)
	bob := models.NewUser("Bob Example", "bob@kanmind.local", hash)

	for _, u := range []*models.User{&admin, &alice, &bob} {
		if err := users.Insert(ctx, u); err != nil {
			logger.Printf("Error inserting bootstrap user %s: %v", u.Email, err)
			return
		}
	}

	board := models.Board{
		Title:   "Demo Board",
		OwnerID: alice.ID.Hex(),
		Members: []string{alice.ID.Hex(), bob.ID.Hex()},
	}
	if err := boards.Insert(ctx, &board); err != nil {
		logger.Printf("Error inserting bootstrap board: %v", err)
		return
	}

	seedTasks := []models.Task{
		{
			BoardID:     board.ID.Hex(),
			Title:       "Set up the project",
			Description: "Clone the repo and get the stack running locally.",
			Status:      models.StatusToDo,
			Priority:    models.PriorityHigh,
			OwnerID:     alice.ID.Hex(),
			AssigneeID:  bob.ID.Hex(),
			UpdatedAt:   time.Now().UTC(),
		},
		{
			BoardID:   board.ID.Hex(),
			Title:     "Invite the team",
			Status:    models.StatusInProgress,
			Priority:  models.PriorityMedium,
			OwnerID:   alice.ID.Hex(),
			UpdatedAt: time.Now().UTC(),
		},
	}
	for i := range seedTasks {
		if err := tasks.Insert(ctx, &seedTasks[i]); err != nil {
			logger.Printf("Error inserting bootstrap task: %v", err)
			return
		}
	}

	logger.Println("Inserted bootstrap data")
}
