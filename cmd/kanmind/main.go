package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/rs/cors"

	"github.com/Takoua852/Kanmind-backend/internal/bootstrap"
	"github.com/Takoua852/Kanmind-backend/internal/config"
	"github.com/Takoua852/Kanmind-backend/internal/db"
	"github.com/Takoua852/Kanmind-backend/internal/events"
	"github.com/Takoua852/Kanmind-backend/internal/handlers"
	"github.com/Takoua852/Kanmind-backend/internal/security"
	"github.com/Takoua852/Kanmind-backend/internal/service"
)

func main() {
	godotenv.Load()

	logger := log.New(os.Stdout, "[kanmind-api] ", log.LstdFlags)
	storeLogger := log.New(os.Stdout, "[kanmind-store] ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Error loading configuration: %v", err)
	}

	client, err := db.ConnectToMongo(context.Background(), cfg.Mongo.URI)
	if err != nil {
		logger.Fatalf("Error connecting to MongoDB: %v", err)
	}
	defer client.Disconnect(context.TODO())

	database := client.Database(cfg.Mongo.Database)
	if err := db.EnsureIndexes(context.Background(), database); err != nil {
		logger.Fatalf("Error creating indexes: %v", err)
	}

	userRepo := db.NewUserRepo(database, storeLogger)
	boardRepo := db.NewBoardRepo(database, storeLogger)
	taskRepo := db.NewTaskRepo(database, storeLogger)
	commentRepo := db.NewCommentRepo(database, storeLogger)

	var publisher events.Publisher = events.Discard{}
	if cfg.Nats.URL != "" {
		nc, err := nats.Connect(cfg.Nats.URL)
		if err != nil {
			logger.Fatalf("Error connecting to NATS: %v", err)
		}
		defer nc.Close()
		publisher = events.NewNatsPublisher(nc, logger)
	}

	bootstrap.Seed(context.Background(), userRepo, boardRepo, taskRepo, logger)

	tokens := security.NewTokens(cfg.Auth.TokenSecret, cfg.TokenTTL())
	userService := service.NewUserService(userRepo, tokens, logger)
	boardService := service.NewBoardService(boardRepo, taskRepo, commentRepo, userRepo, publisher, logger)
	taskService := service.NewTaskService(boardRepo, taskRepo, commentRepo, userRepo, publisher, logger)
	commentService := service.NewCommentService(boardRepo, taskRepo, commentRepo, userRepo, logger)

	authHandler := handlers.NewAuthHandler(logger, userService)
	boardsHandler := handlers.NewBoardsHandler(logger, boardService, userService)
	tasksHandler := handlers.NewTasksHandler(logger, taskService, userService)
	commentsHandler := handlers.NewCommentsHandler(logger, commentService, userService)

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/registration/", authHandler.Register).Methods("POST")
	api.HandleFunc("/login/", authHandler.Login).Methods("POST")

	authed := api.NewRoute().Subrouter()
	authed.Use(tokens.AuthMiddleware)
	authed.HandleFunc("/email-check/", authHandler.EmailCheck).Methods("GET")
	authed.HandleFunc("/boards/", boardsHandler.ListBoards).Methods("GET")
	authed.HandleFunc("/boards/", boardsHandler.CreateBoard).Methods("POST")
	authed.HandleFunc("/boards/{id}/", boardsHandler.GetBoard).Methods("GET")
	authed.HandleFunc("/boards/{id}/", boardsHandler.UpdateBoard).Methods("PUT", "PATCH")
	authed.HandleFunc("/boards/{id}/", boardsHandler.DeleteBoard).Methods("DELETE")
	authed.HandleFunc("/tasks/assigned-to-me/", tasksHandler.AssignedToMe).Methods("GET")
	authed.HandleFunc("/tasks/reviewing/", tasksHandler.Reviewing).Methods("GET")
	authed.HandleFunc("/tasks/", tasksHandler.CreateTask).Methods("POST")
	authed.HandleFunc("/tasks/{id}/", tasksHandler.GetTask).Methods("GET")
	authed.HandleFunc("/tasks/{id}/", tasksHandler.UpdateTask).Methods("PATCH")
	authed.HandleFunc("/tasks/{id}/", tasksHandler.DeleteTask).Methods("DELETE")
	authed.HandleFunc("/tasks/{taskId}/comments/", commentsHandler.ListComments).Methods("GET")
	authed.HandleFunc("/tasks/{taskId}/comments/", commentsHandler.CreateComment).Methods("POST")
	authed.HandleFunc("/tasks/{taskId}/comments/{id}/", commentsHandler.DeleteComment).Methods("DELETE")

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Cors.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      gorillahandlers.LoggingHandler(os.Stdout, c.Handler(router)),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Printf("Starting server on port %s...", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Could not listen on port %s: %v", cfg.Server.Port, err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	logger.Printf("Received signal %s, shutting down...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("Could not gracefully shutdown the server: %v", err)
	}
	logger.Println("Server stopped gracefully")
}
