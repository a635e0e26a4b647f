package main

import (
	"context"
	"log"
	"time"

	"quiz-integrity-service/internal/auth"
	"quiz-integrity-service/internal/config"
	"quiz-integrity-service/internal/db"
	"quiz-integrity-service/internal/event"
	"quiz-integrity-service/internal/handlers"
	"quiz-integrity-service/internal/ratelimit"
	"quiz-integrity-service/internal/repository"
	"quiz-integrity-service/internal/service"
	"quiz-integrity-service/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()

	db.InitMongo(cfg.MongoDB.URI)
	defer db.Close()
	database := db.Client.Database(cfg.MongoDB.Database)

	indexCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
	defer cancel()
	if err := db.EnsureIndexes(indexCtx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQ.URI != "" && cfg.RabbitMQ.Exchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, integrity events will not be published")
	}

	// Redis rate limiter for the violation sink
	var limiter *ratelimit.Limiter
	if cfg.Redis.URI != "" {
		var err error
		limiter, err = ratelimit.NewLimiter(cfg.Redis.URI, 30, time.Minute)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer limiter.Close()
	} else {
		log.Println("Redis not configured, violation reports will not be rate limited")
	}

	// MinIO blob store for group assignments
	blobs, err := storage.NewMinioStore(cfg.MinIO)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Repositories
	sessionRepo := repository.NewSessionRepository(database)
	questionRepo := repository.NewQuestionRepository(database)
	submissionRepo := repository.NewSubmissionRepository(database)
	violationRepo := repository.NewViolationRepository(database)
	groupRepo := repository.NewGroupRepository(database)
	groupSubmissionRepo := repository.NewGroupSubmissionRepository(database)

	// Services
	sessionService := service.NewSessionService(sessionRepo, submissionRepo, cfg.Quiz)
	violationService := service.NewViolationService(violationRepo, sessionRepo)
	submissionService := service.NewSubmissionService(submissionRepo, questionRepo, sessionRepo, cfg.Quiz)
	groupService := service.NewGroupService(groupRepo, groupSubmissionRepo, blobs, cfg.Quiz)
	gradingService := service.NewGradingService(groupSubmissionRepo, groupRepo)

	// Handlers
	sessionHandler := handlers.NewSessionHandler(sessionService)
	violationHandler := handlers.NewViolationHandler(violationService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, cfg.Quiz)
	groupHandler := handlers.NewGroupHandler(groupService)
	gradingHandler := handlers.NewGradingHandler(gradingService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":   cfg.Server.ServiceName,
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	api := r.Group("/api")
	api.Use(auth.Middleware(cfg.JWT.Secret))

	quiz := api.Group("/quiz")
	{
		quiz.POST("/start", func(c *gin.Context) {
			sessionHandler.StartQuiz(c)
			if publisher != nil {
				publisher.Publish("quiz.session.started", gin.H{
					"user_id":   auth.UserID(c),
					"timestamp": time.Now(),
				})
			}
		})

		reportViolation := func(c *gin.Context) {
			violationHandler.Report(c)
			if publisher != nil {
				publisher.Publish("quiz.violation.reported", gin.H{
					"user_id":   auth.UserID(c),
					"timestamp": time.Now(),
				})
			}
		}
		if limiter != nil {
			quiz.POST("/violations", limiter.Middleware(auth.UserID), reportViolation)
		} else {
			quiz.POST("/violations", reportViolation)
		}

		quiz.GET("/violations", auth.RequireAdmin(), violationHandler.List)
		quiz.GET("/check-completion", sessionHandler.CheckCompletion)
	}

	submissions := api.Group("/submissions")
	{
		submissions.POST("/", func(c *gin.Context) {
			submissionHandler.Submit(c)
			if publisher != nil {
				publisher.Publish("quiz.submitted", gin.H{
					"user_id":   auth.UserID(c),
					"status":    c.Writer.Status(),
					"timestamp": time.Now(),
				})
			}
		})
		submissions.GET("/", submissionHandler.List)

		submissions.POST("/group", func(c *gin.Context) {
			groupHandler.Submit(c)
			if publisher != nil {
				publisher.Publish("group.assignment.submitted", gin.H{
					"user_id":   auth.UserID(c),
					"status":    c.Writer.Status(),
					"timestamp": time.Now(),
				})
			}
		})
		submissions.GET("/group", groupHandler.Status)
	}

	admin := api.Group("/admin")
	admin.Use(auth.RequireAdmin())
	{
		admin.GET("/submissions/groups", gradingHandler.List)
		admin.GET("/submissions/:id/grade", gradingHandler.Get)
		admin.PUT("/submissions/:id/grade", func(c *gin.Context) {
			gradingHandler.Grade(c)
			if publisher != nil {
				publisher.Publish("group.assignment.graded", gin.H{
					"submission_id": c.Param("id"),
					"graded_by":     auth.UserID(c),
					"timestamp":     time.Now(),
				})
			}
		})
	}

	r.Run(cfg.Server.Host + ":" + cfg.Server.Port)
}
