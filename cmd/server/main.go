package main

import (
	"context"
	"log"
	"os"

	"sportsync/config"
	"sportsync/internal/cache"
	"sportsync/internal/database"
	"sportsync/internal/handler"
	"sportsync/internal/notify"
	"sportsync/internal/payment"
	"sportsync/internal/queue"
	"sportsync/internal/repository"
	"sportsync/internal/service"
	"sportsync/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	hostname, _ := os.Hostname()
	reminderQueue, err := queue.NewRedisStreamReminderQueue(rdb, hostname, nil)
	if err != nil {
		log.Fatalf("Failed to initialize reminder queue: %v", err)
	}

	eventRepo := repository.NewEventRepository(pool)
	participantRepo := repository.NewParticipantRepository(pool)

	rosterGate := cache.NewRosterGateManager(rdb)
	inviteIndex := cache.NewInviteCodeIndex(rdb)
	preferences := cache.NewPreferenceStore(rdb)

	payments := payment.NewHTTPClient(cfg.Payment.BaseURL)
	notifier := notify.NewHTTPClient(cfg.Notifier.BaseURL)

	reminderService := service.NewReminderService(eventRepo, preferences, reminderQueue)
	eventService := service.NewEventService(pool, eventRepo, participantRepo, rosterGate, inviteIndex, reminderService)
	joinService := service.NewJoinService(pool, eventRepo, participantRepo, rosterGate, inviteIndex, payments, reminderService)
	rosterService := service.NewRosterService(pool, eventRepo, participantRepo)

	reminderWorker := worker.NewReminderWorker(notifier, reminderQueue)
	if err := reminderWorker.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start reminder worker: %v", err)
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewJoinHandler(joinService).RegisterRoutes(router)
	handler.NewRosterHandler(rosterService).RegisterRoutes(router)
	handler.NewPreferenceHandler(reminderService).RegisterRoutes(router)

	router.Run(":" + cfg.Server.Port)
}
