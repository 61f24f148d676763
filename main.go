package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voicebook/config"
	"voicebook/cron"
	"voicebook/database"
	appointmentRepo "voicebook/database/repository/appointment"
	recordsRepo "voicebook/database/repository/records"
	slotRepo "voicebook/database/repository/slot"
	userRepoPkg "voicebook/database/repository/user"
	"voicebook/handlers"
	"voicebook/routes"
	"voicebook/services/booking"
	"voicebook/services/call"
	"voicebook/services/cost"
	"voicebook/services/events"
	"voicebook/services/session"
	"voicebook/services/tasks"
	"voicebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitEventClient()

	db := database.DB()
	if err := slotRepo.EnsureIndexes(db); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure slot indexes: %v", err)
	}
	if err := appointmentRepo.EnsureIndexes(db); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	slots := slotRepo.NewMongoSlotRepo(db)
	appointments := appointmentRepo.NewMongoAppointmentRepo(db)
	users := userRepoPkg.NewMongoUserRepo(db)
	records := recordsRepo.NewMongoRecordRepo(db)

	// reminder queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()
	reminders := tasks.NewReminderScheduler(asynqClient, config.AppConfig.ReminderLeadMinutes)

	// services.
	publisher := events.NewRedisPublisher(utils.GetEventClient())
	coordinator := &booking.DefaultCoordinator{
		Slots:           slots,
		Appointments:    appointments,
		Reminders:       reminders,
		DurationMinutes: config.AppConfig.AppointmentDuration,
		Logger:          logger,
	}
	registry := session.NewRegistry()
	dispatcher := &call.Dispatcher{
		Sessions:      registry,
		Booking:       coordinator,
		Users:         users,
		Records:       records,
		Publisher:     publisher,
		ChannelPrefix: config.AppConfig.EventChannelPrefix,
		Pricing:       cost.TableFromConfig(),
		Logger:        logger,
	}

	cron.InitReminderWorker(publisher)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions:   registry,
		Dispatcher: dispatcher,
		SlotRepo:   slots,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, registry)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
