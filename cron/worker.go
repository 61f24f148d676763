package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"voicebook/config"
	"voicebook/models"
	"voicebook/services/events"
	"voicebook/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in the background.
// When a reminder fires it is published as an event on the contact's
// reminder channel; delivery is best effort like every other event.
func InitReminderWorker(publisher events.Publisher) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(publisher))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(publisher events.Publisher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		event := models.ReminderEvent{
			Type: models.EventTypeReminder,
			Appointment: models.Appointment{
				ID:            p.AppointmentID,
				ContactNumber: p.ContactNumber,
				Date:          p.Date,
				Time:          p.Time,
				Status:        models.AppointmentScheduled,
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		channel := config.AppConfig.EventChannelPrefix + ":reminders:" + p.ContactNumber
		if err := publisher.Publish(ctx, channel, payload); err != nil {
			log.Printf("[ReminderHandler] failed to publish reminder: %v", err)
			return err
		}
		return nil
	}
}
