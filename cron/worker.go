package cron

import (
	"context"
	"encoding/json"
	"time"

	"slotwise/config"
	"slotwise/services/scheduling"
	"slotwise/services/tasks"
	"slotwise/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder consumer in the background.
// Tasks enqueued by the sweep are popped here and forwarded to the delivery
// channel; for now delivery is the structured log, matching the engine's
// notification boundary.
func InitReminderWorker() {
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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask)

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("reminder worker failed to start",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempt == maxAttempts {
				logger.Fatal("reminder worker exhausted retries")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
}

func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p tasks.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("invalid reminder payload", zap.Error(err))
		return err
	}

	logger.Info("reminder delivered",
		zap.String("bookingID", p.BookingID),
		zap.String("kind", string(p.Kind)),
		zap.String("customerID", p.CustomerID),
		zap.Time("startTime", p.StartTime),
	)
	return nil
}

// StartReminderSweep runs the reminder sweep on a fixed cadence until the
// context is cancelled. Each tick scans upcoming confirmed bookings and
// enqueues any reminder whose window has opened.
func StartReminderSweep(ctx context.Context, svc scheduling.Service, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		logger := utils.GetLogger()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := svc.SendReminders(ctx); err != nil {
					logger.Error("reminder sweep failed", zap.Error(err))
				}
			}
		}
	}()
}
