package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	bookingRepo "slotwise/database/repository/booking"
	serviceRepo "slotwise/database/repository/service"
	staffRepo "slotwise/database/repository/staff"
	"slotwise/services/availability"
	"slotwise/services/matching"
	"slotwise/services/scheduling"
	"slotwise/services/tasks"
	"slotwise/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	db := client.Database(cfg.DatabaseName)

	cacheClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})
	defer cacheClient.Close()

	bookings := bookingRepo.NewMongoBookingRepo(db)
	services := serviceRepo.NewMongoServiceRepo(db)
	staff := staffRepo.NewMongoStaffRepo(db)

	engine := matching.NewEngine(services, staff)

	calculator := availability.NewCalculator(
		cfg.SlotGranularity(),
		availability.WithHorizon(cfg.SearchHorizonDays),
		availability.WithCache(cacheClient, time.Duration(cfg.AvailabilityCacheTTLSec)*time.Second),
	)
	if err := calculator.LoadCommitted(ctx, bookings); err != nil {
		logger.Fatal("failed to prime availability index", zap.Error(err))
	}

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisReminderQueueDB,
	})
	defer queueClient.Close()

	svc := scheduling.NewService(
		bookings,
		services,
		staff,
		engine,
		calculator,
		tasks.NewAsynqDispatcher(queueClient),
		scheduling.Settings{
			MaxAlternatives:     cfg.MaxAlternativeSlots,
			FullFeeWithin:       time.Duration(cfg.FullFeeWithinHours) * time.Hour,
			HalfFeeWithin:       time.Duration(cfg.HalfFeeWithinHours) * time.Hour,
			ReminderWindowLong:  time.Duration(cfg.ReminderWindowLongHours) * time.Hour,
			ReminderWindowShort: time.Duration(cfg.ReminderWindowShortHours) * time.Hour,
		},
	)

	cron.InitReminderWorker()
	cron.StartReminderSweep(ctx, svc, time.Duration(cfg.ReminderSweepIntervalMin)*time.Minute)

	logger.Info("scheduling engine started",
		zap.String("env", cfg.Env),
		zap.String("database", cfg.DatabaseName),
	)

	<-ctx.Done()
	logger.Info("shutting down")
}
