package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auticonnect/internal/bot"
	"auticonnect/internal/config"
	"auticonnect/internal/repository"
	"auticonnect/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	identitySvc := service.NewIdentityService(userRepo)
	groupSvc := service.NewGroupService(identitySvc, groupRepo, userRepo)
	activitySvc := service.NewActivityService(identitySvc, groupSvc, activityRepo)
	reminderSvc := service.NewReminderService(activityRepo, groupRepo, userRepo)

	telegramBot, err := bot.New(cfg.TelegramToken, identitySvc, groupSvc, activitySvc, reminderSvc, cfg.Location)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	scheduler := service.NewSchedulerService(cfg.Location)
	if cfg.ReminderInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.ReminderInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := telegramBot.SendActivityReminders(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("reminders: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule reminders: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	log.Println("AutiConnect bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
