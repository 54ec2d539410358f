package workers

import (
	"context"
	"time"

	"juakali_backend/internal/logger"
	"juakali_backend/internal/repositories"

	"gorm.io/gorm"
)

type NotificationWorker struct {
	db               *gorm.DB
	notificationRepo repositories.NotificationRepository
	retentionDays    int
}

func NewNotificationWorker(db *gorm.DB, notificationRepo repositories.NotificationRepository, retentionDays int) *NotificationWorker {
	return &NotificationWorker{
		db:               db,
		notificationRepo: notificationRepo,
		retentionDays:    retentionDays,
	}
}

// Start запускает фоновые задачи для уведомлений
func (w *NotificationWorker) Start(ctx context.Context) {
	go w.purgeReadNotifications(ctx)
}

// purgeReadNotifications удаляет прочитанные уведомления старше retentionDays
func (w *NotificationWorker) purgeReadNotifications(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped")
			return
		case <-ticker.C:
			cutoff := time.Now().AddDate(0, 0, -w.retentionDays)
			deleted, err := w.notificationRepo.DeleteReadOlderThan(w.db, cutoff)
			if err != nil {
				logger.WorkerLog("notification", "purge read notifications", err)
			} else if deleted > 0 {
				logger.Info("Purged read notifications", "count", deleted)
			}
		}
	}
}
