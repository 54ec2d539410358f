package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"juakali_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationData = errors.New("invalid notification data")
)

// Notification type constants
const (
	NotificationTypeNewApplication      = "new_application"
	NotificationTypeApplicationAccepted = "application_accepted"
	NotificationTypeApplicationRejected = "application_rejected"
	NotificationTypeJobStatusUpdate     = "job_status_update"
	NotificationTypeNewReview           = "new_review"
	NotificationTypeWelcome             = "welcome"
)

type NotificationRepository interface {
	// Notification operations
	CreateNotification(db *gorm.DB, notification *models.Notification) error
	FindNotificationByID(db *gorm.DB, id string) (*models.Notification, error)
	FindUserNotifications(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(db *gorm.DB, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) error
	GetUnreadCount(db *gorm.DB, userID string) (int64, error)
	DeleteReadOlderThan(db *gorm.DB, olderThan time.Time) (int64, error)

	// Factory methods for common notification types
	CreateNewApplicationNotification(db *gorm.DB, clientID, jobID, applicationID, jobTitle string) error
	CreateApplicationDecisionNotification(db *gorm.DB, artisanID, jobID, jobTitle string, status models.ApplicationStatus) error
	CreateJobStatusNotification(db *gorm.DB, artisanID, jobID, jobTitle string, status models.JobStatus) error
	CreateNewReviewNotification(db *gorm.DB, artisanID, jobID, jobTitle string, rating int) error
}

type NotificationRepositoryImpl struct{}

// Search criteria for notifications
type NotificationCriteria struct {
	UnreadOnly bool
	Type       string
	Page       int
	PageSize   int
}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

// Notification operations

func (r *NotificationRepositoryImpl) CreateNotification(db *gorm.DB, notification *models.Notification) error {
	if err := r.validateNotification(notification); err != nil {
		return err
	}
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindNotificationByID(db *gorm.DB, id string) (*models.Notification, error) {
	var notification models.Notification
	err := db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := db.Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	var total int64
	if err := query.Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, notificationID string) error {
	result := db.Model(&models.Notification{}).Where("id = ?", notificationID).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, userID string) error {
	return db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) DeleteReadOlderThan(db *gorm.DB, olderThan time.Time) (int64, error) {
	result := db.Where("is_read = ? AND created_at < ?", true, olderThan).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

// Factory methods for common notification types

func (r *NotificationRepositoryImpl) CreateNewApplicationNotification(db *gorm.DB, clientID, jobID, applicationID, jobTitle string) error {
	data := map[string]interface{}{
		"job_id":         jobID,
		"application_id": applicationID,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	notification := &models.Notification{
		UserID:  clientID,
		Type:    NotificationTypeNewApplication,
		Title:   "New application",
		Message: fmt.Sprintf("You received a new application for job '%s'.", jobTitle),
		Data:    datatypes.JSON(jsonData),
	}

	return r.CreateNotification(db, notification)
}

func (r *NotificationRepositoryImpl) CreateApplicationDecisionNotification(db *gorm.DB, artisanID, jobID, jobTitle string, status models.ApplicationStatus) error {
	var title, message string

	switch status {
	case models.ApplicationStatusAccepted:
		title = "Application accepted"
		message = fmt.Sprintf("Your application for job '%s' was accepted.", jobTitle)
	case models.ApplicationStatusRejected:
		title = "Application rejected"
		message = fmt.Sprintf("Your application for job '%s' was rejected.", jobTitle)
	default:
		return errors.New("unsupported status for notification")
	}

	data := map[string]interface{}{"job_id": jobID}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	var notifType string
	if status == models.ApplicationStatusAccepted {
		notifType = NotificationTypeApplicationAccepted
	} else {
		notifType = NotificationTypeApplicationRejected
	}

	notification := &models.Notification{
		UserID:  artisanID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    datatypes.JSON(jsonData),
	}

	return r.CreateNotification(db, notification)
}

func (r *NotificationRepositoryImpl) CreateJobStatusNotification(db *gorm.DB, artisanID, jobID, jobTitle string, status models.JobStatus) error {
	data := map[string]interface{}{
		"job_id": jobID,
		"status": string(status),
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	notification := &models.Notification{
		UserID:  artisanID,
		Type:    NotificationTypeJobStatusUpdate,
		Title:   "Job status update",
		Message: fmt.Sprintf("Job '%s' has been marked as %s.", jobTitle, status),
		Data:    datatypes.JSON(jsonData),
	}

	return r.CreateNotification(db, notification)
}

func (r *NotificationRepositoryImpl) CreateNewReviewNotification(db *gorm.DB, artisanID, jobID, jobTitle string, rating int) error {
	data := map[string]interface{}{
		"job_id": jobID,
		"rating": rating,
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	notification := &models.Notification{
		UserID:  artisanID,
		Type:    NotificationTypeNewReview,
		Title:   "New review",
		Message: fmt.Sprintf("You received a new %d-star review for job '%s'.", rating, jobTitle),
		Data:    datatypes.JSON(jsonData),
	}

	return r.CreateNotification(db, notification)
}

// Helper methods

func (r *NotificationRepositoryImpl) validateNotification(notification *models.Notification) error {
	if notification.UserID == "" {
		return errors.New("user ID is required")
	}
	if notification.Type == "" {
		return errors.New("notification type is required")
	}
	if notification.Title == "" {
		return errors.New("notification title is required")
	}

	validTypes := map[string]bool{
		NotificationTypeNewApplication:      true,
		NotificationTypeApplicationAccepted: true,
		NotificationTypeApplicationRejected: true,
		NotificationTypeJobStatusUpdate:     true,
		NotificationTypeNewReview:           true,
		NotificationTypeWelcome:             true,
	}
	if !validTypes[notification.Type] {
		return fmt.Errorf("invalid notification type: %s", notification.Type)
	}

	if len(notification.Data) > 0 {
		if !json.Valid(notification.Data) {
			return ErrInvalidNotificationData
		}
	}

	return nil
}
