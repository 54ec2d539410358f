package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"juakali_backend/internal/models"
	"juakali_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestNotification_JobStatusUpdate - completing a job notifies the artisan
func TestNotification_JobStatusUpdate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	artisanToken, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "Notified job", models.JobStatusOpen)
	assignJob(t, tx, job.ID, artisanUser.ID)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/complete", clientToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// The artisan sees it in their feed
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notifications/me", artisanToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "job_status_update")
	assert.Contains(t, bodyStr, "Notified job")
}

// TestNotification_UnreadCountAndMarkRead
func TestNotification_UnreadCountAndMarkRead(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	artisanToken, _, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	// Two applications produce two notifications for the client
	jobA := CreateTestJob(t, tx, clientUser.ID, "Job A", models.JobStatusOpen)
	jobB := CreateTestJob(t, tx, clientUser.ID, "Job B", models.JobStatusOpen)
	for _, jobID := range []string{jobA.ID, jobB.ID} {
		res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+jobID+"/applications", artisanToken, nil)
		assert.Equal(t, http.StatusCreated, res.StatusCode)
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notifications/me/unread-count", clientToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var unread struct {
		UnreadCount int64 `json:"unread_count"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &unread))
	assert.Equal(t, int64(2), unread.UnreadCount)

	// Mark one as read
	var notification models.Notification
	assert.NoError(t, tx.Where("user_id = ?", clientUser.ID).First(&notification).Error)

	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/notifications/"+notification.ID+"/read", clientToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notifications/me/unread-count", clientToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &unread))
	assert.Equal(t, int64(1), unread.UnreadCount)

	// Mark all as read
	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/notifications/me/read-all", clientToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notifications/me/unread-count", clientToken, nil)
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &unread))
	assert.Equal(t, int64(0), unread.UnreadCount)
}

// TestNotification_OwnershipGuard - a user cannot read or mark someone
// else's notification
func TestNotification_OwnershipGuard(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	otherToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	artisanToken, _, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "Guarded job", models.JobStatusOpen)
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/applications", artisanToken, nil)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var notification models.Notification
	assert.NoError(t, tx.Where("user_id = ?", clientUser.ID).First(&notification).Error)

	// A stranger cannot mark it read
	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/notifications/"+notification.ID+"/read", otherToken, nil)
	assert.Contains(t, []int{http.StatusNotFound, http.StatusForbidden}, res.StatusCode)

	// The owner can
	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/notifications/"+notification.ID+"/read", clientToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Anonymous access denied
	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notifications/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
