package integration_test

import (
	"net/http"
	"sync"
	"testing"

	"juakali_backend/internal/models"
	"juakali_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestApplication_Submit - artisan applies to an open job
func TestApplication_Submit(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	artisanToken, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)
	job := CreateTestJob(t, tx, clientUser.ID, "Open job", models.JobStatusOpen)

	applicationBody := map[string]interface{}{
		"bid_amount": 4500,
		"message":    "I can start Monday",
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/applications", artisanToken, applicationBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Application should succeed. Body: "+bodyStr)

	var application models.JobApplication
	err := tx.Where("job_id = ? AND artisan_id = ?", job.ID, artisanUser.ID).First(&application).Error
	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)

	// The job owner got a new-application notification
	var notificationCount int64
	tx.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", clientUser.ID, "new_application").
		Count(&notificationCount)
	assert.Equal(t, int64(1), notificationCount)
}

// TestApplication_SubmitJobNotOpen - applications are only taken while open
func TestApplication_SubmitJobNotOpen(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	artisanToken, _, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	for _, status := range []models.JobStatus{
		models.JobStatusAssigned,
		models.JobStatusCompleted,
		models.JobStatusCancelled,
	} {
		job := CreateTestJob(t, tx, clientUser.ID, "Job "+string(status), status)
		res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/applications", artisanToken, nil)
		assert.Equal(t, http.StatusConflict, res.StatusCode, "Applying to a %s job must fail. Body: %s", status, bodyStr)
	}

	// Unknown job id is a 404, not a conflict
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/00000000-0000-0000-0000-000000000000/applications", artisanToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestApplication_Duplicate - one application per (job, artisan), and a
// rejected application still blocks re-application
func TestApplication_Duplicate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	artisanToken, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)
	job := CreateTestJob(t, tx, clientUser.ID, "Popular job", models.JobStatusOpen)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/applications", artisanToken, nil)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/applications", artisanToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, "Second application must fail. Body: "+bodyStr)

	var count int64
	tx.Model(&models.JobApplication{}).
		Where("job_id = ? AND artisan_id = ?", job.ID, artisanUser.ID).
		Count(&count)
	assert.Equal(t, int64(1), count, "Exactly one application row may exist")

	// A rejected application keeps blocking
	tx.Model(&models.JobApplication{}).
		Where("job_id = ? AND artisan_id = ?", job.ID, artisanUser.ID).
		Update("status", models.ApplicationStatusRejected)

	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/applications", artisanToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, "A rejected application still blocks re-application")
}

// TestApplication_AcceptFlow - accepting one application assigns the job,
// rejects every other pending application and notifies both sides, all in
// one commit
func TestApplication_AcceptFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanA, _ := helpers.CreateAndLoginArtisan(t, ts, tx)
	_, artisanB, _ := helpers.CreateAndLoginArtisan(t, ts, tx)
	_, artisanC, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "Contested job", models.JobStatusOpen)
	winner := CreateTestApplication(t, tx, job.ID, artisanA.ID, models.ApplicationStatusPending)
	CreateTestApplication(t, tx, job.ID, artisanB.ID, models.ApplicationStatusPending)
	CreateTestApplication(t, tx, job.ID, artisanC.ID, models.ApplicationStatusWithdrawn)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/applications/"+winner.ID+"/decision", clientToken, map[string]interface{}{
		"decision": "accept",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, "Accept should succeed. Body: "+bodyStr)

	// Job is assigned to the winner
	var currentJob models.Job
	assert.NoError(t, tx.First(&currentJob, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobStatusAssigned, currentJob.Status)
	if assert.NotNil(t, currentJob.AssignedArtisanID) {
		assert.Equal(t, artisanA.ID, *currentJob.AssignedArtisanID)
	}

	// Winner accepted, loser rejected, withdrawn untouched
	var applications []models.JobApplication
	assert.NoError(t, tx.Where("job_id = ?", job.ID).Find(&applications).Error)
	statusByArtisan := map[string]models.ApplicationStatus{}
	for _, a := range applications {
		statusByArtisan[a.ArtisanID] = a.Status
	}
	assert.Equal(t, models.ApplicationStatusAccepted, statusByArtisan[artisanA.ID])
	assert.Equal(t, models.ApplicationStatusRejected, statusByArtisan[artisanB.ID])
	assert.Equal(t, models.ApplicationStatusWithdrawn, statusByArtisan[artisanC.ID])

	// Both sides were notified
	var acceptedCount, rejectedCount int64
	tx.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", artisanA.ID, "application_accepted").
		Count(&acceptedCount)
	tx.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", artisanB.ID, "application_rejected").
		Count(&rejectedCount)
	assert.Equal(t, int64(1), acceptedCount)
	assert.Equal(t, int64(1), rejectedCount)
}

// TestApplication_SecondAcceptFails - once assigned, deciding any other
// application fails
func TestApplication_SecondAcceptFails(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanA, _ := helpers.CreateAndLoginArtisan(t, ts, tx)
	_, artisanB, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "One-winner job", models.JobStatusOpen)
	first := CreateTestApplication(t, tx, job.ID, artisanA.ID, models.ApplicationStatusPending)
	second := CreateTestApplication(t, tx, job.ID, artisanB.ID, models.ApplicationStatusPending)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/applications/"+first.ID+"/decision", clientToken, map[string]interface{}{
		"decision": "accept",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/applications/"+second.ID+"/decision", clientToken, map[string]interface{}{
		"decision": "accept",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, "Second accept must fail. Body: "+bodyStr)

	// Still exactly one accepted application
	var acceptedCount int64
	tx.Model(&models.JobApplication{}).
		Where("job_id = ? AND status = ?", job.ID, models.ApplicationStatusAccepted).
		Count(&acceptedCount)
	assert.Equal(t, int64(1), acceptedCount)
}

// TestApplication_DecideAfterClosed - decisions are only possible while open
func TestApplication_DecideAfterClosed(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "Cancelled job", models.JobStatusOpen)
	application := CreateTestApplication(t, tx, job.ID, artisanUser.ID, models.ApplicationStatusPending)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/cancel", clientToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// The application was rejected by the cancellation; deciding it now fails
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/applications/"+application.ID+"/decision", clientToken, map[string]interface{}{
		"decision": "accept",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, "Deciding on a closed job must fail. Body: "+bodyStr)
}

// TestApplication_DecideNotOwner - only the owning client decides
func TestApplication_DecideNotOwner(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, ownerUser := helpers.CreateAndLoginClient(t, ts, tx)
	otherToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, ownerUser.ID, "Owner's job", models.JobStatusOpen)
	application := CreateTestApplication(t, tx, job.ID, artisanUser.ID, models.ApplicationStatusPending)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/applications/"+application.ID+"/decision", otherToken, map[string]interface{}{
		"decision": "accept",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestApplication_Reject - rejection keeps the job open and notifies the artisan
func TestApplication_Reject(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "Still open job", models.JobStatusOpen)
	application := CreateTestApplication(t, tx, job.ID, artisanUser.ID, models.ApplicationStatusPending)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/applications/"+application.ID+"/decision", clientToken, map[string]interface{}{
		"decision": "reject",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, "Reject should succeed. Body: "+bodyStr)

	var currentJob models.Job
	assert.NoError(t, tx.First(&currentJob, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobStatusOpen, currentJob.Status, "Rejection must not close the job")

	var notificationCount int64
	tx.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", artisanUser.ID, "application_rejected").
		Count(&notificationCount)
	assert.Equal(t, int64(1), notificationCount)
}

// TestApplication_Withdraw - artisan withdraws their own pending application
func TestApplication_Withdraw(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	artisanToken, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)
	otherToken, _, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "Job", models.JobStatusOpen)
	application := CreateTestApplication(t, tx, job.ID, artisanUser.ID, models.ApplicationStatusPending)

	// Someone else's application cannot be withdrawn
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/applications/"+application.ID+"/withdraw", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/applications/"+application.ID+"/withdraw", artisanToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Withdraw should succeed. Body: "+bodyStr)

	var current models.JobApplication
	assert.NoError(t, tx.First(&current, "id = ?", application.ID).Error)
	assert.Equal(t, models.ApplicationStatusWithdrawn, current.Status)

	// Withdrawing twice fails: no longer pending
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/applications/"+application.ID+"/withdraw", artisanToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

// TestApplication_ConcurrentAccept - two accept requests race on the same
// job; the row lock must let exactly one through. Runs against the shared
// pool (not a test transaction) because the race needs separate connections.
func TestApplication_ConcurrentAccept(t *testing.T) {
	ts := GetTestServer(t)
	db := ts.DB

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, db)
	_, artisanA, _ := helpers.CreateAndLoginArtisan(t, ts, db)
	_, artisanB, _ := helpers.CreateAndLoginArtisan(t, ts, db)

	job := CreateTestJob(t, db, clientUser.ID, "Raced job", models.JobStatusOpen)
	applicationA := CreateTestApplication(t, db, job.ID, artisanA.ID, models.ApplicationStatusPending)
	applicationB := CreateTestApplication(t, db, job.ID, artisanB.ID, models.ApplicationStatusPending)

	defer func() {
		db.Where("user_id IN ?", []string{clientUser.ID, artisanA.ID, artisanB.ID}).Delete(&models.Notification{})
		db.Where("job_id = ?", job.ID).Delete(&models.JobApplication{})
		db.Where("id = ?", job.ID).Delete(&models.Job{})
		db.Where("user_id IN ?", []string{clientUser.ID, artisanA.ID, artisanB.ID}).Delete(&models.RefreshToken{})
		db.Where("user_id IN ?", []string{artisanA.ID, artisanB.ID}).Delete(&models.ArtisanProfile{})
		db.Where("id IN ?", []string{clientUser.ID, artisanA.ID, artisanB.ID}).Delete(&models.User{})
	}()

	var wg sync.WaitGroup
	statuses := make([]int, 2)
	for i, applicationID := range []string{applicationA.ID, applicationB.ID} {
		wg.Add(1)
		go func(i int, applicationID string) {
			defer wg.Done()
			res, _ := ts.SendRequest(t, nil, http.MethodPost, "/api/v1/applications/"+applicationID+"/decision", clientToken, map[string]interface{}{
				"decision": "accept",
			})
			statuses[i] = res.StatusCode
		}(i, applicationID)
	}
	wg.Wait()

	successes := 0
	for _, status := range statuses {
		if status == http.StatusOK {
			successes++
		}
	}
	assert.Equal(t, 1, successes, "Exactly one of the racing accepts may win: %v", statuses)

	var acceptedCount int64
	db.Model(&models.JobApplication{}).
		Where("job_id = ? AND status = ?", job.ID, models.ApplicationStatusAccepted).
		Count(&acceptedCount)
	assert.Equal(t, int64(1), acceptedCount, "Exactly one accepted application may exist")

	var currentJob models.Job
	assert.NoError(t, db.First(&currentJob, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobStatusAssigned, currentJob.Status)
	assert.NotNil(t, currentJob.AssignedArtisanID)
}

// TestApplication_ListForJob - owner sees applications, strangers do not
func TestApplication_ListForJob(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	otherToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	artisanToken, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "Job with applications", models.JobStatusOpen)
	CreateTestApplication(t, tx, job.ID, artisanUser.ID, models.ApplicationStatusPending)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/jobs/"+job.ID+"/applications", clientToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, artisanUser.ID)

	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/jobs/"+job.ID+"/applications", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// The artisan sees their own applications
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/applications/my", artisanToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, job.ID)
}
