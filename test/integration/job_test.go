package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"juakali_backend/internal/models"
	"juakali_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestJob_CreateWithSkills - create a job through the API with resolvable skills
func TestJob_CreateWithSkills(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	CreateTestSkills(t, tx, "Carpentry", "Painting")

	jobBody := map[string]interface{}{
		"title":           "Build kitchen cabinets",
		"description":     "Three cabinets, mahogany finish",
		"location":        "Nairobi",
		"budget":          15000,
		"required_skills": []string{"Carpentry", "Painting"},
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs", clientToken, jobBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Job creation should succeed. Body: "+bodyStr)

	var job struct {
		ID             string `json:"id"`
		ClientID       string `json:"client_id"`
		Status         string `json:"status"`
		RequiredSkills []struct {
			Name string `json:"name"`
		} `json:"required_skills"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &job))
	assert.Equal(t, clientUser.ID, job.ClientID)
	assert.Equal(t, "open", job.Status)
	assert.Len(t, job.RequiredSkills, 2)
}

// TestJob_CreateUnknownSkill - an unknown skill fails the whole creation,
// names every unresolved skill and persists nothing
func TestJob_CreateUnknownSkill(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	CreateTestSkills(t, tx, "Carpentry")

	jobBody := map[string]interface{}{
		"title":           "Weld a gate",
		"required_skills": []string{"Carpentry", "Welding"},
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs", clientToken, jobBody)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Welding", "The unresolved skill must be named in the error")

	var count int64
	tx.Model(&models.Job{}).Where("client_id = ?", clientUser.ID).Count(&count)
	assert.Equal(t, int64(0), count, "No job row may persist when skill validation fails")
}

// TestJob_ArtisanCannotCreate - posting jobs is a client-only operation
func TestJob_ArtisanCannotCreate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	artisanToken, _, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs", artisanToken, map[string]interface{}{
		"title": "Should not work",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs", "", map[string]interface{}{
		"title": "Anonymous job",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestJob_UpdateFields - plain field edits by the owner
func TestJob_UpdateFields(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	job := CreateTestJob(t, tx, clientUser.ID, "Original title", models.JobStatusOpen)

	updateBody := map[string]interface{}{
		"title":  "Updated title",
		"budget": 9000,
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/jobs/"+job.ID, clientToken, updateBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Update should succeed. Body: "+bodyStr)
	assert.Contains(t, bodyStr, "Updated title")

	var current models.Job
	assert.NoError(t, tx.First(&current, "id = ?", job.ID).Error)
	assert.Equal(t, "Updated title", current.Title)
	assert.Equal(t, 9000.0, current.Budget)
}

// TestJob_UpdateNotOwner - only the owning client may edit
func TestJob_UpdateNotOwner(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, ownerUser := helpers.CreateAndLoginClient(t, ts, tx)
	otherToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	job := CreateTestJob(t, tx, ownerUser.ID, "Owner's job", models.JobStatusOpen)

	res, _ := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/jobs/"+job.ID, otherToken, map[string]interface{}{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestJob_ForbiddenTransitions - the lifecycle graph rejects direct moves
// into assigned, back to open, and anything out of a terminal status
func TestJob_ForbiddenTransitions(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	testCases := []struct {
		name      string
		from      models.JobStatus
		assignee  bool
		requested string
	}{
		{"open to assigned directly", models.JobStatusOpen, false, "assigned"},
		{"open to completed", models.JobStatusOpen, false, "completed"},
		{"assigned back to open", models.JobStatusAssigned, true, "open"},
		{"completed to cancelled", models.JobStatusCompleted, true, "cancelled"},
		{"cancelled to open", models.JobStatusCancelled, false, "open"},
	}

	for _, tc := range testCases {
		job := CreateTestJob(t, tx, clientUser.ID, "Transition "+tc.name, tc.from)
		if tc.assignee {
			tx.Model(&models.Job{}).Where("id = ?", job.ID).
				Update("assigned_artisan_id", artisanUser.ID)
		}

		res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/jobs/"+job.ID, clientToken, map[string]interface{}{
			"status": tc.requested,
		})
		assert.Equal(t, http.StatusConflict, res.StatusCode, "%s should be rejected. Body: %s", tc.name, bodyStr)
		assert.Contains(t, bodyStr, string(tc.from), "error must identify the current status")
		assert.Contains(t, bodyStr, tc.requested, "error must identify the requested status")

		var current models.Job
		assert.NoError(t, tx.First(&current, "id = ?", job.ID).Error)
		assert.Equal(t, tc.from, current.Status, "%s must not change the stored status", tc.name)
	}
}

// TestJob_CancelOpenRejectsPendingApplications - cancelling an open job
// rejects every still-pending application as part of the same commit
func TestJob_CancelOpenRejectsPendingApplications(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanA, _ := helpers.CreateAndLoginArtisan(t, ts, tx)
	_, artisanB, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "Doomed job", models.JobStatusOpen)
	CreateTestApplication(t, tx, job.ID, artisanA.ID, models.ApplicationStatusPending)
	CreateTestApplication(t, tx, job.ID, artisanB.ID, models.ApplicationStatusPending)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/cancel", clientToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Cancel should succeed. Body: "+bodyStr)

	var rejectedCount int64
	tx.Model(&models.JobApplication{}).
		Where("job_id = ? AND status = ?", job.ID, models.ApplicationStatusRejected).
		Count(&rejectedCount)
	assert.Equal(t, int64(2), rejectedCount, "Both pending applications must be rejected")

	var current models.Job
	assert.NoError(t, tx.First(&current, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobStatusCancelled, current.Status)
}

// TestJob_CancelAssignedClearsArtisan - cancelling an assigned job de-assigns
func TestJob_CancelAssignedClearsArtisan(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "Assigned job", models.JobStatusOpen)
	assignJob(t, tx, job.ID, artisanUser.ID)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/cancel", clientToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Cancel should succeed. Body: "+bodyStr)

	var current models.Job
	assert.NoError(t, tx.First(&current, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobStatusCancelled, current.Status)
	assert.Nil(t, current.AssignedArtisanID, "Cancelling an assigned job must clear the assignee")
}

// TestJob_Complete - happy path plus the two distinct failure kinds
func TestJob_Complete(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	// Wrong status: still open
	openJob := CreateTestJob(t, tx, clientUser.ID, "Open job", models.JobStatusOpen)
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+openJob.ID+"/complete", clientToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, "Completing an open job must fail. Body: "+bodyStr)

	// Assigned status but no artisan on the row
	brokenJob := CreateTestJob(t, tx, clientUser.ID, "Broken job", models.JobStatusAssigned)
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+brokenJob.ID+"/complete", clientToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, "Completing without an assignee must fail. Body: "+bodyStr)

	// Happy path
	job := CreateTestJob(t, tx, clientUser.ID, "Real job", models.JobStatusOpen)
	assignJob(t, tx, job.ID, artisanUser.ID)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/complete", clientToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Complete should succeed. Body: "+bodyStr)

	var current models.Job
	assert.NoError(t, tx.First(&current, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobStatusCompleted, current.Status)
	assert.NotNil(t, current.AssignedArtisanID, "Completion keeps the assignee on the job")
}

// TestJob_ListAndFilter - public listing with a status filter
func TestJob_ListAndFilter(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	CreateTestJob(t, tx, clientUser.ID, "Open fence repair", models.JobStatusOpen)
	CreateTestJob(t, tx, clientUser.ID, "Cancelled roof work", models.JobStatusCancelled)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/jobs?status=open&search=fence", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Open fence repair")
	assert.NotContains(t, bodyStr, "Cancelled roof work")
}

// TestJob_Delete - owner removes their posting
func TestJob_Delete(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	job := CreateTestJob(t, tx, clientUser.ID, "Short-lived job", models.JobStatusOpen)

	res, _ := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/jobs/"+job.ID, clientToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var count int64
	tx.Model(&models.Job{}).Where("id = ?", job.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
