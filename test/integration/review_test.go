package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"juakali_backend/internal/models"
	"juakali_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestReview_SubmitFlow - review lands with the rating recomputed and the
// artisan notified, all in one commit
func TestReview_SubmitFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "Finished job", models.JobStatusOpen)
	completeJob(t, tx, job.ID, artisanUser.ID)

	reviewBody := map[string]interface{}{
		"rating":  5,
		"comment": "Excellent work, finished ahead of schedule",
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/reviews", clientToken, reviewBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Review should succeed. Body: "+bodyStr)

	// Rating summary recomputed on the artisan profile
	var profile models.ArtisanProfile
	assert.NoError(t, tx.Where("user_id = ?", artisanUser.ID).First(&profile).Error)
	assert.Equal(t, 5.0, profile.AverageRating)
	assert.Equal(t, int64(1), profile.TotalReviews)

	// The artisan got a new-review notification
	var notificationCount int64
	tx.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", artisanUser.ID, "new_review").
		Count(&notificationCount)
	assert.Equal(t, int64(1), notificationCount)
}

// TestReview_AverageRecompute - the average is a full recompute rounded to
// two decimals: [5,3,4] -> 4.00, then adding 2 -> 3.50
func TestReview_AverageRecompute(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	for _, rating := range []int{5, 3, 4} {
		clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
		job := CreateTestJob(t, tx, clientUser.ID, "Rated job", models.JobStatusOpen)
		completeJob(t, tx, job.ID, artisanUser.ID)

		res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/reviews", clientToken, map[string]interface{}{
			"rating": rating,
		})
		assert.Equal(t, http.StatusCreated, res.StatusCode, "Review should succeed. Body: "+bodyStr)
	}

	var profile models.ArtisanProfile
	assert.NoError(t, tx.Where("user_id = ?", artisanUser.ID).First(&profile).Error)
	assert.Equal(t, 4.0, profile.AverageRating, "(5+3+4)/3 = 4.00")
	assert.Equal(t, int64(3), profile.TotalReviews)

	// One more low rating shifts the average to 3.50
	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	job := CreateTestJob(t, tx, clientUser.ID, "Disappointing job", models.JobStatusOpen)
	completeJob(t, tx, job.ID, artisanUser.ID)
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/reviews", clientToken, map[string]interface{}{
		"rating": 2,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	assert.NoError(t, tx.Where("user_id = ?", artisanUser.ID).First(&profile).Error)
	assert.Equal(t, 3.5, profile.AverageRating, "(5+3+4+2)/4 = 3.50")
	assert.Equal(t, int64(4), profile.TotalReviews)
}

// TestReview_Duplicate - one review per job; the duplicate must not bump
// the aggregate
func TestReview_Duplicate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "Reviewed once", models.JobStatusOpen)
	completeJob(t, tx, job.ID, artisanUser.ID)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/reviews", clientToken, map[string]interface{}{
		"rating": 4,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/reviews", clientToken, map[string]interface{}{
		"rating": 1,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, "Second review must fail. Body: "+bodyStr)

	var profile models.ArtisanProfile
	assert.NoError(t, tx.Where("user_id = ?", artisanUser.ID).First(&profile).Error)
	assert.Equal(t, int64(1), profile.TotalReviews, "The duplicate must not touch the aggregate")
	assert.Equal(t, 4.0, profile.AverageRating)
}

// TestReview_Preconditions - not-owner, not-completed and missing-assignee
// failures
func TestReview_Preconditions(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	otherToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	// Job still assigned, not completed
	assignedJob := CreateTestJob(t, tx, clientUser.ID, "Unfinished job", models.JobStatusOpen)
	assignJob(t, tx, assignedJob.ID, artisanUser.ID)
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+assignedJob.ID+"/reviews", clientToken, map[string]interface{}{
		"rating": 5,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, "Reviewing an unfinished job must fail. Body: "+bodyStr)

	// Completed job, wrong caller
	doneJob := CreateTestJob(t, tx, clientUser.ID, "Done job", models.JobStatusOpen)
	completeJob(t, tx, doneJob.ID, artisanUser.ID)
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+doneJob.ID+"/reviews", otherToken, map[string]interface{}{
		"rating": 5,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Unknown job
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/00000000-0000-0000-0000-000000000000/reviews", clientToken, map[string]interface{}{
		"rating": 5,
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestReview_RatingValidation - boundary values for the 1..5 rating
func TestReview_RatingValidation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	testCases := []struct {
		rating     int
		shouldPass bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{5, true},
		{6, false},
	}

	for _, tc := range testCases {
		job := CreateTestJob(t, tx, clientUser.ID, "Boundary job", models.JobStatusOpen)
		completeJob(t, tx, job.ID, artisanUser.ID)

		res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs/"+job.ID+"/reviews", clientToken, map[string]interface{}{
			"rating": tc.rating,
		})
		if tc.shouldPass {
			assert.Equal(t, http.StatusCreated, res.StatusCode, "Rating %d should be valid. Body: %s", tc.rating, bodyStr)
		} else {
			assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Rating %d should be invalid. Body: %s", tc.rating, bodyStr)
		}
	}
}

// TestReview_PublicRead - anonymous access to reviews and the rating summary
func TestReview_PublicRead(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, clientUser := helpers.CreateAndLoginClient(t, ts, tx)
	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	job := CreateTestJob(t, tx, clientUser.ID, "Public job", models.JobStatusOpen)
	completeJob(t, tx, job.ID, artisanUser.ID)
	review := CreateTestReview(t, tx, job.ID, clientUser.ID, artisanUser.ID, 5, "Public review text")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/reviews/"+review.ID, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Public review text")

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/artisans/"+artisanUser.ID+"/reviews", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Public review text")

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/artisans/"+artisanUser.ID+"/rating", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var stats struct {
		AverageRating float64 `json:"average_rating"`
		TotalReviews  int64   `json:"total_reviews"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &stats))
	assert.Equal(t, 5.0, stats.AverageRating)
	assert.Equal(t, int64(1), stats.TotalReviews)
}
