package integration_test

import (
	"net/http"
	"testing"

	"juakali_backend/internal/models"
	"juakali_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestArtisan_PublicDirectory - anonymous browsing of artisan profiles
func TestArtisan_PublicDirectory(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/artisans/"+artisanUser.ID, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Experienced fundi")

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/artisans", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, artisanUser.ID)
}

// TestArtisan_UpdateOwnProfile - skills are re-validated on profile edits
func TestArtisan_UpdateOwnProfile(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	artisanToken, artisanUser, _ := helpers.CreateAndLoginArtisan(t, ts, tx)
	CreateTestSkills(t, tx, "Roofing")

	updateBody := map[string]interface{}{
		"bio":    "Roofing specialist",
		"skills": []string{"Roofing"},
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/artisans/me", artisanToken, updateBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Profile update should succeed. Body: "+bodyStr)

	var profile models.ArtisanProfile
	assert.NoError(t, tx.Preload("Skills").Where("user_id = ?", artisanUser.ID).First(&profile).Error)
	assert.Equal(t, "Roofing specialist", profile.Bio)
	assert.Len(t, profile.Skills, 1)

	// Unknown skill names abort the edit
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/artisans/me", artisanToken, map[string]interface{}{
		"skills": []string{"Roofing", "Dowsing"},
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Dowsing")

	// A client has no artisan profile surface
	clientToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/artisans/me", clientToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
