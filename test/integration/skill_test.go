package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"juakali_backend/internal/models"
	"juakali_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestSkill_PublicList - the catalog is readable anonymously
func TestSkill_PublicList(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	CreateTestSkills(t, tx, "Tailoring", "Upholstery")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/skills", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Tailoring")
	assert.Contains(t, bodyStr, "Upholstery")
}

// TestSkill_AdminCRUD - catalog management is admin-only
func TestSkill_AdminCRUD(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminEmail := fmt.Sprintf("admin_%d@test.co.ke", time.Now().UnixNano())
	adminToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "Admin", adminEmail, "adminpass123", models.UserRoleAdmin)
	clientToken, _ := helpers.CreateAndLoginClient(t, ts, tx)

	// A client cannot create skills
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/skills", clientToken, map[string]interface{}{
		"name": "Forbidden skill",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Admin creates one
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/skills", adminToken, map[string]interface{}{
		"name": "Glazing",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Skill creation should succeed. Body: "+bodyStr)

	var skill models.Skill
	assert.NoError(t, tx.Where("name = ?", "Glazing").First(&skill).Error)

	// Duplicate name conflicts
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/skills", adminToken, map[string]interface{}{
		"name": "Glazing",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// Rename
	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/admin/skills/"+skill.ID, adminToken, map[string]interface{}{
		"name": "Glass fitting",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var renamed models.Skill
	assert.NoError(t, tx.First(&renamed, "id = ?", skill.ID).Error)
	assert.Equal(t, "Glass fitting", renamed.Name)

	// Delete
	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/admin/skills/"+skill.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var count int64
	tx.Model(&models.Skill{}).Where("id = ?", skill.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
