package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artfolio_backend/internal/models"
	"artfolio_backend/test/helpers"
)

func TestCategoryAdminCRUD(t *testing.T) {
	ts := helpers.NewTestServer(t)

	adminToken, _ := ts.CreateAndLoginUser(t, models.UserRoleAdmin)
	userToken, _ := ts.CreateAndLoginUser(t, models.UserRoleCreator)

	body := map[string]interface{}{
		"name":          "generative",
		"description":   "algorithmic and code-based art",
		"display_order": 1,
	}

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/categories", userToken, body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/categories", adminToken, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var created models.Category
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	// Duplicate name conflicts.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/categories", adminToken, body)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// Public listing needs no auth.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "generative")

	body["description"] = "updated"
	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/admin/categories/"+created.ID, adminToken, body)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "updated")

	res, bodyStr = ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/categories/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/categories/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAdminDashboard(t *testing.T) {
	ts := helpers.NewTestServer(t)

	adminToken, _ := ts.CreateAndLoginUser(t, models.UserRoleAdmin)
	creatorToken, _ := ts.CreateAndLoginUser(t, models.UserRoleCreator)
	createItemViaAPI(t, ts, creatorToken, 10)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/dashboard", creatorToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var stats struct {
		TotalUsers  int64                     `json:"total_users"`
		TotalItems  int64                     `json:"total_items"`
		UsersByRole map[models.UserRole]int64 `json:"users_by_role"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &stats))
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalItems)
	assert.EqualValues(t, 1, stats.UsersByRole[models.UserRoleCreator])
}
