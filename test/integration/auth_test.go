package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"artfolio_backend/internal/models"
	"artfolio_backend/test/helpers"
)

func TestRegisterAndLoginFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	registerBody := map[string]interface{}{
		"username": "mint_condition",
		"email":    "artist@test.com",
		"password": "super_password123",
		"role":     "creator",
	}
	regRes, regBodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode, regBodyStr)
	assert.Contains(t, regBodyStr, "mint_condition")
	assert.NotContains(t, regBodyStr, "password_hash")

	loginBody := map[string]interface{}{
		"email":    "artist@test.com",
		"password": "super_password123",
	}
	logRes, logBodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, logRes.StatusCode, logBodyStr)
	assert.Contains(t, logBodyStr, "access_token")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := helpers.NewTestServer(t)

	user := helpers.CreateTestUser(t, ts.DB, models.UserRoleCreator)

	body := map[string]interface{}{
		"username": "someone_else",
		"email":    user.Email,
		"password": "long_enough_password",
		"role":     "collector",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
}

func TestRegisterRejectsPrivilegedRoles(t *testing.T) {
	ts := helpers.NewTestServer(t)

	body := map[string]interface{}{
		"username": "wannabe_admin",
		"email":    "wannabe@test.com",
		"password": "long_enough_password",
		"role":     "admin",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
}

func TestLoginBadPassword(t *testing.T) {
	ts := helpers.NewTestServer(t)

	user := helpers.CreateTestUser(t, ts.DB, models.UserRoleCollector)

	body := map[string]interface{}{
		"email":    user.Email,
		"password": "definitely-wrong",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)
}

func TestLoginSuspendedAccount(t *testing.T) {
	ts := helpers.NewTestServer(t)

	user := helpers.CreateTestUser(t, ts.DB, models.UserRoleCreator)
	ts.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", models.UserStatusSuspended)

	body := map[string]interface{}{
		"email":    user.Email,
		"password": "password123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)
}

func TestChangeRoleRequiresSuperadmin(t *testing.T) {
	ts := helpers.NewTestServer(t)

	adminToken, _ := ts.CreateAndLoginUser(t, models.UserRoleAdmin)
	superToken, _ := ts.CreateAndLoginUser(t, models.UserRoleSuperadmin)
	_, target := ts.CreateAndLoginUser(t, models.UserRoleVisitor)

	body := map[string]interface{}{"role": "creator"}

	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/admin/users/"+target.ID+"/role", adminToken, body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/admin/users/"+target.ID+"/role", superToken, body)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.User
	assert.NoError(t, ts.DB.First(&updated, "id = ?", target.ID).Error)
	assert.Equal(t, models.UserRoleCreator, updated.Role)
}
