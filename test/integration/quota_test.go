package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artfolio_backend/internal/models"
	"artfolio_backend/internal/services/dto"
	"artfolio_backend/test/helpers"
)

func TestMyQuotaEndpoint(t *testing.T) {
	ts := helpers.NewTestServer(t)

	token, user := ts.CreateAndLoginUser(t, models.UserRoleCreator)
	require.NoError(t, ts.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"max_items": 10, "max_storage_mb": 100.0}).Error)
	createItemViaAPI(t, ts, token, 40)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/me/quota", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var info dto.UserQuotaInfo
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &info))
	assert.EqualValues(t, 1, info.CurrentItems)
	assert.Equal(t, 40.0, info.CurrentStorageUsedMB)
	require.NotNil(t, info.ItemsRemaining)
	assert.EqualValues(t, 9, *info.ItemsRemaining)
	assert.True(t, info.CanUpload)
}

func TestUploadCheckEndpoint(t *testing.T) {
	ts := helpers.NewTestServer(t)

	token, user := ts.CreateAndLoginUser(t, models.UserRoleCreator)
	require.NoError(t, ts.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"max_storage_mb": 50.0, "current_storage_used_mb": 40.0}).Error)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/me/quota/upload-check?size_mb=20", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var check dto.UploadCheck
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &check))
	assert.False(t, check.CanUpload)
	assert.Contains(t, check.Reason, "storage limit")

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/me/quota/upload-check?size_mb=5", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &check))
	assert.True(t, check.CanUpload)
}

func TestAdminQuotaEndpointsAreGated(t *testing.T) {
	ts := helpers.NewTestServer(t)

	userToken, _ := ts.CreateAndLoginUser(t, models.UserRoleCreator)
	adminToken, _ := ts.CreateAndLoginUser(t, models.UserRoleAdmin)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/quota/statistics", userToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/quota/statistics", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var stats dto.QuotaStatistics
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &stats))
	assert.EqualValues(t, 2, stats.TotalUsers)
}

func TestAdminSetsUserQuota(t *testing.T) {
	ts := helpers.NewTestServer(t)

	adminToken, _ := ts.CreateAndLoginUser(t, models.UserRoleAdmin)
	_, target := ts.CreateAndLoginUser(t, models.UserRoleCreator)

	body := map[string]interface{}{
		"max_items":         100,
		"max_storage_mb":    2048.0,
		"subscription_type": "paid",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/admin/users/"+target.ID+"/quota", adminToken, body)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.User
	require.NoError(t, ts.DB.First(&updated, "id = ?", target.ID).Error)
	require.NotNil(t, updated.MaxItems)
	assert.Equal(t, 100, *updated.MaxItems)
	assert.Equal(t, models.SubscriptionPaid, updated.SubscriptionType)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/admin/users/missing-user/quota", adminToken, body)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestNearLimitsReport(t *testing.T) {
	ts := helpers.NewTestServer(t)

	adminToken, _ := ts.CreateAndLoginUser(t, models.UserRoleAdmin)

	near := helpers.CreateTestUser(t, ts.DB, models.UserRoleCreator)
	require.NoError(t, ts.DB.Model(&models.User{}).Where("id = ?", near.ID).
		Updates(map[string]interface{}{"max_storage_mb": 100.0, "current_storage_used_mb": 95.0}).Error)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/quota/near-limits", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var report struct {
		Users []dto.NearLimitUser `json:"users"`
		Total int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &report))
	require.Equal(t, 1, report.Total)
	assert.Equal(t, near.ID, report.Users[0].UserID)
	assert.InDelta(t, 0.95, report.Users[0].StorageUsageRatio, 0.001)
}
