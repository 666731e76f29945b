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

func TestPermissionResolutionEndpoint(t *testing.T) {
	ts := helpers.NewTestServer(t)

	ownerToken, _ := ts.CreateAndLoginUser(t, models.UserRoleCreator)
	itemID := createItemViaAPI(t, ts, ownerToken, 1)

	// Owner sees the full capability set.
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/items/"+itemID+"/permissions", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var perms dto.UserPermissions
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &perms))
	assert.True(t, perms.CanDelete)
	assert.True(t, perms.CanGrantPermissions)
	assert.Equal(t, models.OwnershipOwner, perms.OwnershipType)

	// Anonymous callers resolve to view-only, same endpoint.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/items/"+itemID+"/permissions", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &perms))
	assert.True(t, perms.CanView)
	assert.False(t, perms.CanEdit)
}

func TestGrantAndRevokeFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	ownerToken, _ := ts.CreateAndLoginUser(t, models.UserRoleCreator)
	strangerToken, _ := ts.CreateAndLoginUser(t, models.UserRoleCreator)
	_, grantee := ts.CreateAndLoginUser(t, models.UserRoleCollector)
	itemID := createItemViaAPI(t, ts, ownerToken, 1)

	grantBody := map[string]interface{}{
		"user_id":          grantee.ID,
		"ownership_type":   "collaborator",
		"permission_level": "edit",
	}

	// A stranger has no grant authority.
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/items/"+itemID+"/permissions", strangerToken, grantBody)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)

	// The owner does.
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/items/"+itemID+"/permissions", ownerToken, grantBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// Collaborator listing is gated on grant authority and shows the row.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/items/"+itemID+"/collaborators", strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/items/"+itemID+"/collaborators", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	var listing struct {
		Collaborators []dto.Collaborator `json:"collaborators"`
		Total         int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &listing))
	// Owner convenience row plus the new grant.
	assert.Equal(t, 2, listing.Total)

	// Revoke and verify the soft flag flipped.
	res, bodyStr = ts.SendRequest(t, http.MethodDelete, "/api/v1/items/"+itemID+"/permissions/"+grantee.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var perm models.ItemPermission
	require.NoError(t, ts.DB.Where("item_id = ? AND user_id = ?", itemID, grantee.ID).First(&perm).Error)
	assert.False(t, perm.IsActive)
}

func TestGrantValidationRejectsUnknownLevel(t *testing.T) {
	ts := helpers.NewTestServer(t)

	ownerToken, _ := ts.CreateAndLoginUser(t, models.UserRoleCreator)
	_, grantee := ts.CreateAndLoginUser(t, models.UserRoleCollector)
	itemID := createItemViaAPI(t, ts, ownerToken, 1)

	body := map[string]interface{}{
		"user_id":          grantee.ID,
		"ownership_type":   "collaborator",
		"permission_level": "root",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/items/"+itemID+"/permissions", ownerToken, body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
}

func TestPermissionEndpointsRequireAuth(t *testing.T) {
	ts := helpers.NewTestServer(t)

	ownerToken, _ := ts.CreateAndLoginUser(t, models.UserRoleCreator)
	itemID := createItemViaAPI(t, ts, ownerToken, 1)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/items/"+itemID+"/permissions", "", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/items/"+itemID+"/collaborators", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
