package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"artfolio_backend/internal/models"
	"artfolio_backend/internal/repositories"
	"artfolio_backend/internal/services"
	"artfolio_backend/test/helpers"
)

func newQuotaService(db *gorm.DB) services.QuotaService {
	return services.NewQuotaService(
		db,
		repositories.NewUserRepository(),
		repositories.NewItemRepository(),
	)
}

func setQuota(t *testing.T, db *gorm.DB, userID string, maxItems int, maxStorageMB, usedMB float64) {
	t.Helper()
	err := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"max_items":               maxItems,
		"max_storage_mb":          maxStorageMB,
		"current_storage_used_mb": usedMB,
	}).Error
	require.NoError(t, err)
}

func TestQuotaInfoAtItemLimit(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := newQuotaService(db)

	user := helpers.CreateTestUser(t, db, models.UserRoleCreator)
	setQuota(t, db, user.ID, 10, 500, 0)
	for i := 0; i < 10; i++ {
		helpers.CreateItem(t, db, user.ID, 1)
	}

	info := svc.GetUserQuotaInfo(user.ID)
	require.NotNil(t, info)
	assert.EqualValues(t, 10, info.CurrentItems)
	assert.True(t, info.IsAtItemLimit)
	assert.False(t, info.IsAtStorageLimit)
	assert.False(t, info.CanUpload)
	require.NotNil(t, info.ItemsRemaining)
	assert.EqualValues(t, 0, *info.ItemsRemaining)
}

func TestQuotaInfoMissingUserIsNil(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := newQuotaService(db)

	assert.Nil(t, svc.GetUserQuotaInfo("no-such-user"))

	check := svc.CanUserUpload("no-such-user", 1)
	assert.False(t, check.CanUpload)
	assert.Equal(t, "User not found", check.Reason)
}

func TestUnlimitedPlanCollapsesStoredCaps(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := newQuotaService(db)

	// Stored caps of zero would block everything; the paid plan makes them
	// irrelevant.
	user := helpers.CreateTestUser(t, db, models.UserRoleCreator)
	setQuota(t, db, user.ID, 0, 0, 1000)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("subscription_type", models.SubscriptionPaid).Error)

	info := svc.GetUserQuotaInfo(user.ID)
	require.NotNil(t, info)
	assert.Nil(t, info.MaxItems)
	assert.Nil(t, info.MaxStorageMB)
	assert.False(t, info.IsAtItemLimit)
	assert.False(t, info.IsAtStorageLimit)
	assert.True(t, info.CanUpload)

	check := svc.CanUserUpload(user.ID, 10000)
	assert.True(t, check.CanUpload)
}

func TestAdminRoleHasUnlimitedQuota(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := newQuotaService(db)

	admin := helpers.CreateTestUser(t, db, models.UserRoleAdmin)
	setQuota(t, db, admin.ID, 1, 1, 500)

	info := svc.GetUserQuotaInfo(admin.ID)
	require.NotNil(t, info)
	assert.True(t, info.CanUpload)

	check := svc.CanUserUpload(admin.ID, 10000)
	assert.True(t, check.CanUpload)
}

func TestProspectiveStorageCheckIsStricterThanRetrospective(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := newQuotaService(db)

	// 40 of 50 MB used: not at the limit yet, but a 20 MB upload would
	// cross it. The two checks must disagree here.
	user := helpers.CreateTestUser(t, db, models.UserRoleCreator)
	setQuota(t, db, user.ID, 100, 50, 40)

	info := svc.GetUserQuotaInfo(user.ID)
	require.NotNil(t, info)
	assert.False(t, info.IsAtStorageLimit)
	assert.True(t, info.CanUpload)

	check := svc.CanUserUpload(user.ID, 20)
	assert.False(t, check.CanUpload)
	assert.Contains(t, check.Reason, "storage limit")

	check = svc.CanUserUpload(user.ID, 10)
	assert.True(t, check.CanUpload)
}

func TestItemLimitCheckedBeforeStorage(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := newQuotaService(db)

	user := helpers.CreateTestUser(t, db, models.UserRoleCreator)
	setQuota(t, db, user.ID, 1, 50, 49)
	helpers.CreateItem(t, db, user.ID, 49)

	check := svc.CanUserUpload(user.ID, 10)
	assert.False(t, check.CanUpload)
	assert.Contains(t, check.Reason, "limit of 1 items")
}

func TestSetUserQuota(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := newQuotaService(db)

	user := helpers.CreateTestUser(t, db, models.UserRoleCreator)

	maxItems := 5
	maxStorage := 100.0
	paid := models.SubscriptionPaid
	require.True(t, svc.SetUserQuota(user.ID, &maxItems, &maxStorage, &paid))

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	require.NotNil(t, updated.MaxItems)
	assert.Equal(t, 5, *updated.MaxItems)
	require.NotNil(t, updated.MaxStorageMB)
	assert.Equal(t, 100.0, *updated.MaxStorageMB)
	assert.Equal(t, models.SubscriptionPaid, updated.SubscriptionType)

	assert.False(t, svc.SetUserQuota("no-such-user", &maxItems, &maxStorage, nil))
}

func TestSetDefaultQuotaForRoleClobbersOverrides(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := newQuotaService(db)

	a := helpers.CreateTestUser(t, db, models.UserRoleCreator)
	b := helpers.CreateTestUser(t, db, models.UserRoleCreator)
	other := helpers.CreateTestUser(t, db, models.UserRoleCollector)
	setQuota(t, db, a.ID, 99, 999, 0)

	maxItems := 20
	maxStorage := 200.0
	require.True(t, svc.SetDefaultQuotaForRole(models.UserRoleCreator, &maxItems, &maxStorage))

	for _, id := range []string{a.ID, b.ID} {
		var u models.User
		require.NoError(t, db.First(&u, "id = ?", id).Error)
		require.NotNil(t, u.MaxItems)
		assert.Equal(t, 20, *u.MaxItems)
	}

	var untouched models.User
	require.NoError(t, db.First(&untouched, "id = ?", other.ID).Error)
	assert.Nil(t, untouched.MaxItems)
}

func TestQuotaStatistics(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := newQuotaService(db)

	atLimit := helpers.CreateTestUser(t, db, models.UserRoleCreator)
	setQuota(t, db, atLimit.ID, 1, 50, 60)
	helpers.CreateItem(t, db, atLimit.ID, 60)

	unlimited := helpers.CreateTestUser(t, db, models.UserRoleCreator)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", unlimited.ID).
		Update("subscription_type", models.SubscriptionUnlimited).Error)

	helpers.CreateTestUser(t, db, models.UserRoleCollector)

	stats := svc.GetQuotaStatistics()
	require.NotNil(t, stats)
	assert.EqualValues(t, 3, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalItems)
	assert.EqualValues(t, 1, stats.UsersAtItemLimit)
	assert.EqualValues(t, 1, stats.UsersAtStorageLimit)
	assert.EqualValues(t, 1, stats.UnlimitedUsers)
	assert.Equal(t, 60.0, stats.TotalStorageUsedMB)
}

func TestUsersNearLimits(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := newQuotaService(db)

	near := helpers.CreateTestUser(t, db, models.UserRoleCreator)
	setQuota(t, db, near.ID, 10, 100, 90)
	for i := 0; i < 9; i++ {
		helpers.CreateItem(t, db, near.ID, 10)
	}

	comfortable := helpers.CreateTestUser(t, db, models.UserRoleCreator)
	setQuota(t, db, comfortable.ID, 10, 100, 10)

	// Nil caps must not divide by zero; the user is simply never near.
	helpers.CreateTestUser(t, db, models.UserRoleCreator)

	// Paid users are excluded from the report entirely.
	paid := helpers.CreateTestUser(t, db, models.UserRoleCreator)
	setQuota(t, db, paid.ID, 10, 100, 99)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", paid.ID).
		Update("subscription_type", models.SubscriptionPaid).Error)

	result := svc.GetUsersNearLimits(0.8, 0.8)
	require.Len(t, result, 1)
	assert.Equal(t, near.ID, result[0].UserID)
	assert.InDelta(t, 0.9, result[0].ItemUsageRatio, 0.001)
	assert.InDelta(t, 0.9, result[0].StorageUsageRatio, 0.001)
}
