package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitRepairStatus(t *testing.T) {
	allowed := []struct {
		from, to RepairStatus
	}{
		{RepairPending, RepairAssigned},
		{RepairPending, RepairProcessing},
		{RepairPending, RepairCancelled},
		{RepairAssigned, RepairProcessing},
		{RepairAssigned, RepairCancelled},
		{RepairProcessing, RepairCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitRepairStatus(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct {
		from, to RepairStatus
	}{
		{RepairPending, RepairCompleted},
		{RepairAssigned, RepairCompleted},
		{RepairProcessing, RepairCancelled},
		{RepairProcessing, RepairAssigned},
		// 终态不可再迁移
		{RepairCompleted, RepairProcessing},
		{RepairCompleted, RepairCancelled},
		{RepairCancelled, RepairAssigned},
		{RepairCancelled, RepairPending},
	}
	for _, tc := range denied {
		assert.False(t, CanTransitRepairStatus(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsValidRepairCategory(t *testing.T) {
	for _, category := range []string{"water", "electric", "door", "elevator", "public_facility", "other"} {
		assert.True(t, IsValidRepairCategory(category), category)
	}
	assert.False(t, IsValidRepairCategory("teleport"))
	assert.False(t, IsValidRepairCategory(""))
}

func TestPlatformFromString(t *testing.T) {
	for _, s := range []string{"weapp", "xhs", "web"} {
		platform, err := PlatformFromString(s)
		assert.NoError(t, err)
		assert.Equal(t, Platform(s), platform)
	}
	_, err := PlatformFromString("ios")
	assert.Error(t, err)
}

func TestRoleFromString(t *testing.T) {
	for _, s := range []string{"resident", "admin", "volunteer", "merchant"} {
		role, err := RoleFromString(s)
		assert.NoError(t, err)
		assert.Equal(t, UserRole(s), role)
	}
	_, err := RoleFromString("superuser")
	assert.Error(t, err)
}
