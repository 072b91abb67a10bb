package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoyaltyAccount(t *testing.T) {
	a := NewLoyaltyAccount()
	a.AddPoints(469)
	assert.Equal(t, 469, a.Points())

	assert.True(t, a.RedeemPoints(400))
	assert.Equal(t, 69, a.Points())

	assert.False(t, a.RedeemPoints(70))
	assert.Equal(t, 69, a.Points())

	a.AddPoints(-5)
	assert.Equal(t, 69, a.Points())
}

func TestRoles(t *testing.T) {
	alice := New("c1", "Alice", "alice@example.com", "Almaty, 123", "+7701")
	assert.Equal(t, RoleCustomer, alice.Role)
	assert.NotNil(t, alice.Loyalty)
	assert.False(t, alice.IsAdmin())

	admin := NewAdministrator("a1", "Admin", "admin@example.com", "HQ", "+7700")
	assert.True(t, admin.IsAdmin())
}

func TestLogAction_AdminOnly(t *testing.T) {
	admin := NewAdministrator("a1", "Admin", "admin@example.com", "HQ", "+7700")
	entry, err := admin.LogAction("created product SMX-001")
	require.NoError(t, err)
	assert.Equal(t, "a1", entry.AdminID)
	assert.Len(t, admin.Actions(), 1)

	alice := New("c1", "Alice", "alice@example.com", "Almaty, 123", "+7701")
	_, err = alice.LogAction("nope")
	assert.ErrorIs(t, err, ErrNotAdministrator)
}

func TestUpdateProfile(t *testing.T) {
	alice := New("c1", "Alice", "alice@example.com", "Almaty, 123", "+7701")
	alice.UpdateProfile("Alice B", "Astana, 7", "+7702")
	assert.Equal(t, "Alice B", alice.Name)
	assert.Equal(t, "Astana, 7", alice.Address)
	assert.Equal(t, "+7702", alice.Phone)
	assert.Equal(t, "alice@example.com", alice.Email)
}

func TestClone_IsIndependent(t *testing.T) {
	alice := New("c1", "Alice", "alice@example.com", "Almaty, 123", "+7701")
	alice.Loyalty.AddPoints(10)

	clone := alice.Clone()
	clone.Loyalty.AddPoints(5)
	clone.Name = "Other"

	assert.Equal(t, 10, alice.Loyalty.Points())
	assert.Equal(t, "Alice", alice.Name)
}
