package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homesplit/homesplit-backend/models"
)

func TestCreateHousehold(t *testing.T) {
	f := newFixture(t)
	service := NewHouseholdService(f.households)

	resp, err := service.CreateHousehold(f.bob.userID, &models.CreateHouseholdRequest{Name: "Beach House"})
	require.NoError(t, err)

	assert.Equal(t, "Beach House", resp.Name)
	assert.Equal(t, string(models.RoleAdmin), resp.Role)
	assert.NotEmpty(t, resp.Code)

	// The creator is immediately a member with admin role.
	admin, err := f.households.GetAdminMember(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, f.bob.userID, admin.UserID)
}

func TestCreateHouseholdDuplicateName(t *testing.T) {
	f := newFixture(t)
	service := NewHouseholdService(f.households)

	// The fixture already created "Maple Street 12".
	_, err := service.CreateHousehold(f.bob.userID, &models.CreateHouseholdRequest{Name: "Maple Street 12"})
	assertAppError(t, err, http.StatusConflict)
}

func TestJoinHouseholdByCode(t *testing.T) {
	f := newFixture(t)
	service := NewHouseholdService(f.households)

	newcomer := &models.User{FullName: "Derek Ngai", Email: "derek@example.com", IsActive: true}
	require.NoError(t, f.users.CreateUser(newcomer))

	resp, err := service.JoinHousehold(newcomer.ID, &models.JoinHouseholdRequest{Code: "ABCD1234"})
	require.NoError(t, err)

	assert.Equal(t, f.householdID, resp.HouseholdID)
	assert.Equal(t, string(models.RoleMember), resp.Role)
}

func TestJoinHouseholdIsIdempotent(t *testing.T) {
	f := newFixture(t)
	service := NewHouseholdService(f.households)

	resp, err := service.JoinHousehold(f.bob.userID, &models.JoinHouseholdRequest{Code: "ABCD1234"})
	require.NoError(t, err)

	// Bob keeps his existing membership rather than getting a second one.
	assert.Equal(t, f.bob.memberID, resp.MemberID)
	members, err := f.households.ListMembersByHousehold(f.householdID)
	require.NoError(t, err)
	assert.Len(t, members, 3)
}

func TestJoinHouseholdUnknownCode(t *testing.T) {
	f := newFixture(t)
	service := NewHouseholdService(f.households)

	_, err := service.JoinHousehold(f.bob.userID, &models.JoinHouseholdRequest{Code: "NOPE0000"})
	assertAppError(t, err, http.StatusNotFound)
}

func TestListHouseholds(t *testing.T) {
	f := newFixture(t)
	service := NewHouseholdService(f.households)

	summaries, err := service.ListHouseholds(f.bob.userID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, f.householdID, summaries[0].ID)
	assert.Equal(t, f.bob.memberID, summaries[0].MemberID)

	outsider := &models.User{FullName: "Derek Ngai", Email: "derek@example.com", IsActive: true}
	require.NoError(t, f.users.CreateUser(outsider))
	summaries, err = service.ListHouseholds(outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestListMembers(t *testing.T) {
	f := newFixture(t)
	service := NewHouseholdService(f.households)

	members, err := service.ListMembers(f.bob.userID, f.householdID)
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "Alice Moreau", members[0].FullName)
	assert.Equal(t, models.RoleAdmin, members[0].Role)
}

func TestListMembersRequiresMembership(t *testing.T) {
	f := newFixture(t)
	service := NewHouseholdService(f.households)

	outsider := &models.User{FullName: "Derek Ngai", Email: "derek@example.com", IsActive: true}
	require.NoError(t, f.users.CreateUser(outsider))

	_, err := service.ListMembers(outsider.ID, f.householdID)
	assertAppError(t, err, http.StatusForbidden)

	_, err = service.ListMembers(f.bob.userID, 999)
	assertAppError(t, err, http.StatusNotFound)
}

func TestIsAdmin(t *testing.T) {
	f := newFixture(t)
	service := NewHouseholdService(f.households)

	isAdmin, err := service.IsAdmin(f.alice.userID, f.householdID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = service.IsAdmin(f.bob.userID, f.householdID)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}
