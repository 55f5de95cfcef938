package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-register/internal/domain"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/internal/domain/inventory"
)

func TestScopeFor(t *testing.T) {
	staff := entity.Actor{UserID: "u1", Name: "Rajesh Kumar", Branch: branchA, Role: entity.RoleStaff}
	head := entity.Actor{UserID: "u2", Name: "Head Office", Role: entity.RoleHeadOffice}

	scope, err := inventory.ScopeFor(staff, "")
	require.NoError(t, err)
	assert.Equal(t, branchA, scope.Location())

	scope, err = inventory.ScopeFor(staff, branchA)
	require.NoError(t, err)
	assert.Equal(t, branchA, scope.Location())

	_, err = inventory.ScopeFor(staff, branchB)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = inventory.ScopeFor(entity.Actor{Role: entity.RoleStaff}, "")
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	scope, err = inventory.ScopeFor(head, "")
	require.NoError(t, err)
	assert.True(t, scope.IsAll())
	assert.Equal(t, "all", scope.String())

	scope, err = inventory.ScopeFor(head, " "+branchB+" ")
	require.NoError(t, err)
	assert.Equal(t, branchB, scope.Location())
}

func TestCanModify(t *testing.T) {
	staff := entity.Actor{Branch: branchA, Role: entity.RoleStaff}

	assert.True(t, inventory.CanModify(staff, branchA))
	assert.False(t, inventory.CanModify(staff, branchB))
	assert.True(t, inventory.CanModify(entity.Actor{Role: entity.RoleHeadOffice}, branchB))
}

func TestScopeCacheKey_BranchNamedAllDoesNotCollide(t *testing.T) {
	assert.Equal(t, "all", inventory.AllBranches().CacheKey())
	assert.Equal(t, "branch:all", inventory.ForBranch("all").CacheKey())
	assert.Equal(t, "branch:"+branchA, inventory.ForBranch(" "+branchA+" ").CacheKey())
	assert.NotEqual(t, inventory.AllBranches().CacheKey(), inventory.ForBranch("all").CacheKey())
}
