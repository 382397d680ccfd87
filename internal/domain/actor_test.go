package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActorManages(t *testing.T) {
	shop := &Shop{ID: "s1", ManagerID: "m1"}

	assert.True(t, Actor{ID: "m1", Role: RoleManager}.Manages(shop))
	assert.False(t, Actor{ID: "m2", Role: RoleManager}.Manages(shop))
	assert.False(t, Actor{ID: "m1", Role: RoleClient}.Manages(shop))
	assert.False(t, Actor{ID: "", Role: RoleManager}.Manages(&Shop{ID: "s2"}))
}

func TestActorRequireAdmin(t *testing.T) {
	assert.NoError(t, Actor{ID: "a", Role: RoleAdmin}.RequireAdmin())
	assert.ErrorIs(t, Actor{ID: "m", Role: RoleManager}.RequireAdmin(), ErrForbidden)
}
