package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	first, last := SplitName("Mario Rossi")
	assert.Equal(t, "Mario", first)
	assert.Equal(t, "Rossi", last)

	first, last = SplitName("Mario")
	assert.Equal(t, "Mario", first)
	assert.Equal(t, "", last)

	// Everything after the first word is the last name
	first, last = SplitName("Maria Anna De Luca")
	assert.Equal(t, "Maria", first)
	assert.Equal(t, "Anna De Luca", last)
}

func TestJoinName(t *testing.T) {
	assert.Equal(t, "Mario Rossi", JoinName("Mario", "Rossi"))
	assert.Equal(t, "Mario", JoinName("Mario", ""))
	assert.Equal(t, "Rossi", JoinName("", "Rossi"))
	assert.Equal(t, "", JoinName("", ""))
}

func TestLeadNormalize(t *testing.T) {
	// Relational shape: split names fill the combined one
	l := Lead{FirstName: "Mario", LastName: "Rossi"}
	l.Normalize()
	assert.Equal(t, "Mario Rossi", l.Name)

	// Remote shape: combined name fills the split one
	l = Lead{Name: "Mario Rossi"}
	l.Normalize()
	assert.Equal(t, "Mario", l.FirstName)
	assert.Equal(t, "Rossi", l.LastName)

	// Both present: nothing changes
	l = Lead{Name: "Mario Rossi", FirstName: "Mario", LastName: "Rossi"}
	l.Normalize()
	assert.Equal(t, "Mario Rossi", l.Name)
	assert.Equal(t, "Mario", l.FirstName)
}

func TestUserDisplayName(t *testing.T) {
	u := User{Username: "mrossi", FirstName: "Mario", LastName: "Rossi"}
	assert.Equal(t, "Mario Rossi", u.DisplayName())

	u = User{Username: "mrossi"}
	assert.Equal(t, "mrossi", u.DisplayName())
}

func TestActorIsAdminRole(t *testing.T) {
	assert.True(t, Actor{Role: RoleAdmin}.IsAdminRole())
	assert.False(t, Actor{Role: RoleTester}.IsAdminRole())
	assert.False(t, Actor{}.IsAdminRole())
}
