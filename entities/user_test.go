package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampedFailedAttempts(t *testing.T) {
	tests := []struct {
		value int
		want  int
	}{
		{-10, 0},
		{-1, 0},
		{0, 0},
		{3, 3},
		{5, 5},
		{6, 5},
		{100, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampedFailedAttempts(tt.value))
	}
}

func TestParseModelAssignsIdentity(t *testing.T) {
	parsed := User{Email: "ada@example.com"}.ParseModel().(*User)
	assert.NotEmpty(t, parsed.ID)
	assert.False(t, parsed.CreatedAt.IsZero())
	assert.False(t, parsed.UpdatedAt.IsZero())

	// an already-persisted model keeps its identity
	again := (*parsed).ParseModel().(*User)
	assert.Equal(t, parsed.ID, again.ID)
	assert.Equal(t, parsed.CreatedAt, again.CreatedAt)
}

func TestFullName(t *testing.T) {
	user := User{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", user.FullName())
}
