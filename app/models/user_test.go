package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()

	user, err := CreateUser("jane", "jane@example.com", "s3cret!")
	require.NoError(t, err)

	assert.Equal(t, "jane", user.Name)
	assert.Equal(t, "free", user.Plan)
	assert.Equal(t, STATUS_ACTIVE, user.Status)
	assert.True(t, user.IsActive())

	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "s3cret!", user.Password)
	assert.True(t, user.CheckPassword("s3cret!"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestCreateUser_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "short username", username: "ab", email: "a@example.com", password: "s3cret!"},
		{name: "bad email", username: "jane", email: "not-an-email", password: "s3cret!"},
		{name: "short password", username: "jane", email: "a@example.com", password: "abc"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := CreateUser(tt.username, tt.email, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestUser_SetPassword(t *testing.T) {
	t.Parallel()

	var user User
	require.NoError(t, user.SetPassword("new-password"))
	assert.True(t, user.CheckPassword("new-password"))
}
