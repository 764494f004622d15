package memory

import (
	"testing"
	"time"

	"cet-mentor-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository()

	sess := &store.Session{
		ID:        "abc",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	repo.Save(sess)

	got, found := repo.Get("abc")
	require.True(t, found)
	assert.Equal(t, sess.ID, got.ID)

	repo.Delete("abc")
	_, found = repo.Get("abc")
	assert.False(t, found)
}

func TestSessionRepositoryMiss(t *testing.T) {
	repo := NewSessionRepository()

	got, found := repo.Get("never-saved")
	assert.False(t, found)
	assert.Nil(t, got)
}
