package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageTypeIsValid(t *testing.T) {
	for _, mt := range AllMessageTypes() {
		assert.True(t, mt.IsValid(), mt.String())
	}
	assert.False(t, MessageType("VIDEO").IsValid())
	assert.False(t, MessageType("text").IsValid())
	assert.False(t, MessageType("").IsValid())
}

func TestNormalizePair(t *testing.T) {
	lo1, hi1 := NormalizePair("b", "a")
	lo2, hi2 := NormalizePair("a", "b")
	assert.Equal(t, lo1, lo2)
	assert.Equal(t, hi1, hi2)
	assert.Equal(t, "a", lo1)
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("Validation", func(t *testing.T) {
		err := fmt.Errorf("send: %w", NewInvalidMessageTypeError("type"))
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "type", ve.Field)
		assert.Equal(t, "type must be one of TEXT, IMAGE, LINK, LOCATION", ve.Error())
		assert.False(t, IsNotFound(err))
		assert.False(t, IsForbidden(err))
	})

	t.Run("NotFound", func(t *testing.T) {
		err := fmt.Errorf("reply: %w", NewNotFoundError("chat message", "m-1"))
		assert.True(t, IsNotFound(err))
		assert.Equal(t, "reply: chat message m-1 not found", err.Error())
		_, ok := AsValidationError(err)
		assert.False(t, ok)
	})

	t.Run("Forbidden", func(t *testing.T) {
		err := NewForbiddenError("sender is not part of this group")
		assert.True(t, IsForbidden(err))
		assert.False(t, IsForbidden(errors.New("other")))
	})
}

func TestUserProfileDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&UserProfile{FirstName: "Ada", LastName: "Lovelace"}).DisplayName())
	assert.Equal(t, "Ada", (&UserProfile{FirstName: "Ada"}).DisplayName())
	assert.Equal(t, "", (&UserProfile{}).DisplayName())
}
