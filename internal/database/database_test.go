package database

import (
	"testing"

	"messaging-service/internal/config"
	"messaging-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorFor(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite", ""} {
		d, err := dialectorFor(&config.DatabaseConfig{Driver: driver, FilePath: ":memory:"})
		require.NoError(t, err, driver)
		assert.NotNil(t, d)
	}

	_, err := dialectorFor(&config.DatabaseConfig{Driver: "oracle"})
	assert.EqualError(t, err, "unsupported database driver: oracle")
}

func TestNewInMemoryMigrates(t *testing.T) {
	db, err := NewInMemory()
	require.NoError(t, err)

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}
	assert.True(t, db.Migrator().HasIndex(&models.ChatRoom{}, "idx_chat_rooms_pair"))
}

func TestChatRoomPairIsUnique(t *testing.T) {
	db, err := NewInMemory()
	require.NoError(t, err)

	first := &models.ChatRoom{ParticipantA: "a", ParticipantB: "b"}
	require.NoError(t, db.Create(first).Error)
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.RoomID)
	assert.NotEqual(t, first.ID, first.RoomID)

	// reversed pair collides on the normalised index
	err = db.Create(&models.ChatRoom{ParticipantA: "b", ParticipantB: "a"}).Error
	assert.Error(t, err)
}
