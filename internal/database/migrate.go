package database

import (
	"fmt"

	"messaging-service/internal/models"

	"gorm.io/gorm"
)

// Models lists every table owned or read by the messaging service.
func Models() []interface{} {
	return []interface{}{
		&models.DirectMessage{},
		&models.DirectMessageReply{},
		&models.GroupMessage{},
		&models.GroupMessageReply{},
		&models.ChatRoom{},
		&models.GroupMember{},
		&models.UserProfile{},
	}
}

// Migrate creates or updates the schema, including the unique pair index that
// keeps chat room resolution idempotent.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
