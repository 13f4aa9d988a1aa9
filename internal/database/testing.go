package database

import (
	"fmt"

	"messaging-service/internal/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewInMemory opens a private, migrated in-memory SQLite database. It pins the
// pool to a single connection: the database lives only as long as that
// connection, and SQLite serialises writers anyway.
func NewInMemory() (*gorm.DB, error) {
	db, err := New(&config.DatabaseConfig{
		Driver:         "sqlite",
		FilePath:       fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()),
		MaxIdleConns:   1,
		MaxOpenConns:   1,
		ConnectRetries: 1,
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
