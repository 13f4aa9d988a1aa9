package postgres

import (
	"context"
	"errors"
	"fmt"

	"messaging-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// FindByPair looks the room up by its normalised pair, so (a,b) and (b,a)
// hit the same row.
func (r *RoomRepository) FindByPair(ctx context.Context, a, b string) (*models.ChatRoom, error) {
	low, high := models.NormalizePair(a, b)

	var room models.ChatRoom
	err := r.db.WithContext(ctx).
		Where("pair_low = ? AND pair_high = ?", low, high).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get chat room: %w", err)
	}
	return &room, nil
}

// CreateIfAbsent inserts room unless a row for the same pair already exists.
// It reports whether this call created the row; on false the caller should
// re-read the winner with FindByPair.
func (r *RoomRepository) CreateIfAbsent(ctx context.Context, room *models.ChatRoom) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pair_low"}, {Name: "pair_high"}},
			DoNothing: true,
		}).
		Create(room)
	if res.Error != nil {
		return false, fmt.Errorf("failed to create chat room: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
