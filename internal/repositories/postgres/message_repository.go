package postgres

import (
	"context"
	"errors"
	"fmt"

	"messaging-service/internal/models"

	"gorm.io/gorm"
)

const threadOrder = "created_at ASC, id ASC"

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) CreateDirectMessage(ctx context.Context, msg *models.DirectMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create direct message: %w", err)
	}
	return nil
}

func (r *MessageRepository) FindDirectMessageByID(ctx context.Context, id string) (*models.DirectMessage, error) {
	var msg models.DirectMessage
	if err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get direct message: %w", err)
	}
	return &msg, nil
}

// directThread scopes a query to the messages exchanged between a and b, in
// either direction.
func (r *MessageRepository) directThread(ctx context.Context, a, b string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.DirectMessage{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a)
}

func (r *MessageRepository) CountDirectThread(ctx context.Context, a, b string) (int64, error) {
	var n int64
	if err := r.directThread(ctx, a, b).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count direct thread: %w", err)
	}
	return n, nil
}

// FindDirectThread returns the conversation oldest first. A non-positive
// limit returns everything from offset on.
func (r *MessageRepository) FindDirectThread(ctx context.Context, a, b string, offset, limit int) ([]models.DirectMessage, error) {
	var msgs []models.DirectMessage
	err := window(r.directThread(ctx, a, b), offset, limit).
		Preload("Replies", orderReplies).
		Order(threadOrder).
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get direct thread: %w", err)
	}
	return msgs, nil
}

func (r *MessageRepository) CreateGroupMessage(ctx context.Context, msg *models.GroupMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create group message: %w", err)
	}
	return nil
}

func (r *MessageRepository) FindGroupMessageByID(ctx context.Context, id string) (*models.GroupMessage, error) {
	var msg models.GroupMessage
	if err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get group message: %w", err)
	}
	return &msg, nil
}

func (r *MessageRepository) groupThread(ctx context.Context, groupID string, typeFilter models.MessageType) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.GroupMessage{}).
		Where("group_id = ?", groupID)
	if typeFilter != "" {
		q = q.Where("type = ?", typeFilter)
	}
	return q
}

func (r *MessageRepository) CountGroupThread(ctx context.Context, groupID string, typeFilter models.MessageType) (int64, error) {
	var n int64
	if err := r.groupThread(ctx, groupID, typeFilter).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count group thread: %w", err)
	}
	return n, nil
}

// FindGroupThread returns a group's messages oldest first, optionally limited
// to one message type.
func (r *MessageRepository) FindGroupThread(ctx context.Context, groupID string, typeFilter models.MessageType, offset, limit int) ([]models.GroupMessage, error) {
	var msgs []models.GroupMessage
	err := window(r.groupThread(ctx, groupID, typeFilter), offset, limit).
		Preload("Replies", orderReplies).
		Order(threadOrder).
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get group thread: %w", err)
	}
	return msgs, nil
}

func orderReplies(db *gorm.DB) *gorm.DB {
	return db.Order(threadOrder)
}

// window applies offset/limit only on the paginated path.
func window(q *gorm.DB, offset, limit int) *gorm.DB {
	if limit <= 0 {
		return q
	}
	return q.Offset(offset).Limit(limit)
}
