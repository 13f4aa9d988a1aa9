package postgres

import (
	"context"
	"fmt"

	"messaging-service/internal/models"

	"gorm.io/gorm"
)

type ReplyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) *ReplyRepository {
	return &ReplyRepository{db: db}
}

func (r *ReplyRepository) CreateDirectReply(ctx context.Context, reply *models.DirectMessageReply) error {
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return fmt.Errorf("failed to create direct message reply: %w", err)
	}
	return nil
}

func (r *ReplyRepository) directReplies(ctx context.Context, parentID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.DirectMessageReply{}).
		Where("parent_message_id = ?", parentID)
}

func (r *ReplyRepository) CountDirectReplies(ctx context.Context, parentID string) (int64, error) {
	var n int64
	if err := r.directReplies(ctx, parentID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count direct message replies: %w", err)
	}
	return n, nil
}

func (r *ReplyRepository) FindDirectReplies(ctx context.Context, parentID string, offset, limit int) ([]models.DirectMessageReply, error) {
	var replies []models.DirectMessageReply
	if err := window(r.directReplies(ctx, parentID), offset, limit).Order(threadOrder).Find(&replies).Error; err != nil {
		return nil, fmt.Errorf("failed to get direct message replies: %w", err)
	}
	return replies, nil
}

func (r *ReplyRepository) CreateGroupReply(ctx context.Context, reply *models.GroupMessageReply) error {
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return fmt.Errorf("failed to create group message reply: %w", err)
	}
	return nil
}

func (r *ReplyRepository) groupReplies(ctx context.Context, parentID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.GroupMessageReply{}).
		Where("group_message_id = ?", parentID)
}

func (r *ReplyRepository) CountGroupReplies(ctx context.Context, parentID string) (int64, error) {
	var n int64
	if err := r.groupReplies(ctx, parentID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count group message replies: %w", err)
	}
	return n, nil
}

func (r *ReplyRepository) FindGroupReplies(ctx context.Context, parentID string, offset, limit int) ([]models.GroupMessageReply, error) {
	var replies []models.GroupMessageReply
	if err := window(r.groupReplies(ctx, parentID), offset, limit).Order(threadOrder).Find(&replies).Error; err != nil {
		return nil, fmt.Errorf("failed to get group message replies: %w", err)
	}
	return replies, nil
}
