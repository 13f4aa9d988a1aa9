package services

import (
	"context"

	"messaging-service/internal/models"
	"messaging-service/internal/repositories/postgres"
	"messaging-service/pkg/pagination"
)

type ThreadService struct {
	messages *postgres.MessageRepository
	replies  *postgres.ReplyRepository
}

func NewThreadService(messages *postgres.MessageRepository, replies *postgres.ReplyRepository) *ThreadService {
	return &ThreadService{messages: messages, replies: replies}
}

// FindDirectThread returns the conversation between userID and peerUserID in
// both directions, oldest first.
func (s *ThreadService) FindDirectThread(ctx context.Context, userID, peerUserID string, page *pagination.Request) (*pagination.Result[models.DirectMessage], error) {
	ids := []field{{"userId", userID}, {"peerUserId", peerUserID}}
	if err := requireFields(ids...); err != nil {
		return nil, err
	}
	if err := requireUUIDs(ids...); err != nil {
		return nil, err
	}

	return paginate(page,
		func() (int64, error) { return s.messages.CountDirectThread(ctx, userID, peerUserID) },
		func(offset, limit int) ([]models.DirectMessage, error) {
			return s.messages.FindDirectThread(ctx, userID, peerUserID, offset, limit)
		},
	)
}

// FindGroupThread returns a group's messages oldest first. An empty
// typeFilter selects every type.
func (s *ThreadService) FindGroupThread(ctx context.Context, groupID string, page *pagination.Request, typeFilter models.MessageType) (*pagination.Result[models.GroupMessage], error) {
	id := field{"groupId", groupID}
	if err := requireFields(id); err != nil {
		return nil, err
	}
	if err := requireUUIDs(id); err != nil {
		return nil, err
	}
	if typeFilter != "" && !typeFilter.IsValid() {
		return nil, models.NewInvalidMessageTypeError("type")
	}

	return paginate(page,
		func() (int64, error) { return s.messages.CountGroupThread(ctx, groupID, typeFilter) },
		func(offset, limit int) ([]models.GroupMessage, error) {
			return s.messages.FindGroupThread(ctx, groupID, typeFilter, offset, limit)
		},
	)
}

func (s *ThreadService) FindDirectReplyThread(ctx context.Context, parentID string, page *pagination.Request) (*pagination.Result[models.DirectMessageReply], error) {
	id := field{"chatMessageId", parentID}
	if err := requireFields(id); err != nil {
		return nil, err
	}
	if err := requireUUIDs(id); err != nil {
		return nil, err
	}

	return paginate(page,
		func() (int64, error) { return s.replies.CountDirectReplies(ctx, parentID) },
		func(offset, limit int) ([]models.DirectMessageReply, error) {
			return s.replies.FindDirectReplies(ctx, parentID, offset, limit)
		},
	)
}

func (s *ThreadService) FindGroupReplyThread(ctx context.Context, parentID string, page *pagination.Request) (*pagination.Result[models.GroupMessageReply], error) {
	id := field{"groupChatMessageId", parentID}
	if err := requireFields(id); err != nil {
		return nil, err
	}
	if err := requireUUIDs(id); err != nil {
		return nil, err
	}

	return paginate(page,
		func() (int64, error) { return s.replies.CountGroupReplies(ctx, parentID) },
		func(offset, limit int) ([]models.GroupMessageReply, error) {
			return s.replies.FindGroupReplies(ctx, parentID, offset, limit)
		},
	)
}

// paginate runs either the whole-set query or count + window, and always
// returns a non-nil Data slice so it serialises as [].
func paginate[T any](page *pagination.Request, count func() (int64, error), find func(offset, limit int) ([]T, error)) (*pagination.Result[T], error) {
	if !page.Enabled() {
		items, err := find(0, 0)
		if err != nil {
			return nil, err
		}
		return &pagination.Result[T]{Data: nonNil(items)}, nil
	}

	total, err := count()
	if err != nil {
		return nil, err
	}
	offset, limit, ctl := pagination.Paginate(total, page.PageNumber, page.PageSize)
	items, err := find(offset, limit)
	if err != nil {
		return nil, err
	}
	return &pagination.Result[T]{Data: nonNil(items), PaginationControl: &ctl}, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
