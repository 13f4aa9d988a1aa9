package services

import (
	"context"
	"errors"

	"messaging-service/internal/models"
	"messaging-service/internal/repositories/postgres"
	"messaging-service/pkg/logger"
)

type RoomService struct {
	rooms *postgres.RoomRepository
}

func NewRoomService(rooms *postgres.RoomRepository) *RoomService {
	return &RoomService{rooms: rooms}
}

// ResolveRoom returns the room for the unordered pair {userA, userB},
// creating it on first use. Concurrent callers for the same pair all get the
// same room.
func (s *RoomService) ResolveRoom(ctx context.Context, userA, userB string) (*models.ChatRoom, error) {
	ids := []field{{"userId", userA}, {"peerUserId", userB}}
	if err := requireFields(ids...); err != nil {
		return nil, err
	}
	if err := requireUUIDs(ids...); err != nil {
		return nil, err
	}

	room, err := s.rooms.FindByPair(ctx, userA, userB)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, models.ErrRecordNotFound) {
		return nil, err
	}

	room = &models.ChatRoom{ParticipantA: userA, ParticipantB: userB, Status: true}
	created, err := s.rooms.CreateIfAbsent(ctx, room)
	if err != nil {
		return nil, err
	}
	if created {
		lg := logger.Ctx(ctx)
		lg.Debug().Str(logger.FieldRoomID, room.RoomID).Msg("chat room created")
		return room, nil
	}

	// lost the race; the winner's row is canonical
	return s.rooms.FindByPair(ctx, userA, userB)
}
