package models

import (
	"time"

	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */

// ChatRoom maps an unordered pair of direct-chat participants to the room id
// used for broadcast targeting. PairLow/PairHigh hold the pair sorted so a
// unique index can enforce one room per pair regardless of who joined first.
type ChatRoom struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	RoomID       string    `gorm:"size:36;not null;uniqueIndex" json:"roomId"`
	ParticipantA string    `gorm:"size:36;not null" json:"userOne"`
	ParticipantB string    `gorm:"size:36;not null" json:"userTwo"`
	PairLow      string    `gorm:"size:36;not null;uniqueIndex:idx_chat_rooms_pair,priority:1" json:"-"`
	PairHigh     string    `gorm:"size:36;not null;uniqueIndex:idx_chat_rooms_pair,priority:2" json:"-"`
	Status       bool      `gorm:"not null;default:true" json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (r *ChatRoom) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	ensureID(&r.RoomID)
	r.PairLow, r.PairHigh = NormalizePair(r.ParticipantA, r.ParticipantB)
	return nil
}

// NormalizePair orders two participant ids so {a,b} and {b,a} map to the same key.
func NormalizePair(a, b string) (low, high string) {
	if a <= b {
		return a, b
	}
	return b, a
}

/** -------------------- DTOs -------------------- */

type ResolveChatRoomRequest struct {
	UserID     string `json:"userId"`
	PeerUserID string `json:"peerUserId"`
}
