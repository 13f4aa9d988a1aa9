package models

import (
	"time"

	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */

// DirectMessage is a 1:1 chat message. Only IsRead and Status change after creation.
type DirectMessage struct {
	ID         string      `gorm:"primaryKey;size:36" json:"id"`
	Type       MessageType `gorm:"size:16;not null" json:"type"`
	Content    string      `gorm:"type:text;not null" json:"content"`
	SenderID   string      `gorm:"size:36;not null;index:idx_direct_messages_pair,priority:1" json:"senderId"`
	ReceiverID string      `gorm:"size:36;not null;index:idx_direct_messages_pair,priority:2" json:"receiverId"`
	IsRead     bool        `gorm:"not null;default:false" json:"isRead"`
	Status     bool        `gorm:"not null;default:true" json:"status"`
	CreatedAt  time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`

	Replies []DirectMessageReply `gorm:"foreignKey:ParentMessageID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
}

func (m *DirectMessage) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

// DirectMessageReply belongs to exactly one DirectMessage.
type DirectMessageReply struct {
	ID              string      `gorm:"primaryKey;size:36" json:"id"`
	Type            MessageType `gorm:"size:16;not null" json:"type"`
	Content         string      `gorm:"type:text;not null" json:"content"`
	SenderID        string      `gorm:"size:36;not null" json:"senderId"`
	ParentMessageID string      `gorm:"size:36;not null;index" json:"chatMessageId"`
	Status          bool        `gorm:"not null;default:true" json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (r *DirectMessageReply) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

// GroupMessage is a message posted to a group by one of its members.
type GroupMessage struct {
	ID        string      `gorm:"primaryKey;size:36" json:"id"`
	GroupID   string      `gorm:"size:36;not null;index:idx_group_messages_group,priority:1" json:"groupId"`
	Type      MessageType `gorm:"size:16;not null;index:idx_group_messages_group,priority:2" json:"type"`
	Content   string      `gorm:"type:text;not null" json:"content"`
	SenderID  string      `gorm:"size:36;not null" json:"senderId"`
	IsRead    bool        `gorm:"not null;default:false" json:"isRead"`
	Status    bool        `gorm:"not null;default:true" json:"status"`
	CreatedAt time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`

	Replies []GroupMessageReply `gorm:"foreignKey:GroupMessageID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
}

func (m *GroupMessage) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

// GroupMessageReply belongs to exactly one GroupMessage.
type GroupMessageReply struct {
	ID             string      `gorm:"primaryKey;size:36" json:"id"`
	GroupMessageID string      `gorm:"size:36;not null;index" json:"groupChatMessageId"`
	SenderID       string      `gorm:"size:36;not null" json:"senderId"`
	Type           MessageType `gorm:"size:16;not null" json:"type"`
	Content        string      `gorm:"type:text;not null" json:"content"`
	Status         bool        `gorm:"not null;default:true" json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func (r *GroupMessageReply) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

/** -------------------- DTOs -------------------- */
// Fields are plain strings so that missing values reach the service layer,
// which reports them with the offending field name.

type SendChatMessageRequest struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Type       string `json:"type" example:"TEXT"`
	Content    string `json:"content"`
}

type ReplyChatMessageRequest struct {
	SenderID      string `json:"senderId"`
	ChatMessageID string `json:"chatMessageId"`
	Type          string `json:"type" example:"TEXT"`
	Content       string `json:"content"`
}

type SendGroupChatMessageRequest struct {
	GroupID  string `json:"groupId"`
	SenderID string `json:"senderId"`
	Type     string `json:"type" example:"TEXT"`
	Content  string `json:"content"`
}

type ReplyGroupChatMessageRequest struct {
	SenderID           string `json:"senderId"`
	GroupChatMessageID string `json:"groupChatMessageId"`
	Type               string `json:"type" example:"TEXT"`
	Content            string `json:"content"`
}

type FindMessageThreadQuery struct {
	UserID     string `form:"userId"`
	PeerUserID string `form:"peerUserId"`
}

type FindGroupThreadQuery struct {
	GroupID string `form:"groupId"`
	Type    string `form:"type"`
}
