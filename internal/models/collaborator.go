package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// GroupMember and UserProfile are owned by the group and profile modules.
// Messaging only reads them; they are declared here so migrations and
// queries share one definition.

type GroupMember struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	GroupID   string    `gorm:"size:36;not null;uniqueIndex:idx_group_members_member,priority:1" json:"groupId"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_group_members_member,priority:2" json:"userId"`
	Status    bool      `gorm:"not null;default:true" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *GroupMember) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

type UserProfile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex" json:"userId"`
	FirstName string    `gorm:"size:100" json:"firstName"`
	LastName  string    `gorm:"size:100" json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// DisplayName is "<first> <last>", trimmed when either part is blank.
func (p *UserProfile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
