package models

import (
	"time"

	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

func (s InvitationStatus) Valid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationDeclined:
		return true
	}
	return false
}

// CanTransitionTo chỉ cho phép pending -> accepted | declined.
func (s InvitationStatus) CanTransitionTo(next InvitationStatus) bool {
	return s == InvitationPending && (next == InvitationAccepted || next == InvitationDeclined)
}

type Invitation struct {
	ID          string           `gorm:"column:id;primaryKey;size:36" json:"id"`
	ChallengeID string           `gorm:"column:challenge_id;size:36;not null;uniqueIndex:idx_invitation_triple" json:"challengeId"`
	InviterID   string           `gorm:"column:inviter_id;size:36;not null;uniqueIndex:idx_invitation_triple" json:"inviterId"`
	InviteeID   string           `gorm:"column:invitee_id;size:36;not null;uniqueIndex:idx_invitation_triple;index" json:"inviteeId"`
	Status      InvitationStatus `gorm:"column:status;size:20;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	newID(&i.ID)
	return nil
}

// BeforeSave chạy trước BeforeCreate nên gán mặc định ở đây.
func (i *Invitation) BeforeSave(tx *gorm.DB) error {
	if i.Status == "" {
		i.Status = InvitationPending
	}
	if !i.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "must be one of pending, accepted, declined"}
	}
	return nil
}
