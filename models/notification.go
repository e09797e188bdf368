package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationInvitation    NotificationType = "invitation"
	NotificationSystemMessage NotificationType = "system_message"
)

// Notification là tagged union theo Type:
//   - invitation: bắt buộc có InvitationID
//   - system_message: không gắn với lời mời nào
//
// Tạo qua NewInvitationNotification / NewSystemNotification, hook BeforeSave
// chặn mọi bản ghi sai biến thể.
type Notification struct {
	ID           string           `gorm:"column:id;primaryKey;size:36" json:"id"`
	UserID       string           `gorm:"column:user_id;size:36;not null;index" json:"userId"`
	Content      string           `gorm:"column:content;type:text;not null" json:"content"`
	Type         NotificationType `gorm:"column:type;size:20;not null;default:'system_message'" json:"type"`
	InvitationID *string          `gorm:"column:invitation_id;size:36" json:"invitationId"`
	IsRead       bool             `gorm:"column:is_read;not null;default:false" json:"isRead"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

func NewInvitationNotification(userID, invitationID, content string) *Notification {
	return &Notification{
		UserID:       userID,
		Content:      content,
		Type:         NotificationInvitation,
		InvitationID: &invitationID,
	}
}

func NewSystemNotification(userID, content string) *Notification {
	return &Notification{
		UserID:  userID,
		Content: content,
		Type:    NotificationSystemMessage,
	}
}

// Validate kiểm tra ràng buộc theo từng biến thể.
func (n *Notification) Validate() error {
	if n.UserID == "" {
		return &ValidationError{Field: "userId", Reason: "is required"}
	}
	if n.Content == "" {
		return &ValidationError{Field: "content", Reason: "is required"}
	}
	switch n.Type {
	case NotificationInvitation:
		if n.InvitationID == nil || *n.InvitationID == "" {
			return &ValidationError{Field: "invitationId", Reason: "is required when type is invitation"}
		}
	case NotificationSystemMessage:
		if n.InvitationID != nil {
			return &ValidationError{Field: "invitationId", Reason: "must be empty when type is system_message"}
		}
	default:
		return &ValidationError{Field: "type", Reason: "must be one of invitation, system_message"}
	}
	return nil
}

func (n *Notification) BeforeSave(tx *gorm.DB) error {
	if n.Type == "" {
		n.Type = NotificationSystemMessage
	}
	return n.Validate()
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	newID(&n.ID)
	return nil
}
