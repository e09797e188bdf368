package models

import (
	"time"

	"gorm.io/gorm"
)

type Challenge struct {
	ID          string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name        string     `gorm:"column:name;size:100;not null" json:"name"`
	Description *string    `gorm:"column:description;type:text" json:"description"`
	OwnerID     string     `gorm:"column:owner_id;size:36;index;not null" json:"ownerId"`
	StartDate   *time.Time `gorm:"column:start_date" json:"startDate"`
	EndDate     *time.Time `gorm:"column:end_date" json:"endDate"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Challenge) TableName() string {
	return "challenges"
}

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	newID(&c.ID)
	return nil
}

// ChallengeParticipant: khoá chính (challenge_id, user_id) nên mỗi user chỉ
// tham gia một challenge đúng một lần.
type ChallengeParticipant struct {
	ChallengeID string    `gorm:"column:challenge_id;primaryKey;size:36" json:"challengeId"`
	UserID      string    `gorm:"column:user_id;primaryKey;size:36;index" json:"userId"`
	JoinedAt    time.Time `gorm:"column:joined_at;autoCreateTime" json:"joinedAt"`
}

func (ChallengeParticipant) TableName() string {
	return "challenge_participants"
}
