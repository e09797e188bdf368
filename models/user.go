package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID               string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	AuthID           string    `gorm:"column:auth_id;size:255;uniqueIndex;not null" json:"authId"`
	Name             string    `gorm:"column:name;size:100;not null" json:"name"`
	Email            string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Picture          string    `gorm:"column:picture;type:text" json:"picture"`
	TotalWorkoutTime int       `gorm:"column:total_workout_time;default:0" json:"totalWorkoutTime"`
	StartingWeight   float64   `gorm:"column:starting_weight;default:0" json:"startingWeight"`
	CurrentWeight    float64   `gorm:"column:current_weight;default:0" json:"currentWeight"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	newID(&u.ID)
	return nil
}
