package models

import "github.com/google/uuid"

// newID gán UUID cho bản ghi mới nếu chưa có sẵn.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// AllModels là danh sách bảng cần AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Challenge{},
		&ChallengeParticipant{},
		&Invitation{},
		&Notification{},
	}
}
