// Package testutil dựng DB sqlite trong bộ nhớ và dữ liệu mẫu cho test.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/challenge-server/config"
	"github.com/vnkhanh/challenge-server/models"
	"github.com/vnkhanh/challenge-server/utils"
)

const JWTSecret = "test-secret"

// NewDB mở một DB sqlite riêng cho mỗi test và migrate toàn bộ model.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// UseDB gán DB test vào config.DB và settings tối thiểu, khôi phục khi xong.
func UseDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := NewDB(t)
	prevDB, prevCfg := config.DB, config.Cfg
	config.DB = db
	config.Cfg = config.Settings{
		JWTSecret:        JWTSecret,
		JWTTTL:           time.Hour,
		InviteRatePerMin: 600,
		InviteBurst:      100,
	}
	t.Cleanup(func() {
		config.DB = prevDB
		config.Cfg = prevCfg
	})
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()

	u := models.User{
		AuthID: "auth0|" + uuid.NewString(),
		Name:   name,
		Email:  uuid.NewString() + "@example.com",
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func CreateChallenge(t *testing.T, db *gorm.DB, owner models.User, name string) models.Challenge {
	t.Helper()

	ch := models.Challenge{Name: name, OwnerID: owner.ID}
	if err := db.Create(&ch).Error; err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	p := models.ChallengeParticipant{ChallengeID: ch.ID, UserID: owner.ID}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("add owner participant: %v", err)
	}
	return ch
}

// Token ký JWT HS256 với subject là AuthID của user.
func Token(t *testing.T, u models.User) string {
	t.Helper()

	tok, err := utils.GenerateToken(u.AuthID, u.Email, u.Name, utils.TokenOptions{Secret: JWTSecret, TTL: time.Hour})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}
