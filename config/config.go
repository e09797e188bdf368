package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/vnkhanh/challenge-server/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Cfg giữ settings đã nạp lúc khởi động.
var Cfg Settings

type Settings struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"challenges"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	DBTimeZone string `env:"DB_TIMEZONE" envDefault:"UTC"`

	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`
	JWTIssuer   string        `env:"JWT_ISSUER"`
	JWTAudience string        `env:"JWT_AUDIENCE"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`

	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	SupabaseURL    string `env:"SUPABASE_URL"`
	SupabaseKey    string `env:"SUPABASE_KEY"`
	SupabaseBucket string `env:"SUPABASE_BUCKET" envDefault:"avatars"`

	InviteRatePerMin int `env:"INVITE_RATE_PER_MIN" envDefault:"20"`
	InviteBurst      int `env:"INVITE_BURST" envDefault:"5"`
}

// LoadSettings đọc .env (nếu có) rồi parse biến môi trường vào Cfg.
func LoadSettings() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using process environment")
	}

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	Cfg = s
	return &s, nil
}

func (s *Settings) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		s.DBHost, s.DBUser, s.DBPassword, s.DBName, s.DBPort, s.DBSSLMode, s.DBTimeZone)
}

// ConnectDB khởi tạo kết nối PostgreSQL và migrate bảng
func ConnectDB(s *Settings) {
	db, err := gorm.Open(postgres.Open(s.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := InitDB(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("Connected to PostgreSQL & migrated successfully")
}

// InitDB migrate toàn bộ model rồi gán db làm kết nối dùng chung.
func InitDB(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return err
	}
	DB = db
	return nil
}
