package utils

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Session SessionConfig
	Reset   ResetConfig
	Admin   AdminConfig
	Kafka   KafkaConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	AllowedOrigins []string
}

type SessionConfig struct {
	ExpiryHours int
}

type ResetConfig struct {
	ExpiryMinutes int
	Length        int
}

// AdminConfig seeds the single administrator account. Sign-up never grants admin.
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// LoadConfig reads path (a .env file) when it exists, then lets the
// environment override every key.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "fatec-reserve")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("RESET_EXPIRY_MINUTES", 15)
	v.SetDefault("RESET_CODE_LENGTH", 6)
	v.SetDefault("ADMIN_NAME", "Administrador")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "fatec-reserve.reservations")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Port:           v.GetString("PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			AllowedOrigins: SplitCSV(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Session: SessionConfig{
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Reset: ResetConfig{
			ExpiryMinutes: v.GetInt("RESET_EXPIRY_MINUTES"),
			Length:        v.GetInt("RESET_CODE_LENGTH"),
		},
		Admin: AdminConfig{
			Name:     v.GetString("ADMIN_NAME"),
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		Kafka: KafkaConfig{
			Brokers: SplitCSV(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
	}

	return config, nil
}

func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
