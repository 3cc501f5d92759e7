package app

import (
	"time"

	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/utils"
)

type Config struct {
	JWTSecretKey           string
	AccessTokenTTL         time.Duration
	RefreshTokenTTL        time.Duration
	AssignWindowDays       int
	ReviewDailyCap         int
	PunctuationInsensitive bool
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	assignWindowDays := utils.GetEnvAsInt("ASSIGN_WINDOW_DAYS", 7, log)
	reviewDailyCap := utils.GetEnvAsInt("REVIEW_DAILY_CAP", 10, log)
	punctInsensitive := utils.GetEnvAsBool("GRADING_PUNCT_INSENSITIVE", false, log)
	return Config{
		JWTSecretKey:           jwtSecretKey,
		AccessTokenTTL:         time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL:        time.Duration(refreshTokenTTLSeconds) * time.Second,
		AssignWindowDays:       assignWindowDays,
		ReviewDailyCap:         reviewDailyCap,
		PunctuationInsensitive: punctInsensitive,
	}
}
