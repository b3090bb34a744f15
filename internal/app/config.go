package app

import (
	"strings"
	"time"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/utils"
)

type Config struct {
	Addr           string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	ApiKeyTTL      time.Duration
	RedisAddr      string
	AllowedOrigins []string

	RegistryName        string
	RegistryDescription string
	RegistryURL         string
	RegistryVersion     string

	Environment string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	apiKeyTTLSeconds := utils.GetEnvAsInt("API_KEY_TTL", 90*24*3600, log)
	addr := utils.GetEnv("LISTEN_ADDR", ":8080", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	origins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log)

	var allowed []string
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}

	return Config{
		Addr:           addr,
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		ApiKeyTTL:      time.Duration(apiKeyTTLSeconds) * time.Second,
		RedisAddr:      redisAddr,
		AllowedOrigins: allowed,

		RegistryName:        utils.GetEnv("REGISTRY_NAME", "yigyaps", log),
		RegistryDescription: utils.GetEnv("REGISTRY_DESCRIPTION", "YigYaps skill registry", log),
		RegistryURL:         utils.GetEnv("REGISTRY_URL", "http://localhost:8080", log),
		RegistryVersion:     utils.GetEnv("REGISTRY_VERSION", "1.0.0", log),

		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
	}
}
