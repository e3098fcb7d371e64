package app

import (
	"strings"

	"github.com/madprep/madprep-backend/internal/logger"
	"github.com/madprep/madprep-backend/internal/utils"
)

type Config struct {
	ServiceName  string
	Environment  string
	JWTSecretKey string
	PromptsPath  string
	AllowOrigins []string
	Port         string
}

func LoadConfig(log *logger.Logger) Config {
	origins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "", log), ",")
	var allowOrigins []string
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allowOrigins = append(allowOrigins, o)
		}
	}
	return Config{
		ServiceName:  utils.GetEnv("SERVICE_NAME", "madprep-backend", log),
		Environment:  utils.GetEnv("ENVIRONMENT", "development", log),
		JWTSecretKey: utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		PromptsPath:  utils.GetEnv("PROMPTS_PATH", "configs/prompts.yaml", log),
		AllowOrigins: allowOrigins,
		Port:         utils.GetEnv("PORT", "8080", log),
	}
}
