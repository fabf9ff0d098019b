package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// Config struct to hold the configuration
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	BaseURL     string `envconfig:"WATI_API_BASE_URL" default:"https://live-mt-server.wati.io"`
	TenantID    string `envconfig:"WATI_TENANT_ID" default:""`
	AuthToken   string `envconfig:"WATI_AUTH_TOKEN" default:""`
	DownloadDir string `envconfig:"DOWNLOAD_DIR" default:"downloads"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load function to load the configuration from the environment variables
func Load() (Config, error) {
	err := godotenv.Load(".env")
	if err != nil {
		log.Debug("No .env file found")
	}

	var c Config
	err = envconfig.Process("", &c)
	if err != nil {
		return Config{}, fmt.Errorf("unable to get envconfig: %w", err)
	}

	return c, nil
}
