package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          int
		DisableTLS    bool
	}

	SpeechConfig struct {
		GatewayURL string
		Language   string
	}

	ServerConfig struct {
		Host            string
		Port            int
		ShutdownTimeout time.Duration
	}

	Config struct {
		Env             string
		Debug           bool
		TestMode        bool
		AppName         string
		Build           string
		FrontendBaseURL string
		RollbarToken    string

		Server   ServerConfig
		Database DatabaseConfig
		Speech   SpeechConfig
	}
)

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "CampusAid")
	conf.SetDefault("frontendBaseURL", "http://localhost:3000")
	conf.SetDefault("server.host", "0.0.0.0")
	conf.SetDefault("server.port", 8000)
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.name", "campusaid")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", 5432)
	conf.SetDefault("database.disableTLS", true)
	conf.SetDefault("speech.language", "en-US")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:             env,
		Debug:           conf.GetBool("debug"),
		TestMode:        conf.GetBool("testMode"),
		AppName:         conf.GetString("appName"),
		Build:           conf.GetString("build"),
		FrontendBaseURL: conf.GetString("frontendBaseURL"),
		RollbarToken:    conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            conf.GetString("server.host"),
			Port:            conf.GetInt("server.port"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("database.engine"),
			Name:          conf.GetString("database.name"),
			User:          conf.GetString("database.user"),
			Password:      conf.GetString("database.password"),
			AdminUser:     conf.GetString("database.adminUser"),
			AdminPassword: conf.GetString("database.adminPassword"),
			Host:          conf.GetString("database.host"),
			Port:          conf.GetInt("database.port"),
			DisableTLS:    conf.GetBool("database.disableTLS"),
		},
		Speech: SpeechConfig{
			GatewayURL: conf.GetString("speech.gatewayURL"),
			Language:   conf.GetString("speech.language"),
		},
	}
}
