package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	CompletedDir = "downloads/completed"
	OngoingDir   = "downloads/ongoing"

	defaultRetention = time.Hour
)

type Config struct {
	Port        string
	DatabaseURL string
	ExecDir     string
	Retention   time.Duration

	AbsCompletedDir string
	AbsOngoingDir   string
}

var AppConfig *Config

func Load() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, download history is disabled")
	}

	retention := defaultRetention
	if v := os.Getenv("JOB_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JOB_RETENTION %q: %w", v, err)
		}
		retention = d
	}

	execDir := getExecutableDir()
	absOngoingDir := filepath.Join(execDir, OngoingDir)
	absCompletedDir := filepath.Join(execDir, CompletedDir)

	AppConfig = &Config{
		Port:            port,
		DatabaseURL:     databaseURL,
		ExecDir:         execDir,
		Retention:       retention,
		AbsCompletedDir: absCompletedDir,
		AbsOngoingDir:   absOngoingDir,
	}

	if err := os.MkdirAll(absOngoingDir, 0755); err != nil {
		return err
	}
	if err := os.MkdirAll(absCompletedDir, 0755); err != nil {
		return err
	}

	return nil
}

func getExecutableDir() string {
	if dir := os.Getenv("EXEC_DIR"); dir != "" {
		return dir
	}
	return "."
}
