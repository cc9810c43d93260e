// Package config exposes process settings for the todo API. Values come from
// the environment, optionally seeded from a .env file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultPort     = 3000
	defaultTokenTTL = time.Hour
	devTokenSecret  = "dev-secret-change-me"
)

// LoadEnv reads key=value pairs from the given files (".env" when none are
// given) into the process environment. Variables that are already set win.
// A missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("TODO_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("TODO_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("TODO_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("TODO_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "logs"
	}
	return logFolderPath
}

// GetListen returns the interface to bind; empty means all interfaces.
func GetListen() string {
	return os.Getenv("TODO_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("TODO_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return defaultPort
	}
	return port
}

// GetTokenSecret returns the HMAC key used to sign bearer tokens. The variable
// keeps the name the API has always used.
func GetTokenSecret() string {
	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		return devTokenSecret
	}
	return secret
}

// IsDevTokenSecret reports whether tokens are being signed with the built-in
// development key.
func IsDevTokenSecret() bool {
	return GetTokenSecret() == devTokenSecret
}

// GetTokenTTL parses TODO_TOKEN_TTL as a Go duration ("90m", "1h").
func GetTokenTTL() time.Duration {
	raw := strings.TrimSpace(os.Getenv("TODO_TOKEN_TTL"))
	if raw == "" {
		return defaultTokenTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		return defaultTokenTTL
	}
	return ttl
}
