package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
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
	logLevel := os.Getenv("DESTEK_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("DESTEK_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("DESTEK_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/destek-ui"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("DESTEK_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetAdminUsername returns the distinguished username that may delete any
// note regardless of authorship. It is a deployment constant, not a role
// stored in the database.
func GetAdminUsername() string {
	adminUser := os.Getenv("DESTEK_ADMIN_USER")
	if adminUser == "" {
		adminUser = "helpadmin"
	}
	return adminUser
}

// GetInitToken returns the shared secret protecting the bootstrap endpoints.
// An empty value means bootstrap over HTTP is disabled entirely.
func GetInitToken() string {
	return os.Getenv("DESTEK_INIT_TOKEN")
}
