package config

import (
	_ "embed"
	"os"
	"path/filepath"
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
	logLevel := os.Getenv("SF_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("SF_DEBUG") == "true"
}

// ShowExceptions controls whether error details reach API clients.
// Off by default: server-caused failures surface as a generic message.
func ShowExceptions() bool {
	return os.Getenv("SHOW_EXCEPTIONS") == "1"
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	return port
}

// GetDBDsn returns the relational store DSN. A postgres URL or keyword/value
// string selects the postgres driver, anything else is treated as an sqlite
// file path.
func GetDBDsn() string {
	dsn := os.Getenv("DB_PATH")
	if dsn == "" {
		dsn = filepath.Join(GetDataFolderPath(), GetName()+".db")
	}
	return dsn
}

func GetDataFolderPath() string {
	dataFolderPath := os.Getenv("SF_DATA_FOLDER")
	if dataFolderPath == "" {
		dataFolderPath = "data"
	}
	return dataFolderPath
}

// GetStoragePrefix returns the root prefix under which all blob keys live.
func GetStoragePrefix() string {
	prefix := os.Getenv("STORAGE_PREFIX")
	if prefix == "" {
		prefix = "/storage"
	}
	return strings.TrimSuffix(prefix, "/")
}

func GetBlobPath() string {
	return filepath.Join(GetDataFolderPath(), "blob.db")
}

// GetDropboxToken returns the Dropbox access token. When empty, the local
// bbolt blob store is used instead.
func GetDropboxToken() string {
	return os.Getenv("DBX_TOKEN")
}

// GetPasswordSalt returns the salt appended to passwords before hashing.
func GetPasswordSalt() string {
	return os.Getenv("SALT")
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("SF_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}
