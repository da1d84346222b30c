// Package database bootstraps the relational store through gorm, selecting
// the postgres or sqlite driver from the DSN shape.
package database

import (
	"io/fs"
	"log"
	"os"
	"path"
	"strings"

	"github.com/moohomor/storyforge/config"
	"github.com/moohomor/storyforge/database/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func initModels() error {
	models := []any{
		&model.User{},
		&model.Story{},
		&model.Review{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// IsPostgresDSN reports whether dsn addresses a postgres server rather than
// an sqlite file.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

func InitDB(dsn string) error {
	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}

	var dialector gorm.Dialector
	if IsPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	} else {
		if err := os.MkdirAll(path.Dir(dsn), fs.ModePerm); err != nil {
			return err
		}
		dialector = sqlite.Open(dsn + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=10000")
	}

	var err error
	db, err = gorm.Open(dialector, c)
	if err != nil {
		return err
	}

	return initModels()
}

func CloseDB() error {
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}
