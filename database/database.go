package database

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/andyrosty/diet-fitness/config"
	"github.com/andyrosty/diet-fitness/logger"
)

// Init opens the database connection described by the configured DSN.
// "memory" (or an empty DSN) selects an in-memory SQLite database,
// postgres-style DSNs select the postgres driver, anything else is
// treated as a SQLite file path.
func Init() (*gorm.DB, error) {
	dsn := config.AppConfig.Database.DSN

	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  config.AppConfig.Environment == "development",
		},
	)
	gormConfig := &gorm.Config{Logger: gormLogger}

	switch {
	case dsn == "" || dsn == "memory":
		logger.Infof("initializing in-memory SQLite database")
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), gormConfig)
	case isPostgresDSN(dsn):
		logger.Infof("connecting to postgres database")
		return gorm.Open(postgres.Open(dsn), gormConfig)
	default:
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		logger.Infof("opening SQLite database at %s", dsn)
		return gorm.Open(sqlite.Open(dsn), gormConfig)
	}
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}
