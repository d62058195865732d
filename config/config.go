package config

import (
	"fmt"
	"os"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database selected by DB_DRIVER (sqlite by default, mysql
// for production). Connection attempts are retried with exponential backoff
// a bounded number of times before giving up.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "taskboard.db"
	}

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	var db *gorm.DB
	op := func() error {
		var err error
		db, err = gorm.Open(dialector, &gorm.Config{})
		return err
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, fmt.Errorf("connect to %s database: %w", driver, err)
	}
	return db, nil
}
