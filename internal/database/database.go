package database

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// DefaultCategories seeds the partnership category table.
var DefaultCategories = []string{"카페", "음식점", "헬스", "뷰티", "교육", "문화"}

var memorySeq atomic.Uint64

// DB is the sandbox's persistence, a thin query layer over gorm.
type DB struct {
	conn *gorm.DB
}

// Init opens the database named by dsn, migrates the schema and seeds the
// categories that are missing. A postgres URL or keyword DSN opens postgres;
// anything else is a sqlite DSN, and an empty one opens a private in-memory
// database.
func Init(dsn string, categories ...string) (*DB, error) {
	conn, err := gorm.Open(dialector(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if conn.Dialector.Name() == "sqlite" {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		// One connection keeps a shared-cache memory database alive and
		// serializes writers.
		sqlDB.SetMaxOpenConns(1)
	}

	err = conn.AutoMigrate(
		&User{},
		&ResetToken{},
		&Category{},
		&Store{},
		&Post{},
		&PostImage{},
		&PartnerRequest{},
		&Notification{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if len(categories) == 0 {
		categories = DefaultCategories
	}
	for _, name := range categories {
		if err := conn.FirstOrCreate(&Category{}, Category{Name: name}).Error; err != nil {
			return nil, fmt.Errorf("failed to seed category %s: %w", name, err)
		}
	}

	return &DB{conn: conn}, nil
}

func dialector(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return postgres.Open(dsn)
	case dsn == "":
		name := fmt.Sprintf("partnerhub-%d-%d", time.Now().UnixNano(), memorySeq.Add(1))
		return sqlite.Open("file:" + name + "?mode=memory&cache=shared")
	default:
		return sqlite.Open(dsn)
	}
}

// Close releases the underlying connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
