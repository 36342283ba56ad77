package database

import (
	"context"
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Open connects to the sqlite database and migrates the schema.
// The handle is returned rather than stored globally so services
// can take it as a dependency.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("数据库连接成功")
	return db, nil
}

// Migrate creates or updates the table structure.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Article{},
		&Comment{},
		&Tag{},
	)
	if err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// OpenRedis connects to redis. A failed connection is not fatal:
// callers get a nil client and must degrade to uncached reads.
func OpenRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("Redis连接失败，将使用降级模式: %v", err)
		return nil
	}

	log.Println("Redis连接成功")
	return client
}
