package database

import (
	"fmt"
	"log"

	"github.com/BinLe1988/heartlink/configs"
	"github.com/BinLe1988/heartlink/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Initialize 初始化数据库连接
func Initialize(cfg *configs.Config) error {
	dbConfig := cfg.Database

	var dialector gorm.Dialector
	switch dbConfig.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.DBName)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbConfig.Host, dbConfig.Port, dbConfig.User, dbConfig.Password, dbConfig.DBName)
		dialector = postgres.Open(dsn)
	case "sqlite":
		// 本地开发和测试使用
		dialector = sqlite.Open(dbConfig.DBName)
	default:
		return fmt.Errorf("unsupported database driver: %s", dbConfig.Driver)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}

	// 自动迁移数据库表
	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("Database connected successfully")
	return nil
}

// Migrate 迁移所有模型
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Photo{},
		&models.Interest{},
		&models.UserPreferences{},
		&models.Match{},
		&models.Message{},
		&models.CommunityCategory{},
		&models.CommunityPost{},
		&models.PostVote{},
		&models.PostComment{},
		&models.SocialConnection{},
		&models.Notification{},
	)
}

// Close 关闭数据库连接
func Close() {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			log.Printf("Failed to get database connection: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
	}
}
