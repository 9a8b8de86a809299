package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"kindness-wall/internal/domain"
)

// MigrateDB handles all database migrations using the provided GORM DB instance.
// 返回错误以便调用者知道迁移是否成功。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	// users 表使用自定义 SQL 创建：TEXT 列和带长度限制的唯一索引
	// 交给 AutoMigrate 处理容易出问题
	if err := migrateUsersTable(db); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}

	if err := migrateNotesTable(db); err != nil {
		return fmt.Errorf("failed to migrate notes table: %w", err)
	}

	// liftups 表结构简单，交给 AutoMigrate
	if err := db.AutoMigrate(&domain.Liftup{}); err != nil {
		logrus.Errorf("Failed to auto-migrate liftups table: %v", err)
		return fmt.Errorf("failed to auto-migrate liftups table: %w", err)
	}

	// 预置语录为空时写入种子数据，轮换任务才有候选集可选
	if err := seedLiftups(db); err != nil {
		return fmt.Errorf("failed to seed liftups: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}

// migrateUsersTable 处理 users 表迁移
func migrateUsersTable(db *gorm.DB) error {
	var count int64
	db.Raw("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = 'users'").Count(&count)

	if count > 0 {
		// 表已存在，让 AutoMigrate 补齐缺失的列或索引
		if err := db.AutoMigrate(&domain.User{}); err != nil {
			return fmt.Errorf("failed to migrate user indexes: %w", err)
		}
		logrus.Info("Users table schema checked/updated successfully")
		return nil
	}

	sql := `
	CREATE TABLE users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(191) NOT NULL, -- 限制长度以匹配索引
		password TEXT NOT NULL,
		email VARCHAR(191) NOT NULL,
		created_at DATETIME(3),
		updated_at DATETIME(3),
		UNIQUE INDEX idx_username (username),
		UNIQUE INDEX idx_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
	`
	if err := db.Exec(sql).Error; err != nil {
		logrus.Errorf("Failed to create users table: %v", err)
		return fmt.Errorf("failed to create users table: %w", err)
	}
	logrus.Info("Users table created successfully")
	return nil
}

// migrateNotesTable 处理 notes 表迁移
func migrateNotesTable(db *gorm.DB) error {
	var count int64
	db.Raw("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = 'notes'").Count(&count)

	if count > 0 {
		if err := db.AutoMigrate(&domain.Note{}); err != nil {
			return fmt.Errorf("failed to migrate note indexes: %w", err)
		}
		logrus.Info("Notes table schema checked/updated successfully")
		return nil
	}

	sql := `
	CREATE TABLE notes (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		author_id BIGINT UNSIGNED NOT NULL,
		text TEXT NOT NULL,
		mood VARCHAR(32) NOT NULL, -- 统一存小写: joy / gratitude / hope
		image VARCHAR(255),
		created_at DATETIME(3),
		updated_at DATETIME(3),
		INDEX idx_author_id (author_id),
		INDEX idx_mood (mood),
		INDEX idx_created_at (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
	`
	if err := db.Exec(sql).Error; err != nil {
		logrus.Errorf("Failed to create notes table: %v", err)
		return fmt.Errorf("failed to create notes table: %w", err)
	}
	logrus.Info("Notes table created successfully")
	return nil
}

// seedLiftups 在候选集为空时写入预置的鼓励语录
func seedLiftups(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Liftup{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count liftups: %w", err)
	}
	if count > 0 {
		return nil // 已有数据，不重复写入
	}

	seeds := []domain.Liftup{
		{Text: "You are doing better than you think.", Emoji: "🌸"},
		{Text: "Small acts of kindness ripple further than you know.", Emoji: "💌"},
		{Text: "Someone smiled today because of you.", Emoji: "😊"},
		{Text: "Be gentle with yourself, you are growing.", Emoji: "🌱"},
		{Text: "Gratitude turns what we have into enough.", Emoji: "🙏"},
		{Text: "Hope is the thing with feathers.", Emoji: "🕊️"},
		{Text: "Your presence makes the world a little warmer.", Emoji: "☀️"},
		{Text: "Every day is a fresh start.", Emoji: "🌅"},
	}
	if err := db.Create(&seeds).Error; err != nil {
		return fmt.Errorf("failed to insert liftup seeds: %w", err)
	}
	logrus.Infof("Seeded %d liftup records", len(seeds))
	return nil
}
