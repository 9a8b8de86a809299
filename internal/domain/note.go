package domain

import (
	"strings"
	"time"
)

// 固定的心情分类。存储和比较统一使用小写形式。
const (
	MoodJoy       = "joy"
	MoodGratitude = "gratitude"
	MoodHope      = "hope"
)

// NormalizeMood 将用户输入的心情归一化为小写并去除首尾空白。
func NormalizeMood(mood string) string {
	return strings.ToLower(strings.TrimSpace(mood))
}

// IsValidMood 判断归一化后的心情是否属于固定分类。
func IsValidMood(mood string) bool {
	switch mood {
	case MoodJoy, MoodGratitude, MoodHope:
		return true
	}
	return false
}

// Note 表示墙上的一条善意留言。
// AuthorID 在创建后不可变更；只有 Text 和 Mood 允许修改。
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"index:idx_author_id;not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Mood      string    `gorm:"type:varchar(32);index:idx_mood;not null" json:"mood"`
	Image     string    `gorm:"type:varchar(255)" json:"image,omitempty"` // 可选图片引用, 例如 "/images/cat_1712345678.png"
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// NoteWithAuthor 是列表查询返回的行：留言加上作者的用户名。
type NoteWithAuthor struct {
	Note     `gorm:"embedded"`
	Username string `json:"username"`
}
