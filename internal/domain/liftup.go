package domain

import "time"

// Liftup 表示预置的鼓励语录，是首页轮换展示的候选集。
type Liftup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Emoji     string    `gorm:"type:varchar(16)" json:"emoji"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

// FeaturedPrompt 是当前被"高亮"的那条记录，由后台轮换任务整体替换。
// 它不落库，只存在于进程外的共享单元 (Redis) 中。
type FeaturedPrompt struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Emoji     string    `json:"emoji"`
	RotatedAt time.Time `json:"rotated_at"`
}
