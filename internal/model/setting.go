// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// Setting 对应于数据库中的 'settings' 表，一个通用的键值映射。
// 写入为 upsert 语义，同键并发写入以后写者为准。
type Setting struct {
	Key       string    `gorm:"type:varchar(64);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Setting) TableName() string {
	return "settings"
}
