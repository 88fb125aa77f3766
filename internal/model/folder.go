// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// Folder 对应于数据库中的 'folders' 表，用于组织对话。
type Folder struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`
	// Name 是文件夹的显示名称。
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	// ParentID 指向父级文件夹，用于构建层级结构。NULL 表示顶级文件夹。
	ParentID  *string   `gorm:"type:varchar(36);index" json:"parentId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Folder) TableName() string {
	return "folders"
}
