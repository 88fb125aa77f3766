// Package model 定义了与数据库表对应的 Go 结构体。
package model

import (
	"strings"
	"time"
)

// Attachment 对应于数据库中的 'attachments' 表。
// 每条记录在对象存储中都有且仅有一个二进制对象与之对应，
// 删除对话时两者必须一并删除。
type Attachment struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID string `gorm:"type:varchar(36);index;not null" json:"chatId"`
	// Name 是上传时的原始文件名。
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	// MimeType 是上传方声明的 MIME 类型，不做嗅探校验。
	MimeType string `gorm:"type:varchar(128);not null" json:"mimeType"`
	// BlobKey 是对象存储中的键，格式为 "<chatId>/<唯一后缀>-<文件名>"。
	BlobKey   string    `gorm:"type:varchar(512);not null" json:"blobKey"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// IsImage 判断该附件是否为图片类型。
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.MimeType, "image/")
}

// TableName 指定了此模型在数据库中对应的表名。
func (Attachment) TableName() string {
	return "attachments"
}
