// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"errors"

	"private-chat-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository 接口定义了全局键值配置的数据操作方法。
type SettingRepository interface {
	// Get 返回键对应的值；键不存在时返回空字符串且不报错。
	Get(key string) (string, error)
	// Set 以 upsert 语义写入键值，同键并发写入以后写者为准。
	Set(key, value string) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 创建一个新的 SettingRepository 实例。
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Get 根据键查找配置值。
func (r *settingRepository) Get(key string) (string, error) {
	var setting model.Setting
	err := r.db.Where("`key` = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// Set 插入或更新一条配置记录。
func (r *settingRepository) Set(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model.Setting{Key: key, Value: value}).Error
}
