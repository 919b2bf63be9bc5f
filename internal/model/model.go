// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 迁移全部表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Note{}, &UserNote{})
}

// Tables 按删除顺序返回全部模型
func Tables() []any {
	return []any{&UserNote{}, &Note{}, &User{}}
}
