package model

import (
	"time"

	"gorm.io/gorm"
)

// gorm自带的gorm.Model里ID是uint类型，这里统一成uint64，所以自己定义base结构体
type BaseModel struct {
	ID        uint64 `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
