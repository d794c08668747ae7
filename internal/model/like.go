package model

import (
	"errors"

	"gorm.io/gorm"
)

// ErrLikeUnpublished 在任何写入发生之前拦截对未发布视频的点赞
var ErrLikeUnpublished = errors.New("不能给未发布的视频点赞")

// 用户与视频的关联关系，uniqueIndex利用的是数据库的“自动查重”能力，而不是gorm的
type Like struct {
	BaseModel
	UserID  uint64 `gorm:"not null;uniqueIndex:idx_user_video"` // 设置联合唯一索引
	VideoID uint64 `gorm:"not null;uniqueIndex:idx_user_video"` // 确保一个用户对一个视频只能点赞一次
}

// 想精确控制表名，或表名不符合GORM的复数规则，就必须实现TableName()方法规定表名
func (Like) TableName() string {
	return "likes"
}

// BeforeCreate 是gorm的钩子，在INSERT之前跑在同一个事务(tx)里
// 校验失败直接返回error，整个Create被放弃，不会产生任何写入
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	var video Video
	if err := tx.Select("is_published").First(&video, l.VideoID).Error; err != nil {
		return err
	}
	if !video.IsPublished {
		return ErrLikeUnpublished
	}
	return nil
}
