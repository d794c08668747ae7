package model

// Video结构，归属于唯一的Owner，未发布的视频只有作者和员工可见
type Video struct {
	BaseModel
	OwnerID     uint64 `gorm:"not null;index"` // 作者ID，用于关联用户
	Name        string `gorm:"not null"`
	IsPublished bool   `gorm:"default:false"`
	// 冗余计数器，缓存的是likes表里该视频的行数，只允许点赞服务在事务内修改
	TotalLikes uint64 `gorm:"default:0"`

	// 外键OwnerID和User表的ID
	Owner User        `gorm:"foreignKey:OwnerID;references:ID"`
	Files []VideoFile `gorm:"foreignKey:VideoID"`
}

func (Video) TableName() string {
	return "videos"
}
