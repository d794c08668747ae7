package model

// 视频清晰度的固定枚举
const (
	QualityHD  = "HD"  // 720p
	QualityFHD = "FHD" // 1080p
	QualityUHD = "UHD" // 4K
)

// VideoFile 是一个视频的单路清晰度文件，二进制内容存放在对象存储里，这里只记引用
// 核心点赞/统计逻辑完全不碰这张表
type VideoFile struct {
	BaseModel
	VideoID uint64 `gorm:"not null;index"`
	Quality string `gorm:"type:varchar(3);not null"` // HD / FHD / UHD
	FileURL string `gorm:"not null"`                 // 对象存储里的地址
}

func (VideoFile) TableName() string {
	return "video_files"
}
