package repository

import (
	"Vega_Stream/internal/model"
	"Vega_Stream/internal/policy"

	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(video *model.Video) error
	CreateFile(file *model.VideoFile) error
	FindByID(videoID uint64) (*model.Video, error)
	// FindPublishedByID 只找已发布的视频，点赞/取消点赞的目标检查用它
	FindPublishedByID(videoID uint64) (*model.Video, error)
	// FindVisible 按可见性规则分页列出视频，返回本页数据和总条数
	FindVisible(id policy.Identity, offset, limit int) ([]model.Video, int64, error)
	// FindPublishedWithOwner 不分页地列出全部已发布视频（带作者），给员工的ID列表用
	FindPublishedWithOwner() ([]model.Video, error)
	Publish(videoID uint64) error

	IncrementLikeCount(videoID uint64) error
	DecrementLikeCount(videoID uint64) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 videoRepository 实例
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{db: tx}
}

func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

func (r *videoRepository) CreateFile(file *model.VideoFile) error {
	return r.db.Create(file).Error
}

// 利用videoID找视频，preload其中的Owner和Files结构
func (r *videoRepository) FindByID(videoID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").Preload("Files").First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) FindPublishedByID(videoID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").Where("is_published = ?", true).First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// 可见性规则统一由policy.VisibleVideos这个scope表达，列表和计数必须用同一个scope
func (r *videoRepository) FindVisible(id policy.Identity, offset, limit int) ([]model.Video, int64, error) {
	var total int64
	err := r.db.Model(&model.Video{}).Scopes(policy.VisibleVideos(id)).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err = r.db.Scopes(policy.VisibleVideos(id)).
		Preload("Owner").
		Preload("Files").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) FindPublishedWithOwner() ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Preload("Owner").Where("is_published = ?", true).Find(&videos).Error
	return videos, err
}

func (r *videoRepository) Publish(videoID uint64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).Update("is_published", true).Error
}

func (r *videoRepository) IncrementLikeCount(videoID uint64) error {
	// 使用GORM的表达式来执行原子更新：UPDATE `videos` SET `total_likes` = `total_likes` + 1 WHERE id = ?
	// 一定要用相对形式让数据库自己做加法，应用层读完再写回会在并发点赞下丢更新
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).UpdateColumn("total_likes", gorm.Expr("total_likes + ?", 1)).Error
}

func (r *videoRepository) DecrementLikeCount(videoID uint64) error {
	// UPDATE `videos` SET `total_likes` = `total_likes` - 1 WHERE id = ? AND total_likes > 0
	// total_likes > 0 兜底，计数器永远不会被减成负数
	return r.db.Model(&model.Video{}).Where("id = ? AND total_likes > 0", videoID).UpdateColumn("total_likes", gorm.Expr("total_likes - ?", 1)).Error
}
