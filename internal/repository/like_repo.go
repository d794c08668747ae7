package repository

import (
	"Vega_Stream/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *model.Like) error
	Find(userID, videoID uint64) (*model.Like, error)
	// Delete 返回实际删掉的行数，0表示本来就没有这条点赞
	Delete(userID, videoID uint64) (int64, error)
	CountByVideo(videoID uint64) (int64, error)

	WithTx(tx *gorm.DB) LikeRepository
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 likeRepository 实例
func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

func (r *likeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *likeRepository) Find(userID, videoID uint64) (*model.Like, error) {
	var result model.Like
	err := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete 用原生SQL做物理删除，不走gorm的软删除
// likes表上有(user_id, video_id)联合唯一索引，软删除的行会一直占着索引，用户就再也赞不回来了
func (r *likeRepository) Delete(userID, videoID uint64) (int64, error) {
	result := r.db.Exec("DELETE FROM likes WHERE user_id = ? AND video_id = ?", userID, videoID)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *likeRepository) CountByVideo(videoID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}
