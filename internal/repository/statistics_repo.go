package repository

import (
	"Vega_Stream/internal/model"

	"gorm.io/gorm"
)

// StatRow 是统计查询的一行结果：某个用户名下所有已发布视频的点赞总和
type StatRow struct {
	Username string `json:"username"`
	LikesSum uint64 `json:"likes_sum"`
}

// 两种写法算的是同一个东西，留两份是为了对比读侧的代价和边界行为
// 并列时的第二排序键统一用username，username唯一，所以输出顺序是完全确定的
type StatisticsRepository interface {
	// SumByOwnerGroupBy 对已发布视频按作者分组求和
	// 没有任何已发布视频的用户不会出现在结果里（分组里根本没有他的行）
	SumByOwnerGroupBy() ([]StatRow, error)
	// SumByOwnerSubquery 对每个用户做相关子查询求和
	// 所有用户都会出现，没有已发布视频的用户likes_sum=0
	SumByOwnerSubquery() ([]StatRow, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) SumByOwnerGroupBy() ([]StatRow, error) {
	var rows []StatRow
	// SELECT users.username, COALESCE(SUM(videos.total_likes), 0) AS likes_sum
	// FROM videos JOIN users ... WHERE is_published GROUP BY username ORDER BY likes_sum DESC
	err := r.db.Model(&model.Video{}).
		Select("users.username AS username, COALESCE(SUM(videos.total_likes), 0) AS likes_sum").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("videos.is_published = ?", true).
		Group("users.username").
		Order("likes_sum DESC, username ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statisticsRepository) SumByOwnerSubquery() ([]StatRow, error) {
	var rows []StatRow
	// 外层扫users全表，每一行重新对videos算一次相关子查询，SUM的NULL用COALESCE补0
	// 子查询是手写SQL，不经过gorm的软删除过滤，所以deleted_at条件要自己带上
	err := r.db.Model(&model.User{}).
		Select(`users.username AS username,
			COALESCE((SELECT SUM(v.total_likes) FROM videos v
				WHERE v.owner_id = users.id AND v.is_published = ? AND v.deleted_at IS NULL), 0) AS likes_sum`, true).
		Order("likes_sum DESC, username ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
