package service

import (
	"Vega_Stream/internal/data"
	"Vega_Stream/internal/model"
	"errors"

	"gorm.io/gorm"
)

// LikeResult 是一次点赞的结果：Created区分“新点的赞”和“早就点过了”
// 并发竞争输掉唯一索引时Obj为nil、Created为false
type LikeResult struct {
	Obj     *model.Like
	Created bool
}

// UnlikeResult 是一次取消点赞的结果，本来就没点过赞时Deleted为false
type UnlikeResult struct {
	Deleted bool
}

// LikeService 负责点赞状态的切换，并让videos.total_likes和likes表在同一个事务里同步变动
// 调用方（handler）已经确认过目标视频存在且已发布
type LikeService interface {
	Like(userID, videoID uint64) (LikeResult, error)
	Unlike(userID, videoID uint64) (UnlikeResult, error)
}

type likeService struct {
	uow data.UnitOfWork
}

func NewLikeService(uow data.UnitOfWork) LikeService {
	return &likeService{uow: uow}
}

// Like 在一个事务里：查找或创建Like行，新建成功才给计数器+1
// 计数器用数据库侧的相对更新（total_likes = total_likes + 1），
// 两个不同用户同时点赞同一个视频时两次加法都会生效，不会丢更新
func (s *likeService) Like(userID, videoID uint64) (LikeResult, error) {
	var result LikeResult
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		existing, err := repos.LikeRepo.Find(userID, videoID)
		if err == nil {
			// 已经点过赞了，幂等返回已有的那一行，计数器不动
			result = LikeResult{Obj: existing, Created: false}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		like := &model.Like{UserID: userID, VideoID: videoID}
		if err := repos.LikeRepo.Create(like); err != nil {
			return err // 事务中，返回任何error都会导致回滚
		}
		if err := repos.VideoRepo.IncrementLikeCount(videoID); err != nil {
			return err
		}
		result = LikeResult{Obj: like, Created: true}
		return nil
	})
	if err != nil {
		// 同一(user, video)的并发重复插入，恰好有一个赢家，输家撞上唯一索引
		// 这是良性竞态，降级成“没有新建”，不向上抛错误
		if isDuplicateKeyErr(err) {
			return LikeResult{Obj: nil, Created: false}, nil
		}
		return LikeResult{}, err
	}
	return result, nil
}

// Unlike 在一个事务里：删掉(user, video)的Like行，真删掉了才给计数器-1
func (s *likeService) Unlike(userID, videoID uint64) (UnlikeResult, error) {
	var result UnlikeResult
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		deleted, err := repos.LikeRepo.Delete(userID, videoID)
		if err != nil {
			return err
		}
		if deleted > 0 {
			if err := repos.VideoRepo.DecrementLikeCount(videoID); err != nil {
				return err
			}
			result.Deleted = true
		}
		return nil
	})
	if err != nil {
		return UnlikeResult{}, err
	}
	return result, nil
}
