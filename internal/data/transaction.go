package data

import (
	"Vega_Stream/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork 定义了我们事务管理器的接口
type UnitOfWork interface {
	// Execute 将一个函数包裹在数据库事务中执行。
	// 它会为这个函数提供能在事务中工作的 Repositories。
	Execute(func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有所有需要在同一个事务中操作的 Repository。
// 点赞服务要求Like行和冗余计数器在同一个事务里变动，这两个Repo缺一不可。
type TransactionalRepositories struct {
	LikeRepo  repository.LikeRepository
	VideoRepo repository.VideoRepository
}

// db是事务的入口和管理者
type gormUnitOfWork struct {
	db        *gorm.DB
	likeRepo  repository.LikeRepository
	videoRepo repository.VideoRepository
}

// NewUnitOfWork 创建一个新的、基于GORM的“工作单元”。
// 注意，它接收的是原始的、非事务的 repositories。
func NewUnitOfWork(db *gorm.DB, likeRepo repository.LikeRepository, videoRepo repository.VideoRepository) UnitOfWork {
	return &gormUnitOfWork{
		db:        db,
		likeRepo:  likeRepo,
		videoRepo: videoRepo,
	}
}

// 契约：fn func(repos *TransactionalRepositories) error
// fn返回error，gorm发ROLLBACK，tx上的操作被撤销；返回nil则COMMIT
func (u *gormUnitOfWork) Execute(fn func(repos *TransactionalRepositories) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		// 临时创建“一次性”的、绑定了特定事务的Repo副本
		transactionalRepos := &TransactionalRepositories{
			LikeRepo:  u.likeRepo.WithTx(tx),
			VideoRepo: u.videoRepo.WithTx(tx),
		}
		return fn(transactionalRepos)
	})
}
