package service

import (
	"Vega_Stream/internal/data"
	"Vega_Stream/internal/model"
	"Vega_Stream/internal/repository"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 建一个独立的sqlite测试库（纯Go驱动，不需要cgo）
// sqlite是单写者，把连接池压到1，并发用例在连接池上排队而不是撞"database is locked"
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vega_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("无法打开测试数据库: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("无法获取底层连接池: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.User{}, &model.Video{}, &model.VideoFile{}, &model.Like{}); err != nil {
		t.Fatalf("测试数据库迁移失败: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, staff bool) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("密码加密失败: %v", err)
	}
	user := &model.User{
		Username: username,
		Password: string(hashed),
		IsStaff:  staff,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

func createTestVideo(t *testing.T, db *gorm.DB, ownerID uint64, name string, published bool, totalLikes uint64) *model.Video {
	t.Helper()
	video := &model.Video{
		OwnerID:     ownerID,
		Name:        name,
		IsPublished: published,
		TotalLikes:  totalLikes,
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("创建测试视频失败: %v", err)
	}
	return video
}

// newTestLikeService 把点赞服务和它依赖的Repo在测试库上组装起来
func newTestLikeService(db *gorm.DB) (LikeService, repository.LikeRepository) {
	likeRepo := repository.NewLikeRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	uow := data.NewUnitOfWork(db, likeRepo, videoRepo)
	return NewLikeService(uow), likeRepo
}

func reloadVideo(t *testing.T, db *gorm.DB, videoID uint64) *model.Video {
	t.Helper()
	var video model.Video
	if err := db.First(&video, videoID).Error; err != nil {
		t.Fatalf("重新读取视频失败: %v", err)
	}
	return &video
}
