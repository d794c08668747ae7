package main

import (
	"Vega_Stream/internal/data"
	"Vega_Stream/internal/handler"
	"Vega_Stream/internal/model"
	"Vega_Stream/internal/repository"
	"Vega_Stream/internal/router"
	"Vega_Stream/internal/service"
	"Vega_Stream/pkg/config"
	"Vega_Stream/pkg/logger"
	"Vega_Stream/pkg/storage"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// 加载配置（.env + 环境变量 + 默认值）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	// 初始化logger
	logger.InitLogger(cfg.LogFile)

	// 初始化对象存储，上传的清晰度文件都进OSS
	ossStore, err := storage.NewOSSStore(cfg.OSSEndpoint, cfg.OSSBucket, cfg.OSSAccessKeyID, cfg.OSSAccessKeySecret)
	if err != nil {
		logger.Log.Fatalf("无法连接到OSS: %v", err)
	}
	logger.Log.Info("OSS连接成功")

	// 这个mysql包是gorm的第三方承包商，gorm.Open()后可以执行gorm的简化语句
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.Info("数据库连接成功")
	// db.AutoMigrate(),没有这个表就创建,没有属性列则创建列,没有约束则增加约束;不会主动删除和修改
	err = db.AutoMigrate(&model.User{}, &model.Video{}, &model.VideoFile{}, &model.Like{})
	if err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)

	// 点赞服务的Like行和计数器必须在同一个事务里变动，所以走工作单元
	uow := data.NewUnitOfWork(db, likeRepo, videoRepo)

	userService := service.NewUserService(userRepo)
	videoService := service.NewVideoService(videoRepo, ossStore)
	likeService := service.NewLikeService(uow)
	groupByStats := service.NewGroupByStatistics(statsRepo)
	subqueryStats := service.NewSubqueryStatistics(statsRepo)

	userHandler := handler.NewUserHandler(userService)
	videoHandler := handler.NewVideoHandler(videoService)
	likeHandler := handler.NewLikeHandler(likeService, videoService)
	statisticsHandler := handler.NewStatisticsHandler(groupByStats, subqueryStats)

	r := router.SetupRouter(userHandler, videoHandler, likeHandler, statisticsHandler)
	logger.Log.Printf("服务器将在%s启动", cfg.ListenAddr)

	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}
