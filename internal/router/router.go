package router

import (
	"Vega_Stream/internal/handler"
	"Vega_Stream/internal/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(userHandler handler.UserHandler, videoHandler handler.VideoHandler, likeHandler handler.LikeHandler, statisticsHandler handler.StatisticsHandler) *gin.Engine {
	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	apiV1 := r.Group("/api/v1")
	{
		userGroup := apiV1.Group("/users")
		{
			userGroup.POST("/register", userHandler.Register)
			userGroup.POST("/login", userHandler.Login)
		}

		// 浏览接口：匿名可访问，带token则按登录身份过滤可见性
		browse := apiV1.Group("/")
		browse.Use(middleware.OptionalAuthMiddleware())
		{
			browse.GET("/videos", videoHandler.ListVideos)
			browse.GET("/videos/:video_id", videoHandler.GetVideoByID)
		}

		authorized := apiV1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			authorized.GET("/profile", userHandler.GetProfile)

			authorized.POST("/videos", videoHandler.CreateVideo)
			authorized.POST("/videos/:video_id/files", videoHandler.UploadFile)
			authorized.POST("/videos/:video_id/publish", videoHandler.Publish)

			authorized.POST("/videos/:video_id/likes", likeHandler.LikeVideo)
			authorized.DELETE("/videos/:video_id/likes", likeHandler.UnlikeVideo)
		}

		// 员工专区：ID列表和两个统计端点
		staff := apiV1.Group("/")
		staff.Use(middleware.AuthMiddleware(), middleware.StaffOnlyMiddleware())
		{
			staff.GET("/videos/ids", videoHandler.ListVideoIDs)
			staff.GET("/videos/statistics-group-by", statisticsHandler.StatisticsGroupBy)
			staff.GET("/videos/statistics-subquery", statisticsHandler.StatisticsSubquery)
		}
	}

	return r
}
