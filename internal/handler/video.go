package handler

import (
	"Vega_Stream/internal/dto"
	"Vega_Stream/internal/middleware"
	"Vega_Stream/internal/service"
	"Vega_Stream/pkg/logger"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	CreateVideo(c *gin.Context)
	UploadFile(c *gin.Context)
	Publish(c *gin.Context)

	ListVideos(c *gin.Context)
	GetVideoByID(c *gin.Context)
	ListVideoIDs(c *gin.Context)
}

type videoHandler struct {
	VideoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) VideoHandler {
	return &videoHandler{VideoService: videoService}
}

type CreateVideoRequest struct {
	Name string `json:"name" binding:"required"`
}

// parseVideoID 从URL的:video_id取出并转成uint64，URL中取回的是str
func parseVideoID(c *gin.Context) (uint64, bool) {
	videoID, err := strconv.ParseUint(c.Param("video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return 0, false
	}
	return videoID, true
}

// 创建视频：1、解析Body和认证后的身份 2、service层建未发布的视频 3、通过dto返回
func (h *videoHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("创建视频参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	id := middleware.IdentityFromContext(c)

	logCtx := logger.Log.WithField("owner_id", id.UserID)
	logCtx.Info("开始处理创建视频请求")

	video, err := h.VideoService.CreateVideo(id.UserID, req.Name)
	if err != nil {
		logCtx.WithError(err).Error("创建视频业务处理失败")
		sendErrorResponse(c, http.StatusInternalServerError, "创建视频失败")
		return
	}
	logCtx.WithField("video_id", video.ID).Info("视频创建成功")

	c.JSON(http.StatusCreated, gin.H{ // 使用201 Created状态码，更符合RESTful规范
		"message": "视频创建成功",
		"data":    dto.ToVideoResponse(video),
	})
}

// 上传清晰度文件：multipart表单，file是内容，quality是HD/FHD/UHD枚举
func (h *videoHandler) UploadFile(c *gin.Context) {
	videoID, ok := parseVideoID(c)
	if !ok {
		return
	}
	id := middleware.IdentityFromContext(c)

	quality := c.PostForm("quality")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "缺少上传文件")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无法读取上传文件")
		return
	}
	defer file.Close()

	logCtx := logger.Log.WithField("user_id", id.UserID).
		WithField("video_id", videoID).
		WithField("quality", quality)
	logCtx.Info("开始处理清晰度文件上传")

	videoFile, err := h.VideoService.AttachFile(id, videoID, quality, file)
	if err != nil {
		logCtx.WithError(err).Error("上传清晰度文件失败")
		switch {
		case errors.Is(err, service.ErrVideoNotFound):
			sendErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPermissionDenied):
			sendErrorResponse(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidQuality):
			sendErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			sendErrorResponse(c, http.StatusInternalServerError, "上传失败")
		}
		return
	}
	logCtx.WithField("file_id", videoFile.ID).Info("清晰度文件上传成功")

	c.JSON(http.StatusCreated, gin.H{
		"message": "上传成功",
		"data": dto.VideoFileResponse{
			ID:      videoFile.ID,
			File:    videoFile.FileURL,
			Quality: videoFile.Quality,
		},
	})
}

// 发布视频：作者本人或员工才可以，发布之后其他人才能看到、才能被点赞
func (h *videoHandler) Publish(c *gin.Context) {
	videoID, ok := parseVideoID(c)
	if !ok {
		return
	}
	id := middleware.IdentityFromContext(c)

	logCtx := logger.Log.WithField("user_id", id.UserID).WithField("video_id", videoID)
	video, err := h.VideoService.Publish(id, videoID)
	if err != nil {
		logCtx.WithError(err).Error("发布视频失败")
		switch {
		case errors.Is(err, service.ErrVideoNotFound):
			sendErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPermissionDenied):
			sendErrorResponse(c, http.StatusForbidden, err.Error())
		default:
			sendErrorResponse(c, http.StatusInternalServerError, "发布失败")
		}
		return
	}
	logCtx.Info("视频发布成功")

	c.JSON(http.StatusOK, gin.H{
		"message": "视频发布成功",
		"data":    dto.ToVideoResponse(video),
	})
}

// 视频列表：按身份过滤可见性，分页返回
// 员工看全部，登录用户看已发布+自己的，匿名只看已发布
func (h *videoHandler) ListVideos(c *gin.Context) {
	id := middleware.IdentityFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	// 攻击溯源，用户分析，问题排查
	logCtx := logger.Log.WithField("ip", c.ClientIP()).WithField("page", page)
	logCtx.Info("开始处理视频列表请求")

	videos, total, err := h.VideoService.ListVideos(id, (page-1)*perPage, perPage)
	if err != nil {
		logCtx.WithError(err).Error("获取视频列表业务处理失败")
		sendErrorResponse(c, http.StatusInternalServerError, "获取视频列表失败")
		return
	}

	// 将数据库模型列表转换为API响应模型列表
	response := make([]dto.VideoResponse, 0, len(videos))
	for i := range videos {
		response = append(response, dto.ToVideoResponse(&videos[i]))
	}

	logCtx.WithField("count", len(response)).Info("成功获取视频列表")
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page, perPage, total, response))
}

func (h *videoHandler) GetVideoByID(c *gin.Context) {
	videoID, ok := parseVideoID(c)
	if !ok {
		return
	}
	id := middleware.IdentityFromContext(c)

	logCtx := logger.Log.WithField("video_id", videoID)
	video, err := h.VideoService.GetVideoByID(id, videoID)
	if err != nil {
		// 不存在和无权查看对外是同一种404，不暴露未发布视频的存在性
		logCtx.WithError(err).Warn("查找视频失败")
		sendErrorResponse(c, http.StatusNotFound, "视频不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToVideoResponse(video)})
}

// 员工专用：不分页列出所有已发布视频的{id, username}
func (h *videoHandler) ListVideoIDs(c *gin.Context) {
	videos, err := h.VideoService.ListPublishedWithOwner()
	if err != nil {
		logger.Log.WithError(err).Error("获取视频ID列表失败")
		sendErrorResponse(c, http.StatusInternalServerError, "获取视频ID列表失败")
		return
	}

	response := make([]dto.VideoIDResponse, 0, len(videos))
	for i := range videos {
		response = append(response, dto.ToVideoIDResponse(&videos[i]))
	}
	c.JSON(http.StatusOK, response)
}
