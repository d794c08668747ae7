package handler

import (
	"Vega_Stream/internal/dto"
	"Vega_Stream/internal/middleware"
	"Vega_Stream/internal/service"
	"Vega_Stream/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LikeHandler interface {
	LikeVideo(c *gin.Context)
	UnlikeVideo(c *gin.Context)
}

type likeHandler struct {
	LikeService  service.LikeService
	VideoService service.VideoService
}

func NewLikeHandler(likeService service.LikeService, videoService service.VideoService) LikeHandler {
	return &likeHandler{
		LikeService:  likeService,
		VideoService: videoService,
	}
}

// 视频点赞：1、从URL取videoID 2、确认目标视频存在且已发布 3、执行点赞服务
// 新点的赞返回201，早就点过或输掉并发竞争返回400，created区分这两种情况
func (h *likeHandler) LikeVideo(c *gin.Context) {
	videoID, ok := parseVideoID(c)
	if !ok {
		return
	}
	id := middleware.IdentityFromContext(c)
	if !id.CanToggleLike() {
		// 理论上中间件会拦截，但防御性编程是好习惯
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	logCtx := logger.Log.WithField("user_id", id.UserID).WithField("video_id", videoID)

	// 不存在和未发布对点赞者来说都是404
	if _, err := h.VideoService.GetPublishedVideo(videoID); err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logCtx.WithError(err).Error("点赞目标检查失败")
		sendErrorResponse(c, http.StatusInternalServerError, "点赞失败")
		return
	}

	result, err := h.LikeService.Like(id.UserID, videoID)
	if err != nil {
		logCtx.WithError(err).Error("点赞失败")
		sendErrorResponse(c, http.StatusInternalServerError, "点赞失败")
		return
	}

	statusCode := http.StatusCreated
	if !result.Created {
		statusCode = http.StatusBadRequest
	}
	logCtx.WithField("created", result.Created).Info("点赞请求处理完成")
	c.JSON(statusCode, dto.ToLikeResultResponse(result.Obj, result.Created))
}

// 取消点赞：真删掉了返回204，本来就没点过返回400，目标不存在/未发布返回404
func (h *likeHandler) UnlikeVideo(c *gin.Context) {
	videoID, ok := parseVideoID(c)
	if !ok {
		return
	}
	id := middleware.IdentityFromContext(c)
	if !id.CanToggleLike() {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	logCtx := logger.Log.WithField("user_id", id.UserID).WithField("video_id", videoID)

	if _, err := h.VideoService.GetPublishedVideo(videoID); err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logCtx.WithError(err).Error("取消点赞目标检查失败")
		sendErrorResponse(c, http.StatusInternalServerError, "取消点赞失败")
		return
	}

	result, err := h.LikeService.Unlike(id.UserID, videoID)
	if err != nil {
		logCtx.WithError(err).Error("取消点赞失败")
		sendErrorResponse(c, http.StatusInternalServerError, "取消点赞失败")
		return
	}

	if !result.Deleted {
		c.Status(http.StatusBadRequest)
		return
	}
	logCtx.Info("取消点赞成功")
	c.Status(http.StatusNoContent)
}
