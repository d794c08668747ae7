package handler

import (
	"Vega_Stream/internal/service"
	"Vega_Stream/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 两个统计端点的处理器，各自持有一种策略，响应形状完全一致
type StatisticsHandler interface {
	StatisticsGroupBy(c *gin.Context)
	StatisticsSubquery(c *gin.Context)
}

type statisticsHandler struct {
	groupBy  service.StatsStrategy
	subquery service.StatsStrategy
}

func NewStatisticsHandler(groupBy, subquery service.StatsStrategy) StatisticsHandler {
	return &statisticsHandler{
		groupBy:  groupBy,
		subquery: subquery,
	}
}

func (h *statisticsHandler) serve(c *gin.Context, strategy service.StatsStrategy, name string) {
	logCtx := logger.Log.WithField("strategy", name)
	rows, err := strategy.ComputeStats()
	if err != nil {
		logCtx.WithError(err).Error("计算点赞统计失败")
		sendErrorResponse(c, http.StatusInternalServerError, "统计失败")
		return
	}
	logCtx.WithField("count", len(rows)).Info("点赞统计计算完成")
	c.JSON(http.StatusOK, rows)
}

// 分组聚合版：只包含有已发布视频的用户
func (h *statisticsHandler) StatisticsGroupBy(c *gin.Context) {
	h.serve(c, h.groupBy, "group_by")
}

// 相关子查询版：包含所有用户，没视频的likes_sum=0
func (h *statisticsHandler) StatisticsSubquery(c *gin.Context) {
	h.serve(c, h.subquery, "subquery")
}
