package service

import (
	"Vega_Stream/internal/repository"
)

// StatsStrategy 是统计算法的能力接口：算出每个用户名下已发布视频的点赞总和，
// 按总和降序排列。两个实现算的是同一个逻辑结果，但行为边界不同（见各自注释），
// 由调用的端点决定用哪一个
type StatsStrategy interface {
	ComputeStats() ([]repository.StatRow, error)
}

// GroupByStatistics 用分组聚合：一条GROUP BY查询扫已发布视频
// 没有已发布视频的用户不会出现在结果里
type GroupByStatistics struct {
	statsRepo repository.StatisticsRepository
}

func NewGroupByStatistics(statsRepo repository.StatisticsRepository) StatsStrategy {
	return &GroupByStatistics{statsRepo: statsRepo}
}

func (s *GroupByStatistics) ComputeStats() ([]repository.StatRow, error) {
	return s.statsRepo.SumByOwnerGroupBy()
}

// SubqueryStatistics 用相关子查询：对users全表逐行算一次求和
// 每个用户都会出现，没有已发布视频的用户likes_sum=0
type SubqueryStatistics struct {
	statsRepo repository.StatisticsRepository
}

func NewSubqueryStatistics(statsRepo repository.StatisticsRepository) StatsStrategy {
	return &SubqueryStatistics{statsRepo: statsRepo}
}

func (s *SubqueryStatistics) ComputeStats() ([]repository.StatRow, error) {
	return s.statsRepo.SumByOwnerSubquery()
}
