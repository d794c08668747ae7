package service

import (
	"Vega_Stream/internal/repository"
	"reflect"
	"testing"
)

// 场景来自一组固定样例：
// alice有两个已发布视频（3赞、5赞），bob有一个未发布的（10赞）和一个已发布的（2赞），
// carol一个视频都没有
func seedStatsFixture(t *testing.T) repository.StatisticsRepository {
	t.Helper()
	db := newTestDB(t)

	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	createTestUser(t, db, "carol", false)

	createTestVideo(t, db, alice.ID, "alice-1", true, 3)
	createTestVideo(t, db, alice.ID, "alice-2", true, 5)
	createTestVideo(t, db, bob.ID, "bob-draft", false, 10)
	createTestVideo(t, db, bob.ID, "bob-1", true, 2)

	return repository.NewStatisticsRepository(db)
}

func TestGroupByStatistics(t *testing.T) {
	statsRepo := seedStatsFixture(t)
	rows, err := NewGroupByStatistics(statsRepo).ComputeStats()
	if err != nil {
		t.Fatalf("ComputeStats failed: %v", err)
	}

	// 分组聚合只看已发布视频，carol没有视频所以不出现；bob未发布的10赞不计入
	want := []repository.StatRow{
		{Username: "alice", LikesSum: 8},
		{Username: "bob", LikesSum: 2},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %+v, want %+v", rows, want)
	}
}

func TestSubqueryStatistics(t *testing.T) {
	statsRepo := seedStatsFixture(t)
	rows, err := NewSubqueryStatistics(statsRepo).ComputeStats()
	if err != nil {
		t.Fatalf("ComputeStats failed: %v", err)
	}

	// 相关子查询扫users全表，carol也出现，likes_sum补0
	want := []repository.StatRow{
		{Username: "alice", LikesSum: 8},
		{Username: "bob", LikesSum: 2},
		{Username: "carol", LikesSum: 0},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %+v, want %+v", rows, want)
	}
}

// 两种策略对“拥有至少一个已发布视频的用户”必须给出完全一致的结果
func TestStrategiesAgreeOnUsersWithPublishedVideos(t *testing.T) {
	statsRepo := seedStatsFixture(t)

	groupByRows, err := NewGroupByStatistics(statsRepo).ComputeStats()
	if err != nil {
		t.Fatalf("group-by failed: %v", err)
	}
	subqueryRows, err := NewSubqueryStatistics(statsRepo).ComputeStats()
	if err != nil {
		t.Fatalf("subquery failed: %v", err)
	}

	sums := make(map[string]uint64, len(subqueryRows))
	for _, row := range subqueryRows {
		sums[row.Username] = row.LikesSum
	}
	for _, row := range groupByRows {
		got, ok := sums[row.Username]
		if !ok {
			t.Fatalf("subquery is missing user %q", row.Username)
		}
		if got != row.LikesSum {
			t.Fatalf("user %q: group-by=%d, subquery=%d", row.Username, row.LikesSum, got)
		}
	}
	// 差集只能是likes_sum=0的用户（分组聚合的刻意缺席）
	for _, row := range subqueryRows {
		if row.LikesSum != 0 {
			continue
		}
		for _, g := range groupByRows {
			if g.Username == row.Username && g.LikesSum != 0 {
				t.Fatalf("user %q should not differ between strategies", row.Username)
			}
		}
	}
}

// likes_sum并列时按username升序，输出顺序完全确定
func TestStatisticsTieBreakByUsername(t *testing.T) {
	db := newTestDB(t)
	statsRepo := repository.NewStatisticsRepository(db)

	zoe := createTestUser(t, db, "zoe", false)
	amy := createTestUser(t, db, "amy", false)
	mia := createTestUser(t, db, "mia", false)
	createTestVideo(t, db, zoe.ID, "zoe-1", true, 7)
	createTestVideo(t, db, amy.ID, "amy-1", true, 7)
	createTestVideo(t, db, mia.ID, "mia-1", true, 9)

	rows, err := NewGroupByStatistics(statsRepo).ComputeStats()
	if err != nil {
		t.Fatalf("ComputeStats failed: %v", err)
	}
	want := []repository.StatRow{
		{Username: "mia", LikesSum: 9},
		{Username: "amy", LikesSum: 7},
		{Username: "zoe", LikesSum: 7},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %+v, want %+v", rows, want)
	}

	subqueryRows, err := NewSubqueryStatistics(statsRepo).ComputeStats()
	if err != nil {
		t.Fatalf("ComputeStats failed: %v", err)
	}
	if !reflect.DeepEqual(subqueryRows, want) {
		t.Fatalf("subquery rows = %+v, want %+v", subqueryRows, want)
	}
}
