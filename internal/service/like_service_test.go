package service

import (
	"Vega_Stream/internal/model"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestLikeCreatesRowAndIncrementsCounter(t *testing.T) {
	db := newTestDB(t)
	likeService, likeRepo := newTestLikeService(db)
	user := createTestUser(t, db, "alice", false)
	video := createTestVideo(t, db, user.ID, "first", true, 0)

	result, err := likeService.Like(user.ID, video.ID)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if !result.Created {
		t.Fatal("expected Created=true for a fresh like")
	}
	if result.Obj == nil || result.Obj.ID == 0 {
		t.Fatal("expected the created Like row to be returned")
	}

	if got := reloadVideo(t, db, video.ID).TotalLikes; got != 1 {
		t.Fatalf("total_likes = %d, want 1", got)
	}
	count, err := likeRepo.CountByVideo(video.ID)
	if err != nil {
		t.Fatalf("CountByVideo failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("like rows = %d, want 1", count)
	}
}

// 同一个用户重复点赞：第二次Created=false，计数器保持第一次之后的值
func TestLikeTwiceIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	likeService, _ := newTestLikeService(db)
	user := createTestUser(t, db, "alice", false)
	video := createTestVideo(t, db, user.ID, "first", true, 0)

	if _, err := likeService.Like(user.ID, video.ID); err != nil {
		t.Fatalf("first Like failed: %v", err)
	}
	result, err := likeService.Like(user.ID, video.ID)
	if err != nil {
		t.Fatalf("second Like failed: %v", err)
	}
	if result.Created {
		t.Fatal("expected Created=false on a repeated like")
	}
	if result.Obj == nil {
		t.Fatal("expected the pre-existing Like row to be returned")
	}
	if got := reloadVideo(t, db, video.ID).TotalLikes; got != 1 {
		t.Fatalf("total_likes = %d, want 1 after double like", got)
	}
}

func TestUnlikeWithoutLikeIsNoop(t *testing.T) {
	db := newTestDB(t)
	likeService, _ := newTestLikeService(db)
	user := createTestUser(t, db, "alice", false)
	video := createTestVideo(t, db, user.ID, "first", true, 0)

	result, err := likeService.Unlike(user.ID, video.ID)
	if err != nil {
		t.Fatalf("Unlike failed: %v", err)
	}
	if result.Deleted {
		t.Fatal("expected Deleted=false when no like exists")
	}
	if got := reloadVideo(t, db, video.ID).TotalLikes; got != 0 {
		t.Fatalf("total_likes = %d, want 0", got)
	}
}

// 任意一串点赞/取消点赞之后，计数器必须精确等于likes表里的行数
func TestCounterMatchesLikeRowsAfterToggleSequence(t *testing.T) {
	db := newTestDB(t)
	likeService, likeRepo := newTestLikeService(db)

	var users []*model.User
	for i := 0; i < 5; i++ {
		users = append(users, createTestUser(t, db, fmt.Sprintf("user%d", i), false))
	}
	video := createTestVideo(t, db, users[0].ID, "toggled", true, 0)

	// 每个用户：赞 -> 取消 -> 再赞；偶数用户再取消一次
	for i, u := range users {
		mustLike(t, likeService, u.ID, video.ID)
		mustUnlike(t, likeService, u.ID, video.ID)
		mustLike(t, likeService, u.ID, video.ID)
		if i%2 == 0 {
			mustUnlike(t, likeService, u.ID, video.ID)
		}
	}

	count, err := likeRepo.CountByVideo(video.ID)
	if err != nil {
		t.Fatalf("CountByVideo failed: %v", err)
	}
	counter := reloadVideo(t, db, video.ID).TotalLikes
	if int64(counter) != count {
		t.Fatalf("counter drifted: total_likes=%d, like rows=%d", counter, count)
	}
	if count != 2 { // 5个用户里只有1号和3号最终保持点赞
		t.Fatalf("like rows = %d, want 2", count)
	}
}

// 对未发布视频的点赞在任何写入之前被校验钩子拒绝
func TestLikeUnpublishedVideoRejected(t *testing.T) {
	db := newTestDB(t)
	likeService, likeRepo := newTestLikeService(db)
	user := createTestUser(t, db, "alice", false)
	video := createTestVideo(t, db, user.ID, "draft", false, 0)

	_, err := likeService.Like(user.ID, video.ID)
	if !errors.Is(err, model.ErrLikeUnpublished) {
		t.Fatalf("err = %v, want ErrLikeUnpublished", err)
	}

	count, err := likeRepo.CountByVideo(video.ID)
	if err != nil {
		t.Fatalf("CountByVideo failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("like rows = %d, want 0 after rejected like", count)
	}
	if got := reloadVideo(t, db, video.ID).TotalLikes; got != 0 {
		t.Fatalf("total_likes = %d, want 0 after rejected like", got)
	}
}

// N个不同用户并发点赞同一个视频：相对更新保证没有任何一次加法被丢掉
func TestConcurrentLikesFromDistinctUsers(t *testing.T) {
	db := newTestDB(t)
	likeService, likeRepo := newTestLikeService(db)

	const n = 20
	owner := createTestUser(t, db, "owner", false)
	video := createTestVideo(t, db, owner.ID, "popular", true, 0)

	var userIDs []uint64
	for i := 0; i < n; i++ {
		userIDs = append(userIDs, createTestUser(t, db, fmt.Sprintf("fan%d", i), false).ID)
	}

	var g errgroup.Group
	for _, uid := range userIDs {
		uid := uid
		g.Go(func() error {
			result, err := likeService.Like(uid, video.ID)
			if err != nil {
				return err
			}
			if !result.Created {
				return fmt.Errorf("user %d: expected a fresh like", uid)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent likes failed: %v", err)
	}

	if got := reloadVideo(t, db, video.ID).TotalLikes; got != n {
		t.Fatalf("total_likes = %d, want %d (lost update)", got, n)
	}
	count, err := likeRepo.CountByVideo(video.ID)
	if err != nil {
		t.Fatalf("CountByVideo failed: %v", err)
	}
	if count != n {
		t.Fatalf("like rows = %d, want %d", count, n)
	}
}

// 取消点赞不可能把计数器减成负数
func TestCounterNeverUnderflows(t *testing.T) {
	db := newTestDB(t)
	likeService, _ := newTestLikeService(db)
	user := createTestUser(t, db, "alice", false)
	other := createTestUser(t, db, "bob", false)
	video := createTestVideo(t, db, user.ID, "first", true, 0)

	mustLike(t, likeService, user.ID, video.ID)
	mustUnlike(t, likeService, user.ID, video.ID)

	// 没点过赞的人取消点赞，若干次，都是no-op
	for i := 0; i < 3; i++ {
		result, err := likeService.Unlike(other.ID, video.ID)
		if err != nil {
			t.Fatalf("Unlike failed: %v", err)
		}
		if result.Deleted {
			t.Fatal("expected Deleted=false")
		}
	}
	if got := reloadVideo(t, db, video.ID).TotalLikes; got != 0 {
		t.Fatalf("total_likes = %d, want 0", got)
	}
}

func mustLike(t *testing.T, s LikeService, userID, videoID uint64) {
	t.Helper()
	if _, err := s.Like(userID, videoID); err != nil {
		t.Fatalf("Like(%d, %d) failed: %v", userID, videoID, err)
	}
}

func mustUnlike(t *testing.T, s LikeService, userID, videoID uint64) {
	t.Helper()
	if _, err := s.Unlike(userID, videoID); err != nil {
		t.Fatalf("Unlike(%d, %d) failed: %v", userID, videoID, err)
	}
}
