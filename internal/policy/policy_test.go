package policy

import (
	"Vega_Stream/internal/model"
	"testing"
)

func TestCanViewVideo(t *testing.T) {
	owner := Identity{UserID: 1, Username: "owner", Authenticated: true}
	stranger := Identity{UserID: 2, Username: "stranger", Authenticated: true}
	staff := Identity{UserID: 3, Username: "staff", IsStaff: true, Authenticated: true}
	anon := Anonymous()

	published := &model.Video{OwnerID: 1, IsPublished: true}
	draft := &model.Video{OwnerID: 1, IsPublished: false}

	cases := []struct {
		name  string
		id    Identity
		video *model.Video
		want  bool
	}{
		{"匿名看已发布", anon, published, true},
		{"匿名看未发布", anon, draft, false},
		{"路人看已发布", stranger, published, true},
		{"路人看未发布", stranger, draft, false},
		{"作者看自己的未发布", owner, draft, true},
		{"员工看未发布", staff, draft, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.id.CanViewVideo(tc.video); got != tc.want {
				t.Fatalf("CanViewVideo = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanManageVideo(t *testing.T) {
	draft := &model.Video{OwnerID: 1, IsPublished: false}

	if (Anonymous()).CanManageVideo(draft) {
		t.Fatal("匿名不允许管理视频")
	}
	if !(Identity{UserID: 1, Authenticated: true}).CanManageVideo(draft) {
		t.Fatal("作者应当可以管理自己的视频")
	}
	if (Identity{UserID: 2, Authenticated: true}).CanManageVideo(draft) {
		t.Fatal("路人不允许管理别人的视频")
	}
	if !(Identity{UserID: 9, IsStaff: true, Authenticated: true}).CanManageVideo(draft) {
		t.Fatal("员工应当可以管理任何视频")
	}
}

func TestStaffGates(t *testing.T) {
	if (Identity{UserID: 1, Authenticated: true}).CanViewStatistics() {
		t.Fatal("普通用户不允许看统计")
	}
	if (Identity{IsStaff: true}).CanViewStatistics() {
		t.Fatal("未认证的is_staff标志不应放行")
	}
	if !(Identity{UserID: 1, IsStaff: true, Authenticated: true}).CanViewStatistics() {
		t.Fatal("员工应当可以看统计")
	}
	if (Anonymous()).CanToggleLike() {
		t.Fatal("匿名不允许点赞")
	}
	if !(Identity{UserID: 1, Authenticated: true}).CanToggleLike() {
		t.Fatal("登录用户应当可以点赞")
	}
}
