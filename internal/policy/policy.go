package policy

import (
	"Vega_Stream/internal/model"

	"gorm.io/gorm"
)

// Identity 是显式传递的请求上下文，谁在访问、是不是员工，不靠任何全局状态
// 匿名访问就是零值：Authenticated=false
type Identity struct {
	UserID        uint64
	Username      string
	IsStaff       bool
	Authenticated bool
}

// Anonymous 返回匿名身份
func Anonymous() Identity {
	return Identity{}
}

// CanViewVideo 对象级可见性：员工看全部；已发布的所有人可见；未发布的只有作者可见
func (id Identity) CanViewVideo(v *model.Video) bool {
	if id.IsStaff {
		return true
	}
	if v.IsPublished {
		return true
	}
	return id.Authenticated && v.OwnerID == id.UserID
}

// CanManageVideo 发布、上传清晰度文件这类写操作：作者本人或员工
func (id Identity) CanManageVideo(v *model.Video) bool {
	if !id.Authenticated {
		return false
	}
	return id.IsStaff || v.OwnerID == id.UserID
}

// CanToggleLike 点赞/取消点赞只要求登录，目标视频是否存在/已发布由调用方检查
func (id Identity) CanToggleLike() bool {
	return id.Authenticated
}

// CanViewStatistics ID列表和两个统计接口都只对员工开放
func (id Identity) CanViewStatistics() bool {
	return id.Authenticated && id.IsStaff
}

// VisibleVideos 把同样的可见性规则表达成gorm scope，给列表查询用
// 和 CanViewVideo 必须保持同一套规则
func VisibleVideos(id Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id.IsStaff {
			return db
		}
		if id.Authenticated {
			return db.Where("is_published = ? OR owner_id = ?", true, id.UserID)
		}
		return db.Where("is_published = ?", true)
	}
}
