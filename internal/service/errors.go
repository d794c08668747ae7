package service

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// service层的业务错误，handler用errors.Is映射成HTTP状态码
var (
	ErrVideoNotFound      = errors.New("视频不存在或未发布")
	ErrUsernameTaken      = errors.New("用户名已存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrPermissionDenied   = errors.New("没有权限执行该操作")
	ErrInvalidQuality     = errors.New("无效的清晰度，只支持 HD / FHD / UHD")
)

// isDuplicateKeyErr 判断错误的“根”是不是唯一索引冲突
// MySQL的错误号1062就是"Duplicate entry"；测试跑在纯Go的sqlite驱动上，
// 没有错误翻译器，只能退化成字符串判断
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
