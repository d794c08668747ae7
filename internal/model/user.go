package model

type User struct {
	BaseModel        // 包括 ID, CreatedAt, UpdatedAt, DeletedAt
	Username  string `gorm:"unique;not null"`
	Password  string `gorm:"not null"`
	// 员工账号才能访问ID列表和统计接口
	IsStaff  bool `gorm:"default:false"`
	IsActive bool `gorm:"default:true"`
}

func (User) TableName() string {
	return "users"
}
