package interfaces

import "content-backend/internal/model"

// UserRepository 定义了用户信息的只读查询接口。
// 用户数据由外部系统维护，本服务只在创建帖子/评论时读取展示字段快照。
type UserRepository interface {
	// FindByID 查询用户，不存在时返回 (nil, nil)
	FindByID(id string) (*model.User, error)
}
