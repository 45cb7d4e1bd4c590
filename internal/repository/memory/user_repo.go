package memory

import (
	"content-backend/internal/model"
	"sync"
)

// userRepository 是用户查询接口的内存实现，用于测试和本地开发
type userRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

func NewUserRepository() *userRepository {
	return &userRepository{users: make(map[string]*model.User)}
}

// Put 写入一个用户记录（仅供测试数据准备使用）
func (r *userRepository) Put(user *model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	r.users[user.ID] = &u
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u := *user
	return &u, nil
}
