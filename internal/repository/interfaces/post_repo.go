package interfaces

import "content-backend/internal/model"

// PostRepository 定义了帖子聚合的存储接口。
// 存储按帖子ID寻址，单个聚合内的读写和整体删除都是原子的；
// 聚合间的互斥由服务层的帖子级临界区保证。
type PostRepository interface {
	Create(post *model.Post) error
	// FindByID 加载完整聚合（帖子+点赞+评论），不存在时返回 (nil, nil)
	FindByID(id string) (*model.Post, error)
	// FindAll 返回全部帖子，按创建时间倒序
	FindAll() ([]*model.Post, error)
	// Delete 删除帖子及其全部评论和点赞，作为单个原子单元
	Delete(id string) error
	AddLike(postID string, like *model.Like) error
	RemoveLike(postID, userID string) error
	AddComment(postID string, comment *model.Comment) error
	RemoveComment(postID, commentID string) error
}
