package memory

import (
	apperrors "content-backend/internal/errors"
	"content-backend/internal/model"
	"sort"
	"sync"
)

// postRepository 是帖子聚合存储的内存实现，用于测试和本地开发。
// 读写都基于深拷贝，外部无法绕过服务层直接修改聚合内的子集合。
type postRepository struct {
	mu    sync.RWMutex
	posts map[string]*model.Post
	seq   map[string]int // 帖子插入序号，用于创建时间相同时的排序
	next  int
}

func NewPostRepository() *postRepository {
	return &postRepository{
		posts: make(map[string]*model.Post),
		seq:   make(map[string]int),
	}
}

func clonePost(p *model.Post) *model.Post {
	cp := *p
	cp.Likes = make([]*model.Like, len(p.Likes))
	for i, like := range p.Likes {
		l := *like
		cp.Likes[i] = &l
	}
	cp.Comments = make([]*model.Comment, len(p.Comments))
	for i, comment := range p.Comments {
		c := *comment
		cp.Comments[i] = &c
	}
	return &cp
}

func (r *postRepository) Create(post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.posts[post.ID] = clonePost(post)
	r.next++
	r.seq[post.ID] = r.next
	return nil
}

func (r *postRepository) FindByID(id string) (*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return clonePost(post), nil
}

func (r *postRepository) FindAll() ([]*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*model.Post, 0, len(r.posts))
	for _, post := range r.posts {
		posts = append(posts, clonePost(post))
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return r.seq[posts[i].ID] > r.seq[posts[j].ID]
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *postRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 整个聚合（帖子+评论+点赞）作为单个条目删除
	delete(r.posts, id)
	delete(r.seq, id)
	return nil
}

func (r *postRepository) AddLike(postID string, like *model.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[postID]
	if !ok {
		return apperrors.New(apperrors.ErrPostNotFound, "帖子不存在")
	}
	// 与 MySQL 实现的唯一索引一致：同一用户重复点赞在存储层被拒绝
	if post.LikeByUser(like.UserID) != nil {
		return apperrors.New(apperrors.ErrAlreadyLiked, "已经点赞过了")
	}

	l := *like
	post.Likes = append([]*model.Like{&l}, post.Likes...)
	return nil
}

func (r *postRepository) RemoveLike(postID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[postID]
	if !ok {
		return apperrors.New(apperrors.ErrPostNotFound, "帖子不存在")
	}

	likes := make([]*model.Like, 0, len(post.Likes))
	for _, like := range post.Likes {
		if like.UserID != userID {
			likes = append(likes, like)
		}
	}
	post.Likes = likes
	return nil
}

func (r *postRepository) AddComment(postID string, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[postID]
	if !ok {
		return apperrors.New(apperrors.ErrPostNotFound, "帖子不存在")
	}

	c := *comment
	post.Comments = append([]*model.Comment{&c}, post.Comments...)
	return nil
}

func (r *postRepository) RemoveComment(postID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[postID]
	if !ok {
		return apperrors.New(apperrors.ErrPostNotFound, "帖子不存在")
	}

	comments := make([]*model.Comment, 0, len(post.Comments))
	for _, comment := range post.Comments {
		if comment.ID != commentID {
			comments = append(comments, comment)
		}
	}
	post.Comments = comments
	return nil
}
