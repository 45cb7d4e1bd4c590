package service

import (
	"content-backend/internal/errors"
	"content-backend/internal/model"
	"content-backend/internal/repository/interfaces"
	"content-backend/internal/util"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PostServiceInterface 定义帖子服务的接口
type PostServiceInterface interface {
	CreatePost(callerID, content string) (*model.Post, error)
	ListPosts() ([]*model.Post, error)
	GetPostByID(id string) (*model.Post, error)
	DeletePost(callerID, id string) error
	LikePost(callerID, postID string) ([]*model.Like, error)
	UnlikePost(callerID, postID string) ([]*model.Like, error)
	AddComment(callerID, postID, content string) ([]*model.Comment, error)
	GetComment(postID, commentID string) (*model.Comment, error)
	DeleteComment(callerID, postID, commentID string) ([]*model.Comment, error)
}

// PostService 处理帖子聚合的业务逻辑。
// 每个帖子是一个互斥单元：对同一帖子的所有写操作在帖子级临界区内串行执行，
// 不同帖子之间完全并行。调用者身份始终作为显式参数传入，服务本身不做认证。
type PostService struct {
	postRepo interfaces.PostRepository
	userRepo interfaces.UserRepository

	mu        sync.Mutex
	postLocks map[string]*sync.Mutex
}

// NewPostService 创建一个新的 PostService 实例
func NewPostService(postRepo interfaces.PostRepository, userRepo interfaces.UserRepository) *PostService {
	return &PostService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		postLocks: make(map[string]*sync.Mutex),
	}
}

// lockPost 获取指定帖子的互斥锁，调用方负责 Unlock
func (s *PostService) lockPost(postID string) *sync.Mutex {
	s.mu.Lock()
	lock, ok := s.postLocks[postID]
	if !ok {
		lock = &sync.Mutex{}
		s.postLocks[postID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock
}

// releasePost 删除帖子的锁条目。帖子删除后调用，
// 等待中的操作获得锁后会重新读取聚合并得到“帖子不存在”。
func (s *PostService) releasePost(postID string) {
	s.mu.Lock()
	delete(s.postLocks, postID)
	s.mu.Unlock()
}

// loadLocked 在临界区内加载聚合。帖子不存在时回收锁条目，
// 针对任意不存在ID的请求不会让锁表无限增长。
func (s *PostService) loadLocked(postID string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		s.releasePost(postID)
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	return post, nil
}

// requireOwner 统一的所有权检查：只有资源作者本人可以删除资源
func requireOwner(callerID, authorID string) error {
	if callerID != authorID {
		util.Logger.Warn("所有权校验失败",
			zap.String("caller_id", callerID),
			zap.String("author_id", authorID))
		return errors.New(errors.ErrUnauthorized, "没有权限操作该资源")
	}
	return nil
}

// snapshotAuthor 从用户服务读取作者展示字段。
// 快照只在创建时读取一次，作者资料后续变更不会回写到已有帖子和评论。
func (s *PostService) snapshotAuthor(userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDependency, "查询用户信息失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrDependency, "用户信息不存在")
	}
	return user, nil
}

// CreatePost 创建帖子。重复调用会创建多个独立帖子，不做去重。
func (s *PostService) CreatePost(callerID, content string) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New(errors.ErrValidation, "内容不能为空")
	}

	author, err := s.snapshotAuthor(callerID)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:           uuid.NewString(),
		UserID:       callerID,
		AuthorName:   author.Username,
		AuthorAvatar: author.AvatarURL,
		Content:      content,
		Likes:        []*model.Like{},
		Comments:     []*model.Comment{},
		CreatedAt:    time.Now(),
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	util.Logger.Info("帖子创建成功",
		zap.String("post_id", post.ID),
		zap.String("user_id", callerID))
	return post, nil
}

// ListPosts 返回全部帖子，按创建时间倒序
func (s *PostService) ListPosts() ([]*model.Post, error) {
	return s.postRepo.FindAll()
}

func (s *PostService) GetPostByID(id string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	return post, nil
}

// DeletePost 删除帖子。只有作者本人可以删除，
// 帖子及其全部评论和点赞作为单个原子单元一并删除。
func (s *PostService) DeletePost(callerID, id string) error {
	lock := s.lockPost(id)
	defer lock.Unlock()

	post, err := s.loadLocked(id)
	if err != nil {
		return err
	}

	if err := requireOwner(callerID, post.UserID); err != nil {
		return err
	}

	if err := s.postRepo.Delete(id); err != nil {
		return err
	}
	s.releasePost(id)

	util.Logger.Info("帖子删除成功",
		zap.String("post_id", id),
		zap.String("user_id", callerID))
	return nil
}

// LikePost 点赞。同一用户对同一帖子重复点赞返回“已经点赞过了”，
// 检查和插入在帖子级临界区内完成，并发的重复点赞至多只有一条生效。
func (s *PostService) LikePost(callerID, postID string) ([]*model.Like, error) {
	lock := s.lockPost(postID)
	defer lock.Unlock()

	post, err := s.loadLocked(postID)
	if err != nil {
		return nil, err
	}

	if post.LikeByUser(callerID) != nil {
		return nil, errors.New(errors.ErrAlreadyLiked, "已经点赞过了")
	}

	like := &model.Like{
		ID:        uuid.NewString(),
		UserID:    callerID,
		CreatedAt: time.Now(),
	}
	if err := s.postRepo.AddLike(postID, like); err != nil {
		return nil, err
	}

	// 新点赞插入到最前面，其余顺序不变
	return append([]*model.Like{like}, post.Likes...), nil
}

// UnlikePost 取消点赞。未点赞时返回“还没有点赞”，
// 删除只移除该用户的一条记录，其余点赞顺序保持不变。
func (s *PostService) UnlikePost(callerID, postID string) ([]*model.Like, error) {
	lock := s.lockPost(postID)
	defer lock.Unlock()

	post, err := s.loadLocked(postID)
	if err != nil {
		return nil, err
	}

	if post.LikeByUser(callerID) == nil {
		return nil, errors.New(errors.ErrNotLiked, "还没有点赞")
	}

	if err := s.postRepo.RemoveLike(postID, callerID); err != nil {
		return nil, err
	}

	likes := make([]*model.Like, 0, len(post.Likes)-1)
	for _, like := range post.Likes {
		if like.UserID != callerID {
			likes = append(likes, like)
		}
	}
	return likes, nil
}

// AddComment 添加评论。评论ID由 uuid 生成，并发添加不会冲突；
// 新评论插入到最前面，其余顺序不变。
func (s *PostService) AddComment(callerID, postID, content string) ([]*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New(errors.ErrValidation, "内容不能为空")
	}

	author, err := s.snapshotAuthor(callerID)
	if err != nil {
		return nil, err
	}

	lock := s.lockPost(postID)
	defer lock.Unlock()

	post, err := s.loadLocked(postID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:           uuid.NewString(),
		UserID:       callerID,
		AuthorName:   author.Username,
		AuthorAvatar: author.AvatarURL,
		Content:      content,
		CreatedAt:    time.Now(),
	}
	if err := s.postRepo.AddComment(postID, comment); err != nil {
		return nil, err
	}

	return append([]*model.Comment{comment}, post.Comments...), nil
}

func (s *PostService) GetComment(postID, commentID string) (*model.Comment, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}

	comment := post.CommentByID(commentID)
	if comment == nil {
		return nil, errors.New(errors.ErrCommentNotFound, "评论不存在")
	}
	return comment, nil
}

// DeleteComment 删除评论。只有评论作者本人可以删除，
// 帖子作者对他人的评论没有删除权。删除严格按评论ID进行。
func (s *PostService) DeleteComment(callerID, postID, commentID string) ([]*model.Comment, error) {
	lock := s.lockPost(postID)
	defer lock.Unlock()

	post, err := s.loadLocked(postID)
	if err != nil {
		return nil, err
	}

	comment := post.CommentByID(commentID)
	if comment == nil {
		return nil, errors.New(errors.ErrCommentNotFound, "评论不存在")
	}

	if err := requireOwner(callerID, comment.UserID); err != nil {
		return nil, err
	}

	if err := s.postRepo.RemoveComment(postID, commentID); err != nil {
		return nil, err
	}

	comments := make([]*model.Comment, 0, len(post.Comments)-1)
	for _, c := range post.Comments {
		if c.ID != commentID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}
