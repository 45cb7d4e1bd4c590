package mysql

import (
	"content-backend/internal/common"
	apperrors "content-backend/internal/errors"
	"content-backend/internal/model"
	"content-backend/internal/util"
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db: db}
}

// classify 将存储层错误分类：瞬时故障上报为超时类错误，其余为数据库错误
func classify(err error) error {
	if common.IsTransient(err) {
		return apperrors.Wrap(apperrors.ErrTimeout, "存储暂时不可用", err)
	}
	return apperrors.Wrap(apperrors.ErrDatabase, "数据库操作失败", err)
}

func (r *postRepository) Create(post *model.Post) error {
	query := `INSERT INTO posts (id, user_id, author_name, author_avatar, content, created_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, post.ID, post.UserID, post.AuthorName, post.AuthorAvatar, post.Content, post.CreatedAt)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		return classify(err)
	}

	util.Logger.Info("帖子创建成功", zap.String("post_id", post.ID))
	return nil
}

// querier 抽象 *sql.DB 和 *sql.Tx 的查询能力
type querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// FindByID 在单个事务内加载完整聚合。帖子行和它的点赞、评论
// 必须来自同一个一致性快照，并发的级联删除对读取方要么完全可见要么完全不可见。
func (r *postRepository) FindByID(id string) (*model.Post, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, classify(err)
	}
	defer tx.Rollback()

	post, err := r.findByID(tx, id)
	if err != nil || post == nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, classify(err)
	}
	return post, nil
}

func (r *postRepository) findByID(q querier, id string) (*model.Post, error) {
	query := `SELECT id, user_id, author_name, author_avatar, content, created_at
              FROM posts WHERE id = ?`

	var post model.Post
	err := q.QueryRow(query, id).Scan(
		&post.ID, &post.UserID, &post.AuthorName, &post.AuthorAvatar,
		&post.Content, &post.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, classify(err)
	}

	likes, err := r.loadLikes(q, id)
	if err != nil {
		return nil, err
	}
	post.Likes = likes

	comments, err := r.loadComments(q, id)
	if err != nil {
		return nil, err
	}
	post.Comments = comments

	return &post, nil
}

// loadLikes 按插入顺序倒序加载点赞（最新的在最前面）
func (r *postRepository) loadLikes(q querier, postID string) ([]*model.Like, error) {
	query := `SELECT id, user_id, created_at FROM post_likes
              WHERE post_id = ? ORDER BY seq DESC`
	rows, err := q.Query(query, postID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	likes := []*model.Like{}
	for rows.Next() {
		var like model.Like
		if err := rows.Scan(&like.ID, &like.UserID, &like.CreatedAt); err != nil {
			return nil, classify(err)
		}
		likes = append(likes, &like)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return likes, nil
}

// loadComments 按插入顺序倒序加载评论（最新的在最前面）
func (r *postRepository) loadComments(q querier, postID string) ([]*model.Comment, error) {
	query := `SELECT id, user_id, author_name, author_avatar, content, created_at
              FROM post_comments WHERE post_id = ? ORDER BY seq DESC`
	rows, err := q.Query(query, postID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(&comment.ID, &comment.UserID, &comment.AuthorName,
			&comment.AuthorAvatar, &comment.Content, &comment.CreatedAt); err != nil {
			return nil, classify(err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return comments, nil
}

// FindAll 与 FindByID 一样在单个事务内读取，列表中的每个聚合都是完整的
func (r *postRepository) FindAll() ([]*model.Post, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, classify(err)
	}
	defer tx.Rollback()

	query := `SELECT id, user_id, author_name, author_avatar, content, created_at
              FROM posts ORDER BY created_at DESC`
	rows, err := tx.Query(query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(&post.ID, &post.UserID, &post.AuthorName,
			&post.AuthorAvatar, &post.Content, &post.CreatedAt); err != nil {
			return nil, classify(err)
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	for _, post := range posts {
		if post.Likes, err = r.loadLikes(tx, post.ID); err != nil {
			return nil, err
		}
		if post.Comments, err = r.loadComments(tx, post.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, classify(err)
	}
	return posts, nil
}

// Delete 在单个事务内删除帖子及其全部评论和点赞，
// 并发读取方不会观察到半删除状态
func (r *postRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return classify(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_comments WHERE post_id = ?`, id); err != nil {
		util.Logger.Error("删除帖子评论失败", zap.Error(err), zap.String("post_id", id))
		return classify(err)
	}
	if _, err := tx.Exec(`DELETE FROM post_likes WHERE post_id = ?`, id); err != nil {
		util.Logger.Error("删除帖子点赞失败", zap.Error(err), zap.String("post_id", id))
		return classify(err)
	}
	if _, err := tx.Exec(`DELETE FROM posts WHERE id = ?`, id); err != nil {
		util.Logger.Error("删除帖子失败", zap.Error(err), zap.String("post_id", id))
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		util.Logger.Error("提交事务失败", zap.Error(err))
		return classify(err)
	}

	util.Logger.Info("帖子删除成功", zap.String("post_id", id))
	return nil
}

// AddLike 插入点赞记录。post_likes 表对 (post_id, user_id) 建有唯一索引，
// 重复插入在存储层被拒绝，兜底保证每个用户对同一帖子至多一个点赞。
func (r *postRepository) AddLike(postID string, like *model.Like) error {
	query := `INSERT INTO post_likes (id, post_id, user_id, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.Exec(query, like.ID, postID, like.UserID, like.CreatedAt)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
			return apperrors.New(apperrors.ErrAlreadyLiked, "已经点赞过了")
		}
		util.Logger.Error("插入点赞失败", zap.Error(err), zap.String("post_id", postID))
		return classify(err)
	}
	return nil
}

func (r *postRepository) RemoveLike(postID, userID string) error {
	query := `DELETE FROM post_likes WHERE post_id = ? AND user_id = ?`
	if _, err := r.db.Exec(query, postID, userID); err != nil {
		util.Logger.Error("删除点赞失败", zap.Error(err), zap.String("post_id", postID))
		return classify(err)
	}
	return nil
}

func (r *postRepository) AddComment(postID string, comment *model.Comment) error {
	query := `INSERT INTO post_comments (id, post_id, user_id, author_name, author_avatar, content, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, comment.ID, postID, comment.UserID,
		comment.AuthorName, comment.AuthorAvatar, comment.Content, comment.CreatedAt)
	if err != nil {
		util.Logger.Error("插入评论失败", zap.Error(err), zap.String("post_id", postID))
		return classify(err)
	}
	return nil
}

func (r *postRepository) RemoveComment(postID, commentID string) error {
	query := `DELETE FROM post_comments WHERE post_id = ? AND id = ?`
	if _, err := r.db.Exec(query, postID, commentID); err != nil {
		util.Logger.Error("删除评论失败", zap.Error(err), zap.String("comment_id", commentID))
		return classify(err)
	}
	return nil
}
