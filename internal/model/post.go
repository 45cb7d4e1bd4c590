package model

import "time"

// Post 是帖子聚合根，评论和点赞只能通过帖子本身访问和修改
type Post struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	AuthorName   string     `json:"author_name"`
	AuthorAvatar string     `json:"author_avatar"`
	Content      string     `json:"content"`
	Likes        []*Like    `json:"likes"`
	Comments     []*Comment `json:"comments"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Comment 归属于其父帖子，没有独立于帖子的生命周期
type Comment struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeByUser 返回指定用户的点赞记录，不存在时返回 nil
func (p *Post) LikeByUser(userID string) *Like {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return like
		}
	}
	return nil
}

// CommentByID 返回指定ID的评论，不存在时返回 nil
func (p *Post) CommentByID(commentID string) *Comment {
	for _, comment := range p.Comments {
		if comment.ID == commentID {
			return comment
		}
	}
	return nil
}
