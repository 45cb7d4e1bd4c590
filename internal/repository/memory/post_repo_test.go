package memory

import (
	"content-backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func seedPost(r *postRepository, id string) *model.Post {
	post := &model.Post{
		ID:        id,
		UserID:    "u1",
		Content:   "hello",
		Likes:     []*model.Like{},
		Comments:  []*model.Comment{},
		CreatedAt: time.Now(),
	}
	r.Create(post)
	return post
}

// TestCloneIsolation 读取返回的聚合是拷贝，外部修改不影响存储内容
func TestCloneIsolation(t *testing.T) {
	r := NewPostRepository()
	seedPost(r, "p1")

	got, err := r.FindByID("p1")
	assert.NoError(t, err)

	// 绕过存储接口直接修改子集合
	got.Comments = append(got.Comments, &model.Comment{ID: "c-rogue", Content: "rogue"})
	got.Content = "tampered"

	fresh, err := r.FindByID("p1")
	assert.NoError(t, err)
	assert.Empty(t, fresh.Comments)
	assert.Equal(t, "hello", fresh.Content)
}

// TestLikeOrder 点赞最新在前，删除保持其余顺序
func TestLikeOrder(t *testing.T) {
	r := NewPostRepository()
	seedPost(r, "p1")

	r.AddLike("p1", &model.Like{ID: "l1", UserID: "u1"})
	r.AddLike("p1", &model.Like{ID: "l2", UserID: "u2"})
	r.AddLike("p1", &model.Like{ID: "l3", UserID: "u3"})

	post, _ := r.FindByID("p1")
	assert.Equal(t, []string{"u3", "u2", "u1"},
		[]string{post.Likes[0].UserID, post.Likes[1].UserID, post.Likes[2].UserID})

	r.RemoveLike("p1", "u2")
	post, _ = r.FindByID("p1")
	assert.Len(t, post.Likes, 2)
	assert.Equal(t, "u3", post.Likes[0].UserID)
	assert.Equal(t, "u1", post.Likes[1].UserID)
}

// TestDuplicateLikeRejected 同一用户的重复点赞在存储层被拒绝
func TestDuplicateLikeRejected(t *testing.T) {
	r := NewPostRepository()
	seedPost(r, "p1")

	assert.NoError(t, r.AddLike("p1", &model.Like{ID: "l1", UserID: "u1"}))
	assert.Error(t, r.AddLike("p1", &model.Like{ID: "l2", UserID: "u1"}))

	post, _ := r.FindByID("p1")
	assert.Len(t, post.Likes, 1)
}

// TestCommentOrder 评论最新在前，按ID删除保持其余顺序
func TestCommentOrder(t *testing.T) {
	r := NewPostRepository()
	seedPost(r, "p1")

	r.AddComment("p1", &model.Comment{ID: "c1", Content: "a"})
	r.AddComment("p1", &model.Comment{ID: "c2", Content: "b"})
	r.AddComment("p1", &model.Comment{ID: "c3", Content: "c"})

	post, _ := r.FindByID("p1")
	assert.Equal(t, []string{"c3", "c2", "c1"},
		[]string{post.Comments[0].ID, post.Comments[1].ID, post.Comments[2].ID})

	r.RemoveComment("p1", "c2")
	post, _ = r.FindByID("p1")
	assert.Len(t, post.Comments, 2)
	assert.Equal(t, "c3", post.Comments[0].ID)
	assert.Equal(t, "c1", post.Comments[1].ID)
}

// TestDeleteRemovesAggregate 删除后整个聚合不可达
func TestDeleteRemovesAggregate(t *testing.T) {
	r := NewPostRepository()
	seedPost(r, "p1")
	r.AddComment("p1", &model.Comment{ID: "c1", Content: "a"})

	assert.NoError(t, r.Delete("p1"))

	post, err := r.FindByID("p1")
	assert.NoError(t, err)
	assert.Nil(t, post)
}
