package post

import (
	"content-backend/internal/errors"
	"content-backend/internal/service"
	"content-backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler 处理帖子相关的HTTP请求
type PostHandler struct {
	postService service.PostServiceInterface
}

// NewPostHandler 创建一个新的 PostHandler 实例
func NewPostHandler(postService service.PostServiceInterface) *PostHandler {
	return &PostHandler{postService}
}

// callerID 从上下文读取认证中间件写入的用户ID
func callerID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	id, _ := userID.(string)
	return id
}

// CreatePost 处理创建帖子请求
func (h *PostHandler) CreatePost(c *gin.Context) {
	var postData struct {
		Content string `json:"content" binding:"required,notblank"`
	}

	if err := c.ShouldBindJSON(&postData); err != nil {
		util.Logger.Warn("创建帖子失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "内容不能为空", err))
		return
	}

	post, err := h.postService.CreatePost(callerID(c), postData.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code": 201,
		"data": post,
	})
}

// ListPosts 返回全部帖子，按创建时间倒序
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts()
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"posts": posts}, "")
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPostByID(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, post, "")
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postService.DeletePost(callerID(c), c.Param("id")); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "帖子删除成功")
}

// LikePost 点赞并返回最新的点赞列表
func (h *PostHandler) LikePost(c *gin.Context) {
	likes, err := h.postService.LikePost(callerID(c), c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"likes": likes}, "")
}

// UnlikePost 取消点赞并返回最新的点赞列表
func (h *PostHandler) UnlikePost(c *gin.Context) {
	likes, err := h.postService.UnlikePost(callerID(c), c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"likes": likes}, "")
}

// CreateComment 添加评论并返回最新的评论列表
func (h *PostHandler) CreateComment(c *gin.Context) {
	var commentData struct {
		Content string `json:"content" binding:"required,notblank"`
	}

	if err := c.ShouldBindJSON(&commentData); err != nil {
		util.Logger.Warn("创建评论失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "内容不能为空", err))
		return
	}

	comments, err := h.postService.AddComment(callerID(c), c.Param("id"), commentData.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code": 201,
		"data": gin.H{"comments": comments},
	})
}

func (h *PostHandler) GetComment(c *gin.Context) {
	comment, err := h.postService.GetComment(c.Param("id"), c.Param("comment_id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, comment, "")
}

// DeleteComment 删除评论并返回最新的评论列表
func (h *PostHandler) DeleteComment(c *gin.Context) {
	comments, err := h.postService.DeleteComment(callerID(c), c.Param("id"), c.Param("comment_id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"comments": comments}, "评论删除成功")
}
