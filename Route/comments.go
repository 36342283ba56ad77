package Route

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"conduit/database"
	"conduit/service"
)

// AddComment 在文章下新增评论
func (a *API) AddComment(c *gin.Context) {
	var req database.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err)
		return
	}

	comment, err := a.articles.AddComment(c.Param("slug"), credential(c), req.Comment.Body)
	if err != nil {
		abortWithError(c, err)
		return
	}

	viewer, err := a.profiles.ResolveViewer(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": service.NewCommentResponse(comment, viewer)})
}

// ListComments 文章评论列表
func (a *API) ListComments(c *gin.Context) {
	comments, err := a.articles.Comments(c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	viewer, err := a.profiles.ResolveViewer(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": service.NewCommentResponses(comments, viewer)})
}

// DeleteComment 删除评论，仅评论作者可操作
func (a *API) DeleteComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse("comment not found"))
		return
	}

	if err := a.articles.DeleteComment(c.Param("slug"), uint(id), credential(c)); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
