package Route

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"conduit/database"
	"conduit/service"
)

// ListArticles 文章列表，支持 tag、author、favorited 筛选
func (a *API) ListArticles(c *gin.Context) {
	viewer, err := a.profiles.ResolveViewer(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	filter := service.ListFilter{
		Tag:       c.Query("tag"),
		Author:    c.Query("author"),
		Favorited: c.Query("favorited"),
		Limit:     intQuery(c, "limit", 20),
		Offset:    intQuery(c, "offset", 0),
	}

	articles, err := a.articles.List(filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	responses := service.NewArticleResponses(articles, viewer)
	c.JSON(http.StatusOK, gin.H{
		"articles":      responses,
		"articlesCount": len(responses),
	})
}

// Feed 关注作者的文章
func (a *API) Feed(c *gin.Context) {
	viewer, err := a.profiles.ResolveViewer(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	articles, err := a.articles.Feed(viewer, intQuery(c, "limit", 20), intQuery(c, "offset", 0))
	if err != nil {
		abortWithError(c, err)
		return
	}

	responses := service.NewArticleResponses(articles, viewer)
	c.JSON(http.StatusOK, gin.H{
		"articles":      responses,
		"articlesCount": len(responses),
	})
}

// GetArticle 文章详情
func (a *API) GetArticle(c *gin.Context) {
	article, err := a.articles.GetBySlug(c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	viewer, err := a.profiles.ResolveViewer(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": service.NewArticleResponse(article, viewer)})
}

// CreateArticle 创建文章
func (a *API) CreateArticle(c *gin.Context) {
	var req database.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err)
		return
	}

	article, err := a.articles.Create(credential(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	viewer, err := a.profiles.ResolveViewer(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": service.NewArticleResponse(article, viewer)})
}

// UpdateArticle 更新文章，仅作者可操作
func (a *API) UpdateArticle(c *gin.Context) {
	var req database.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err)
		return
	}

	article, err := a.articles.Update(c.Param("slug"), credential(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	viewer, err := a.profiles.ResolveViewer(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": service.NewArticleResponse(article, viewer)})
}

// DeleteArticle 删除文章，仅作者可操作
func (a *API) DeleteArticle(c *gin.Context) {
	if err := a.articles.Delete(c.Param("slug"), credential(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// FavoriteArticle 收藏文章
func (a *API) FavoriteArticle(c *gin.Context) {
	viewer, err := a.profiles.ResolveViewer(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	article, err := a.articles.Favorite(c.Param("slug"), viewer)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": service.NewArticleResponse(article, viewer)})
}

// UnfavoriteArticle 取消收藏
func (a *API) UnfavoriteArticle(c *gin.Context) {
	viewer, err := a.profiles.ResolveViewer(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	article, err := a.articles.Unfavorite(c.Param("slug"), viewer)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": service.NewArticleResponse(article, viewer)})
}

// intQuery 解析非负整数查询参数，非法输入取默认值
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
