package service

import (
	"sort"
	"time"

	"conduit/database"
)

// Viewer 当前请求的已认证访问者及其关注集合。
// nil Viewer 表示匿名访问，所有相对字段取 false。
type Viewer struct {
	ID        uint
	Email     string
	Following map[uint]bool
}

// Follows 判断访问者是否关注某用户
func (v *Viewer) Follows(userID uint) bool {
	return v != nil && v.Following[userID]
}

// Is 判断访问者是否为某用户
func (v *Viewer) Is(userID uint) bool {
	return v != nil && v.ID == userID
}

// ProfileResponse 用户公开资料
type ProfileResponse struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// ArticleResponse 文章响应结构体
type ArticleResponse struct {
	Slug           string          `json:"slug"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Body           string          `json:"body"`
	TagList        []string        `json:"tagList"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Favorited      bool            `json:"favorited"`
	FavoritesCount int             `json:"favoritesCount"`
	Author         ProfileResponse `json:"author"`
}

// CommentResponse 评论响应结构体
type CommentResponse struct {
	ID        uint            `json:"id"`
	Body      string          `json:"body"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Author    ProfileResponse `json:"author"`
}

// NewProfileResponse 将用户映射为公开资料，following 相对于访问者计算
func NewProfileResponse(user *database.User, viewer *Viewer) ProfileResponse {
	return ProfileResponse{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: viewer.Follows(user.ID),
	}
}

// NewArticleResponse 将文章记录映射为响应结构。favorited、following
// 与 favoritesCount 只在这里计算，列表、详情、feed 与收藏接口共用。
func NewArticleResponse(article *database.Article, viewer *Viewer) ArticleResponse {
	tags := make([]string, 0, len(article.Tags))
	for _, tag := range article.Tags {
		tags = append(tags, tag.Name)
	}
	sort.Strings(tags)

	favorited := false
	for _, u := range article.FavoritedBy {
		if viewer.Is(u.ID) {
			favorited = true
			break
		}
	}

	return ArticleResponse{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        tags,
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: len(article.FavoritedBy),
		Author:         NewProfileResponse(&article.Author, viewer),
	}
}

// NewArticleResponses 批量映射，保持入参顺序
func NewArticleResponses(articles []database.Article, viewer *Viewer) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, NewArticleResponse(&articles[i], viewer))
	}
	return out
}

// NewCommentResponse 将评论记录映射为响应结构
func NewCommentResponse(comment *database.Comment, viewer *Viewer) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Author:    NewProfileResponse(&comment.Author, viewer),
	}
}

// NewCommentResponses 批量映射评论
func NewCommentResponses(comments []database.Comment, viewer *Viewer) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i], viewer))
	}
	return out
}

// UserResponse 认证用户自身信息（带令牌）
type UserResponse struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// NewUserResponse 将用户与令牌映射为响应结构
func NewUserResponse(user *database.User, token string) UserResponse {
	return UserResponse{
		Email:    user.Email,
		Token:    token,
		Username: user.Username,
		Bio:      user.Bio,
		Image:    user.Image,
	}
}
