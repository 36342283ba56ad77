package database

import "gorm.io/gorm"

// Article 文章数据存储结构
type Article struct {
	gorm.Model
	Slug        string `gorm:"uniqueIndex;not null"`
	Title       string `gorm:"not null"`
	Description string `gorm:"size:2048"`
	Body        string `gorm:"size:2048"`
	AuthorID    uint   `gorm:"index;not null"`
	Author      User
	Tags        []Tag     `gorm:"many2many:article_tags;"`
	FavoritedBy []User    `gorm:"many2many:article_favorites;"`
	Comments    []Comment `gorm:"foreignKey:ArticleID"`
}

// Comment 评论数据存储结构
type Comment struct {
	gorm.Model
	ArticleID uint `gorm:"index;not null"`
	AuthorID  uint `gorm:"index;not null"`
	Author    User
	Body      string `gorm:"size:2048"`
}

// Tag 标签，按名称唯一，文章创建时按需建行
type Tag struct {
	gorm.Model
	Name     string    `gorm:"uniqueIndex;not null;size:100"`
	Articles []Article `gorm:"many2many:article_tags;"`
}

// CreateArticleRequest 创建文章请求结构体
type CreateArticleRequest struct {
	Article struct {
		Title       string   `json:"title" binding:"required,min=1"`
		Description string   `json:"description" binding:"required"`
		Body        string   `json:"body" binding:"required"`
		TagList     []string `json:"tagList"`
	} `json:"article" binding:"required"`
}

// UpdateArticleRequest 更新文章请求结构体，所有字段可选
type UpdateArticleRequest struct {
	Article struct {
		Title       *string `json:"title" binding:"omitempty,min=1"`
		Description *string `json:"description"`
		Body        *string `json:"body"`
	} `json:"article" binding:"required"`
}

// AddCommentRequest 新增评论请求结构体
type AddCommentRequest struct {
	Comment struct {
		Body string `json:"body" binding:"required"`
	} `json:"comment" binding:"required"`
}
