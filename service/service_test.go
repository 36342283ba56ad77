package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"conduit/database"
)

// setupTestDB 创建测试数据库（使用 SQLite 内存数据库）
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("无法创建测试数据库: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

// registerUser 测试辅助：注册一个用户
func registerUser(t *testing.T, users UserService, username, email, password string) *database.User {
	t.Helper()

	var req database.RegisterRequest
	req.User.Username = username
	req.User.Email = email
	req.User.Password = password

	user, err := users.Register(req)
	if err != nil {
		t.Fatalf("注册用户 %s 失败: %v", username, err)
	}
	return user
}

// createArticle 测试辅助：发布一篇文章
func createArticle(t *testing.T, articles ArticleService, authorEmail, title string, tags ...string) *database.Article {
	t.Helper()

	var req database.CreateArticleRequest
	req.Article.Title = title
	req.Article.Description = "description of " + title
	req.Article.Body = "body of " + title
	req.Article.TagList = tags

	article, err := articles.Create(authorEmail, req)
	if err != nil {
		t.Fatalf("创建文章 %q 失败: %v", title, err)
	}
	return article
}

// newServices 测试辅助：在同一数据库上构建全部服务
func newServices(t *testing.T) (UserService, ProfileService, ArticleService, TagService) {
	t.Helper()

	db := setupTestDB(t)
	users, err := NewUserService(db)
	if err != nil {
		t.Fatalf("创建用户服务失败: %v", err)
	}
	profiles, err := NewProfileService(db)
	if err != nil {
		t.Fatalf("创建资料服务失败: %v", err)
	}
	articles, err := NewArticleService(db)
	if err != nil {
		t.Fatalf("创建文章服务失败: %v", err)
	}
	tags, err := NewTagService(db, nil)
	if err != nil {
		t.Fatalf("创建标签服务失败: %v", err)
	}
	return users, profiles, articles, tags
}
