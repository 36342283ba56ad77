package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"conduit/database"
)

// slug 分配是先查计数再插入，并发同名标题会撞唯一索引，重读计数重试
const slugRetries = 3

// ListFilter 文章列表筛选条件
type ListFilter struct {
	Tag       string
	Author    string
	Favorited string
	Limit     int
	Offset    int
}

// ArticleService 文章、评论与收藏
type ArticleService interface {
	Create(authorEmail string, req database.CreateArticleRequest) (*database.Article, error)
	GetBySlug(slug string) (*database.Article, error)
	List(filter ListFilter) ([]database.Article, error)
	Feed(viewer *Viewer, limit, offset int) ([]database.Article, error)
	Update(slug, actorEmail string, req database.UpdateArticleRequest) (*database.Article, error)
	Delete(slug, actorEmail string) error

	Favorite(slug string, viewer *Viewer) (*database.Article, error)
	Unfavorite(slug string, viewer *Viewer) (*database.Article, error)

	AddComment(slug, authorEmail, body string) (*database.Comment, error)
	Comments(slug string) ([]database.Comment, error)
	DeleteComment(slug string, commentID uint, actorEmail string) error
}

type articleService struct {
	db *gorm.DB
}

func NewArticleService(db *gorm.DB) (ArticleService, error) {
	if db == nil {
		return nil, errors.New("数据库连接不能为空")
	}
	return &articleService{db: db}, nil
}

// withRelations 文章查询统一预加载作者、标签与收藏者
func (s *articleService) withRelations() *gorm.DB {
	return s.db.Preload("Author").Preload("Tags").Preload("FavoritedBy")
}

// Create 创建文章。slug 冲突时重新分配再试。
func (s *articleService) Create(authorEmail string, req database.CreateArticleRequest) (*database.Article, error) {
	var author database.User
	if err := s.db.Where("email = ?", authorEmail).First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: author not found", ErrNotFound)
		}
		return nil, err
	}

	var article *database.Article
	var lastErr error
	for attempt := 0; attempt < slugRetries; attempt++ {
		article, lastErr = s.tryCreate(&author, req)
		if lastErr == nil {
			return s.GetBySlug(article.Slug)
		}
		if !isUniqueViolation(lastErr) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (s *articleService) tryCreate(author *database.User, req database.CreateArticleRequest) (*database.Article, error) {
	article := &database.Article{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		AuthorID:    author.ID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := allocateSlug(tx, req.Article.Title)
		if err != nil {
			return err
		}
		article.Slug = slug

		tags, err := upsertTags(tx, req.Article.TagList)
		if err != nil {
			return err
		}
		article.Tags = tags

		return tx.Create(article).Error
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// upsertTags 按名称取或建标签，同名永不建第二行
func upsertTags(tx *gorm.DB, names []string) ([]database.Tag, error) {
	tags := make([]database.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag database.Tag
		if err := tx.Where(database.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// GetBySlug 按 slug 获取文章
func (s *articleService) GetBySlug(slug string) (*database.Article, error) {
	var article database.Article
	if err := s.withRelations().Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: article %s not found", ErrNotFound, slug)
		}
		return nil, err
	}
	return &article, nil
}

// List 按条件列出文章，创建时间倒序
func (s *articleService) List(filter ListFilter) ([]database.Article, error) {
	query := s.withRelations().Model(&database.Article{}).Select("articles.*")

	if filter.Tag != "" {
		query = query.
			Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id AND tags.name = ?", filter.Tag)
	}
	if filter.Author != "" {
		query = query.
			Joins("JOIN users authors ON authors.id = articles.author_id AND authors.username = ?", filter.Author)
	}
	if filter.Favorited != "" {
		query = query.
			Joins("JOIN article_favorites ON article_favorites.article_id = articles.id").
			Joins("JOIN users fans ON fans.id = article_favorites.user_id AND fans.username = ?", filter.Favorited)
	}

	limit, offset := normalizePage(filter.Limit, filter.Offset)

	var articles []database.Article
	err := query.
		Order("articles.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// Feed 关注作者的文章，创建时间倒序。关注集合为空时直接返回空列表。
func (s *articleService) Feed(viewer *Viewer, limit, offset int) ([]database.Article, error) {
	if viewer == nil {
		return nil, fmt.Errorf("%w: feed requires authentication", ErrUnauthorized)
	}
	if len(viewer.Following) == 0 {
		return []database.Article{}, nil
	}

	ids := make([]uint, 0, len(viewer.Following))
	for id := range viewer.Following {
		ids = append(ids, id)
	}

	limit, offset = normalizePage(limit, offset)

	var articles []database.Article
	err := s.withRelations().
		Where("author_id IN ?", ids).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Update 部分更新文章，仅作者可操作。改标题时按同一规则重算 slug。
func (s *articleService) Update(slug, actorEmail string, req database.UpdateArticleRequest) (*database.Article, error) {
	article, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if err := s.guardOwner(article.Author.Email, actorEmail); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < slugRetries; attempt++ {
		slug := article.Slug
		lastErr = s.db.Transaction(func(tx *gorm.DB) error {
			updates := map[string]interface{}{}
			if req.Article.Title != nil && *req.Article.Title != "" && *req.Article.Title != article.Title {
				newSlug, err := allocateSlug(tx, *req.Article.Title)
				if err != nil {
					return err
				}
				updates["title"] = *req.Article.Title
				updates["slug"] = newSlug
				slug = newSlug
			}
			if req.Article.Description != nil {
				updates["description"] = *req.Article.Description
			}
			if req.Article.Body != nil {
				updates["body"] = *req.Article.Body
			}
			if len(updates) == 0 {
				return nil
			}
			return tx.Model(article).Updates(updates).Error
		})
		if lastErr == nil {
			return s.GetBySlug(slug)
		}
		if !isUniqueViolation(lastErr) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// Delete 删除文章及其评论和关联，仅作者可操作
func (s *articleService) Delete(slug, actorEmail string) error {
	article, err := s.GetBySlug(slug)
	if err != nil {
		return err
	}
	if err := s.guardOwner(article.Author.Email, actorEmail); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(article).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(article).Association("FavoritedBy").Clear(); err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Unscoped().Delete(&database.Comment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(article).Error
	})
}

// guardOwner 资源已确认存在后再比对作者身份
func (s *articleService) guardOwner(ownerEmail, actorEmail string) error {
	if ownerEmail != actorEmail {
		return fmt.Errorf("%w: not the author", ErrForbidden)
	}
	return nil
}

// Favorite 收藏文章。重复收藏不报错也不会重复计数。
func (s *articleService) Favorite(slug string, viewer *Viewer) (*database.Article, error) {
	if viewer == nil {
		return nil, fmt.Errorf("%w: favorite requires authentication", ErrUnauthorized)
	}
	article, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	user := database.User{Model: gorm.Model{ID: viewer.ID}}
	if err := s.db.Model(article).Association("FavoritedBy").Append(&user); err != nil {
		return nil, err
	}

	return s.GetBySlug(slug)
}

// Unfavorite 取消收藏，未收藏时为空操作
func (s *articleService) Unfavorite(slug string, viewer *Viewer) (*database.Article, error) {
	if viewer == nil {
		return nil, fmt.Errorf("%w: unfavorite requires authentication", ErrUnauthorized)
	}
	article, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	user := database.User{Model: gorm.Model{ID: viewer.ID}}
	if err := s.db.Model(article).Association("FavoritedBy").Delete(&user); err != nil {
		return nil, err
	}

	return s.GetBySlug(slug)
}

// AddComment 在文章下新增评论
func (s *articleService) AddComment(slug, authorEmail, body string) (*database.Comment, error) {
	article, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	var author database.User
	if err := s.db.Where("email = ?", authorEmail).First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: author not found", ErrNotFound)
		}
		return nil, err
	}

	comment := &database.Comment{
		ArticleID: article.ID,
		AuthorID:  author.ID,
		Body:      body,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	comment.Author = author

	return comment, nil
}

// Comments 列出文章的全部评论，创建时间倒序
func (s *articleService) Comments(slug string) ([]database.Comment, error) {
	article, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	var comments []database.Comment
	err = s.db.Preload("Author").
		Where("article_id = ?", article.ID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment 删除评论，仅评论作者可操作
func (s *articleService) DeleteComment(slug string, commentID uint, actorEmail string) error {
	article, err := s.GetBySlug(slug)
	if err != nil {
		return err
	}

	var comment database.Comment
	err = s.db.Preload("Author").
		Where("id = ? AND article_id = ?", commentID, article.ID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: comment %d not found", ErrNotFound, commentID)
		}
		return err
	}

	if err := s.guardOwner(comment.Author.Email, actorEmail); err != nil {
		return err
	}

	return s.db.Unscoped().Delete(&comment).Error
}
