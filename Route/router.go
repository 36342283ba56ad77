package Route

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"conduit/service"
)

// API 持有各服务实例，由 main 注入
type API struct {
	tokens   *service.TokenManager
	users    service.UserService
	profiles service.ProfileService
	articles service.ArticleService
	tags     service.TagService
}

func NewAPI(
	tokens *service.TokenManager,
	users service.UserService,
	profiles service.ProfileService,
	articles service.ArticleService,
	tags service.TagService,
) *API {
	return &API{
		tokens:   tokens,
		users:    users,
		profiles: profiles,
		articles: articles,
		tags:     tags,
	}
}

// NewRouter 注册全部路由
func NewRouter(a *API) *gin.Engine {
	r := gin.Default()

	// 配置CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(requestIDMiddleware())

	required := authMiddleware(a.tokens, true)
	optional := authMiddleware(a.tokens, false)

	api := r.Group("/api")

	// 用户与登录
	api.POST("/users", a.Register)
	api.POST("/users/login", a.Login)
	api.GET("/user", required, a.CurrentUser)
	api.PUT("/user", required, a.UpdateCurrentUser)

	// 公开资料与关注
	api.GET("/profiles/:username", optional, a.GetProfile)
	api.POST("/profiles/:username/follow", required, a.Follow)
	api.DELETE("/profiles/:username/follow", required, a.Unfollow)

	// 文章
	api.GET("/articles", optional, a.ListArticles)
	api.GET("/articles/feed", required, a.Feed)
	api.GET("/articles/:slug", optional, a.GetArticle)
	api.POST("/articles", required, a.CreateArticle)
	api.PUT("/articles/:slug", required, a.UpdateArticle)
	api.DELETE("/articles/:slug", required, a.DeleteArticle)

	// 评论
	api.POST("/articles/:slug/comments", required, a.AddComment)
	api.GET("/articles/:slug/comments", optional, a.ListComments)
	api.DELETE("/articles/:slug/comments/:id", required, a.DeleteComment)

	// 收藏
	api.POST("/articles/:slug/favorite", required, a.FavoriteArticle)
	api.DELETE("/articles/:slug/favorite", required, a.UnfavoriteArticle)

	// 标签
	api.GET("/tags", a.ListTags)

	return r
}
