package main

import (
	"log"

	"conduit/Config"
	"conduit/Route"
	"conduit/database"
	"conduit/service"
)

func main() {
	cfg, err := Config.Load()
	if err != nil {
		log.Fatal("初始化配置失败: ", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}

	// redis 可选，连接失败时标签列表直接查库
	cache := database.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	tokens := service.NewTokenManager(cfg.SecretKey, cfg.TokenExpiry)

	users, err := service.NewUserService(db)
	if err != nil {
		log.Fatal(err)
	}
	profiles, err := service.NewProfileService(db)
	if err != nil {
		log.Fatal(err)
	}
	articles, err := service.NewArticleService(db)
	if err != nil {
		log.Fatal(err)
	}
	tags, err := service.NewTagService(db, cache)
	if err != nil {
		log.Fatal(err)
	}

	api := Route.NewAPI(tokens, users, profiles, articles, tags)
	r := Route.NewRouter(api)

	log.Println("服务器启动中...")
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
