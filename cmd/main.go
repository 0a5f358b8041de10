package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	v1 "chirp/api/v1"
	"chirp/config"
	"chirp/dao"
	"chirp/internal/locale"
	"chirp/internal/render"
	"chirp/internal/storage"
	myvalidator "chirp/internal/validator"
	"chirp/middleware"
	"chirp/model"
	"chirp/service"
)

func main() {
	// 初始化配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../"
	}
	config.InitConfig(configPath)
	config.InitLogger()
	config.InitRedis()

	// 初始化数据库
	db, err := gorm.Open(mysql.Open(config.GlobalConfig.MySQL.DSN), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// 自动迁移
	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}, &model.Attachment{}); err != nil {
		panic(err)
	}

	// 初始化 blob 存储
	blobs, err := storage.NewS3Store(context.Background(), config.GlobalConfig.Storage)
	if err != nil {
		config.Logger.Fatal("blob store init failed", zap.Error(err))
	}

	// 初始化 DAO 和 Service
	userDAO := dao.NewUserDAO(db)
	postDAO := dao.NewPostDAO(db)
	attachmentDAO := dao.NewAttachmentDAO(db)
	userService := service.NewUserService(userDAO, config.RedisClient)
	postService := service.NewPostService(postDAO, blobs, config.Logger)

	// 文档渲染器：URL 解析与本地化均由配置注入
	urls := &render.URLResolver{Host: config.GlobalConfig.App.Host}
	renderer := render.NewRenderer(urls, locale.ForCode(config.GlobalConfig.App.Locale))

	userAPI := v1.NewUserAPI(userService, renderer)
	postAPI := v1.NewPostAPI(postService, renderer)
	blobAPI := v1.NewBlobAPI(attachmentDAO, blobs)

	// 初始化路由
	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 注册自定义校验器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("phone", myvalidator.IsPhone); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("website", myvalidator.IsWebsite); err != nil {
			panic(err)
		}
	}

	// 公共路由
	public := r.Group("/api/v1")
	{
		public.POST("/users/register", userAPI.Register)
		loginLimiter := middleware.RateLimiter(config.RedisClient, "login", 5, time.Minute)
		public.POST("/users/login", loginLimiter, userAPI.Login)
		public.POST("/users/refresh", userAPI.RefreshToken)
		public.GET("/users/:id", userAPI.Get)
		public.GET("/posts/:id", postAPI.Get)
		public.GET("/blobs/proxy/:key/:filename", blobAPI.Proxy)
		public.GET("/blobs/:key/:filename", blobAPI.Redirect)
	}

	// 私有路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(userService.Session))
	{
		private.POST("/users/logout", userAPI.Logout)
		private.POST("/posts", postAPI.Create)
		uploadLimiter := middleware.RateLimiter(config.RedisClient, "upload", 30, time.Minute)
		private.POST("/posts/:id/images", uploadLimiter, postAPI.UploadImages)
		private.POST("/posts/:id/comments", postAPI.CreateComment)
	}

	// 启动服务
	if err := r.Run(config.GlobalConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
