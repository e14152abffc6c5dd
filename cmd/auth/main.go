package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Miraines/ChirpChat/auth-service/internal/adapters/db/mongodb"
	"github.com/Miraines/ChirpChat/auth-service/internal/adapters/media/cloudinary"
	httpapi "github.com/Miraines/ChirpChat/auth-service/internal/adapters/transport/http"
	httpmw "github.com/Miraines/ChirpChat/auth-service/internal/adapters/transport/http/middleware"
	appsvc "github.com/Miraines/ChirpChat/auth-service/internal/app/auth/service"
	"github.com/Miraines/ChirpChat/auth-service/internal/app/auth/token"
	"github.com/Miraines/ChirpChat/auth-service/internal/infra/config"
	lg "github.com/Miraines/ChirpChat/auth-service/internal/infra/log"
)

func main() {
	_ = godotenv.Load()

	zapLog := lg.Must(os.Getenv("ENVIRONMENT"), os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.DatabaseURL))
	if err != nil {
		zapLog.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		zapLog.Fatal("mongodb ping failed", zap.Error(err))
	}
	userRepo := mongodb.NewMongoUserRepo(client.Database(cfg.DatabaseName))
	if err := userRepo.EnsureIndexes(connectCtx); err != nil {
		zapLog.Fatal("failed to create indexes", zap.Error(err))
	}
	cancelConnect()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			zapLog.Error("mongodb disconnect", zap.Error(err))
		}
	}()

	tokens, err := token.NewUtil(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		zapLog.Fatal("failed to init token util", zap.Error(err))
	}
	uploader, err := cloudinary.New(cfg.CloudinaryURL)
	if err != nil {
		zapLog.Fatal("failed to init cloudinary", zap.Error(err))
	}

	svc := appsvc.New(userRepo, uploader, validator.New())
	handler := httpapi.NewHandler(svc, tokens, zapLog, cfg.CookieDomain, !cfg.IsDevelopment())

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpmw.RequestLogger(zapLog))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true, // the session cookie must survive CORS
		MaxAge:           12 * time.Hour,
	}))

	guard := httpmw.AuthGuard(tokens, userRepo, zapLog)
	handler.Register(router.Group("/api/auth"), guard)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server error", zap.Error(err))
		}
	}()
	zapLog.Info("auth service listening", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
}
