package app

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"arizabot/internal/config"
	"arizabot/internal/handlers"
	"arizabot/internal/logger"
	"arizabot/internal/repositories"
	"arizabot/internal/routes"
	"arizabot/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Run() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("config: ", err)
	}

	zlog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zlog.Sync()
	zlog.Info("configured admins", zap.Int("count", len(cfg.Telegram.AdminChatIDs)))

	// === Storage ===
	repo := repositories.NewApplicationRepository(cfg.Storage.CSVPath, zlog)

	// === Telegram channel ===
	channel, err := services.NewTelegramChannel(
		cfg.Telegram.Token,
		time.Duration(cfg.Telegram.RequestTimeout)*time.Second,
		zlog,
	)
	if err != nil {
		zlog.Fatal("telegram", zap.Error(err))
	}

	// === Services ===
	submission := services.NewSubmissionService(repo, channel, cfg.Telegram.AdminChatIDs, zlog)
	intake := services.NewIntakeService(services.NewSessionStore(), channel, submission, zlog)
	export := services.NewExportService(repo, channel, cfg.Storage.DownloadDir, &http.Client{Timeout: 60 * time.Second}, zlog)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(cfg.Dashboard.PasswordHash, cfg.Dashboard.JWTSecret, zlog)
	appHandler := handlers.NewApplicationHandler(repo, export, zlog)

	// === Bot poll loop ===
	go func() {
		updates := channel.Updates(cfg.Telegram.PollTimeout)
		zlog.Info("bot polling started")
		for update := range updates {
			if in, ok := services.InboundFromUpdate(update); ok {
				intake.Dispatch(in)
			}
		}
	}()

	// === Dashboard ===
	router := gin.Default()
	routes.SetupRoutes(router, cfg.Dashboard.JWTSecret, authHandler, appHandler)

	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	zlog.Info("dashboard listening", zap.String("addr", listenAddr))
	if err := router.Run(listenAddr); err != nil {
		zlog.Fatal("server", zap.Error(err))
	}
}
