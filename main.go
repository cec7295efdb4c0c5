package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"go-splendor/config"
	"go-splendor/controller"
	"go-splendor/engine"
	"go-splendor/lineserver"
	"go-splendor/logger"
	"go-splendor/repository"
	"go-splendor/router"
	"go-splendor/service"
	"go-splendor/session"
	"go-splendor/utils"
	"go-splendor/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// gameFactory DECK_SEED 非 0 时第 n 局使用 seed+n，方便复现
func gameFactory(seed uint64) session.GameFactory {
	var games atomic.Uint64
	return func(names []string) (*engine.Game, error) {
		if seed == 0 {
			return engine.NewStandardGame(names)
		}
		return engine.NewStandardGame(names, engine.WithSeed(seed+games.Add(1)-1))
	}
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowOrigins
	}
	return c
}

// reportError 日志还没建好时也要让启动失败可见
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "splendor: %v\n", err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// run 装配所有组件并阻塞到 ctx 取消或某个服务退出
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置: %w", err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return fmt.Errorf("初始化日志: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	rdb, err := repository.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Error("❌ Redis 初始化失败", zap.Error(err))
		return fmt.Errorf("连接 Redis: %w", err)
	}
	defer rdb.Close()
	store := repository.NewRoomStore(rdb)

	var archive service.ResultArchive
	if cfg.MySQLDSN != "" {
		db, err := repository.OpenMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			log.Error("❌ MySQL 初始化失败", zap.Error(err))
			return fmt.Errorf("连接 MySQL: %w", err)
		}
		defer db.Close()
		a := repository.NewResultArchive(db)
		if err := a.EnsureSchema(ctx); err != nil {
			log.Error("❌ MySQL 建表失败", zap.Error(err))
			return fmt.Errorf("MySQL 建表: %w", err)
		}
		archive = a
	}

	lobby := session.NewLobby(gameFactory(cfg.DeckSeed),
		session.WithObserver(service.NewRecorder(store, archive, log)),
		session.WithLogger(log),
		session.WithDefaultMaxPlayers(cfg.DefaultMaxPlayers),
	)
	issuer := utils.NewTokenIssuer(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	if !cfg.LogDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg)))
	router.InitRouter(r, router.Handlers{
		Room:   controller.NewRoomController(service.NewRoomService(lobby, store, log)),
		Auth:   controller.NewAuthController(issuer),
		WS:     ws.NewHandler(lobby, issuer.Identify, log),
		Issuer: issuer,
	})

	lineErr := make(chan error, 1)
	go func() {
		if err := lineserver.New(lobby, log).ListenAndServe(ctx, cfg.LineAddr); err != nil {
			log.Error("❌ 文本协议服务异常退出", zap.Error(err))
			lineErr <- fmt.Errorf("文本协议服务: %w", err)
			stop()
		}
	}()

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("🚀 服务启动", zap.String("http", cfg.HTTPAddr), zap.String("line", cfg.LineAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("❌ HTTP 服务异常退出", zap.Error(err))
		stop()
		return fmt.Errorf("HTTP 服务: %w", err)
	}
	select {
	case err := <-lineErr:
		return err
	default:
	}
	log.Info("👋 服务已停止")
	return nil
}
