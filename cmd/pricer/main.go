package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/netutil"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/wyfcoding/optionpricing/internal/pricing/application"
	"github.com/wyfcoding/optionpricing/internal/pricing/infrastructure/messaging"
	persistence_mysql "github.com/wyfcoding/optionpricing/internal/pricing/infrastructure/persistence/mysql"
	"github.com/wyfcoding/optionpricing/internal/pricing/interfaces/batch"
	httphandler "github.com/wyfcoding/optionpricing/internal/pricing/interfaces/http"
	"github.com/wyfcoding/optionpricing/pkg/config"
	"github.com/wyfcoding/optionpricing/pkg/logger"
	"github.com/wyfcoding/optionpricing/pkg/metrics"
	"github.com/wyfcoding/optionpricing/pkg/middleware"
)

func usage() {
	fmt.Fprintf(os.Stderr, `American option pricer

Usage:
  pricer [flags] load <file>    price a JSONL request file (gzip transparent)
  pricer [flags] serve          run the pricing HTTP service

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Logger.Level = "debug"
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	slog.Info("starting american option pricer", "environment", cfg.Environment)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "load":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		runLoad(args[1])
	case "serve":
		runServe(cfg)
	default:
		usage()
		os.Exit(2)
	}
}

// runLoad 批处理模式：逐行处理请求文件，结果写到标准输出。
// 任何一行失败都以非零状态退出，不保留部分输出。
func runLoad(path string) {
	slog.Info("processing input file", "file", path)

	app := application.NewPricingService()
	processor := batch.NewProcessor(app)

	if err := processor.ProcessFile(context.Background(), path, os.Stdout); err != nil {
		slog.Error("batch run failed", "file", path, "error", err)
		os.Exit(1)
	}
}

// runServe 服务模式：受限并发的同步定价接口。
func runServe(cfg *config.Config) {
	m := metrics.New(cfg.ServiceName)
	if cfg.Metrics.Enabled {
		if err := m.Register(); err != nil {
			slog.Error("failed to register metrics", "error", err)
			os.Exit(1)
		}
		go func() {
			if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	// 可选基础设施：估值历史落库与批次事件发布
	var opts []application.Option
	if cfg.Database.Enabled {
		db, err := openDatabase(cfg.Database)
		if err != nil {
			slog.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		opts = append(opts, application.WithValuationHistory(persistence_mysql.NewValuationRepository(db)))
	}
	if cfg.Kafka.Enabled {
		publisher := messaging.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer publisher.Close()
		opts = append(opts, application.WithEventPublisher(publisher))
	}

	app := application.NewPricingService(opts...)
	handler := httphandler.NewPricingHandler(app, cfg.Pricing.MaxConcurrentCalcs, m)

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.Logging(), middleware.Recovery(), middleware.Metrics(m))
	handler.RegisterRoutes(engine)
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": cfg.ServiceName, "timestamp": time.Now().Unix()})
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		slog.Error("failed to listen", "addr", addr, "error", err)
		os.Exit(1)
	}
	// 接入连接数与计算并发分开限制：连接在监听器处封顶，
	// 计算在处理器的准入信号量处排队
	lis = netutil.LimitListener(lis, cfg.HTTP.MaxConnections)

	server := &http.Server{
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr,
			"max_connections", cfg.HTTP.MaxConnections,
			"max_concurrent_calcs", cfg.Pricing.MaxConcurrentCalcs)
		if err := server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

// openDatabase 建立 MySQL 连接并迁移估值历史表。
func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.AutoMigrate(&persistence_mysql.ValuationModel{}); err != nil {
		return nil, err
	}
	return db, nil
}
