package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/metrics"
	"golang.org/x/sync/errgroup"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/wyfcoding/riskanalysis/internal/riskanalysis/application"
	"github.com/wyfcoding/riskanalysis/internal/riskanalysis/domain"
	"github.com/wyfcoding/riskanalysis/internal/riskanalysis/infrastructure/messaging"
	"github.com/wyfcoding/riskanalysis/internal/riskanalysis/infrastructure/persistence"
	risk_http "github.com/wyfcoding/riskanalysis/internal/riskanalysis/interfaces/http"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/riskanalysis/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Sprintf("read config failed: %v", err))
	}

	// 2. Logger
	logger := logging.NewLogger("riskanalysis", "main", viper.GetString("log.level"))
	slog.SetDefault(logger.Logger)

	// 3. Metrics
	m := metrics.NewMetrics(viper.GetString("server.name"))
	if viper.GetBool("metrics.enabled") {
		go m.ExposeHttp(viper.GetString("metrics.port"))
	}

	// 4. Engine
	engineCfg := loadEngineConfig()
	engine, err := domain.NewEngine(engineCfg)
	if err != nil {
		panic(fmt.Sprintf("engine config invalid: %v", err))
	}

	// 5. Database
	dsn := viper.GetString("database.source")
	db, err := gorm.Open(gorm_mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("connect db failed: %v", err))
	}
	repo := persistence.NewGormAssessmentRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		panic(fmt.Sprintf("migrate db failed: %v", err))
	}

	// 6. Messaging
	var publisher domain.EventPublisher = messaging.NoopPublisher{}
	var kafkaPub *messaging.KafkaEventPublisher
	if viper.GetBool("messaging.enabled") {
		kafkaPub = messaging.NewKafkaEventPublisher(messaging.KafkaConfig{
			Brokers:      viper.GetStringSlice("messaging.brokers"),
			MaxRetries:   viper.GetInt("messaging.max_retries"),
			RetryBackoff: viper.GetInt("messaging.retry_backoff"),
		}, logger.Logger)
		publisher = kafkaPub
	}

	// 7. Application & Interfaces
	appService := application.NewRiskAnalysisService(engine, repo, publisher, logger.Logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler := risk_http.NewRiskAnalysisHandler(appService)
	handler.RegisterRoutes(&r.RouterGroup)

	sys := r.Group("/sys")
	{
		sys.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		sys.GET("/ready", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "READY"}) })
	}
	pp := r.Group("/debug/pprof")
	{
		pp.GET("/", gin.WrapF(pprof.Index))
		pp.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pp.GET("/profile", gin.WrapF(pprof.Profile))
		pp.GET("/symbol", gin.WrapF(pprof.Symbol))
		pp.GET("/trace", gin.WrapF(pprof.Trace))
	}

	// 8. Start
	g, ctx := errgroup.WithContext(context.Background())

	httpPort := viper.GetString("server.http_port")
	if httpPort == "" {
		httpPort = "8090"
	}
	server := &http.Server{Addr: fmt.Sprintf(":%s", httpPort), Handler: r}
	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// 9. Graceful Shutdown
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down server...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if kafkaPub != nil {
			if err := kafkaPub.Close(); err != nil {
				slog.Warn("close kafka publisher failed", "error", err)
			}
		}
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}

// loadEngineConfig 从配置文件读取引擎参数，缺省项回落到默认配置
func loadEngineConfig() domain.Config {
	cfg := domain.DefaultConfig()

	if viper.IsSet("risk.weights") {
		cfg.Weights = domain.Weights{
			Regulatory:  viper.GetFloat64("risk.weights.regulatory"),
			Signal:      viper.GetFloat64("risk.weights.signal"),
			Operational: viper.GetFloat64("risk.weights.operational"),
		}
	}
	if viper.IsSet("risk.bands") {
		cfg.Bands = domain.Bands{
			LowMax:    viper.GetInt("risk.bands.low_max"),
			MediumMax: viper.GetInt("risk.bands.medium_max"),
			HighMax:   viper.GetInt("risk.bands.high_max"),
		}
	}
	if viper.IsSet("risk.review_interval_days") {
		for _, level := range domain.AllRiskLevels() {
			key := "risk.review_interval_days." + string(level)
			if viper.IsSet(key) {
				cfg.ReviewIntervalDays[level] = viper.GetInt(key)
			}
		}
	}
	if viper.IsSet("risk.material_impact_threshold") {
		cfg.MaterialImpactThreshold = viper.GetInt("risk.material_impact_threshold")
	}
	if viper.IsSet("risk.control_min_effectiveness") {
		cfg.ControlMinEffectiveness = viper.GetFloat64("risk.control_min_effectiveness")
	}
	if viper.IsSet("risk.risk_appetite") {
		cfg.RiskAppetite = domain.RiskLevel(viper.GetString("risk.risk_appetite"))
	}
	if viper.IsSet("risk.controls") {
		var controls []domain.ControlConfig
		if err := viper.UnmarshalKey("risk.controls", &controls); err == nil && len(controls) > 0 {
			cfg.Controls = controls
		}
	}
	return cfg
}
