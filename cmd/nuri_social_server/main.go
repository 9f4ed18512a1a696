package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nuri_social_server/internal/config"
	dao "nuri_social_server/internal/dao/mysql"
	myredis "nuri_social_server/internal/dao/redis"
	"nuri_social_server/internal/eventbus"
	"nuri_social_server/internal/gateway/subscription"
	"nuri_social_server/internal/handler"
	"nuri_social_server/internal/https_server"
	"nuri_social_server/internal/infrastructure/logger"
	"nuri_social_server/internal/infrastructure/push"
	"nuri_social_server/internal/infrastructure/sms"
	"nuri_social_server/internal/service"
	"nuri_social_server/pkg/util/jwt"
	"nuri_social_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("校验翻译器初始化失败", zap.Error(err))
	}

	// 4. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 5. 初始化 Redis
	cache := myredis.Init(conf)
	zap.L().Info("Redis 初始化成功")

	// 6. 初始化 JWT 和雪花 ID 生成器
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)

	// 7. 初始化 SMS 和推送网关
	smsService, err := sms.Init(conf.AuthCodeConfig, cache)
	if err != nil {
		zap.L().Fatal("SMS Service 初始化失败", zap.Error(err))
	}
	pushGateway := push.Init(conf.PushConfig)

	// 8. 初始化事件总线
	// channel 模式：单节点进程内分发
	// kafka 模式：多节点间经 Kafka 转发后再本地分发
	var bus eventbus.Bus
	if conf.KafkaConfig.MessageMode == "kafka" {
		bus = eventbus.NewKafkaBus(&conf.KafkaConfig)
		zap.L().Info("事件总线初始化成功（kafka 模式）")
	} else {
		bus = eventbus.NewChannelBus()
		zap.L().Info("事件总线初始化成功（channel 模式）")
	}

	// 9. 初始化 Service 层（依赖注入）
	services := service.NewServices(repos, cache, bus, smsService, pushGateway)
	zap.L().Info("Service 层初始化成功")

	// 10. 初始化 WebSocket 订阅网关和 Handler 层
	gateway := subscription.NewGateway(bus)
	handlers := handler.NewHandlers(services, gateway)

	// 11. 初始化 HTTP 服务器
	engine := https_server.Init(handlers)

	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: engine,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("服务器运行失败", zap.Error(err))
		}
	}()
	zap.L().Info("服务器启动成功", zap.String("host", host), zap.Int("port", port))

	// 设置信号监听，等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")

	// 先停 HTTP 服务，再关事件总线（关闭所有订阅流）
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("HTTP 服务关闭失败", zap.Error(err))
	}
	if err := bus.Close(); err != nil {
		zap.L().Error("事件总线关闭失败", zap.Error(err))
	}

	zap.L().Info("服务器已关闭")
}
