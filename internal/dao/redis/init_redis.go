// Package redis 提供 Redis 缓存操作的封装
// 本文件仅包含 Redis 连接初始化逻辑
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package redis

import (
	"strconv"

	"nuri_social_server/internal/config"

	"github.com/redis/go-redis/v9"
)

// Init 初始化 Redis 连接并创建缓存服务实例
// 返回 AsyncCacheService 接口，供 Service 层依赖注入使用
func Init(conf *config.Config) AsyncCacheService {
	addr := conf.RedisConfig.Host + ":" + strconv.Itoa(conf.RedisConfig.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.Db,
		// 连接池配置
		PoolSize:     50, // 最大连接数
		MinIdleConns: 15, // 最小空闲连接，与 Worker 数量匹配
	})

	// 启动 15 个 Worker，缓冲区大小 3000，多个 Service 共享
	return NewRedisCache(client, 15, 3000)
}
