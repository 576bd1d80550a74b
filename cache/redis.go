package cache

import (
	"context"
	"errors"
	"time"

	"github.com/BinLe1988/heartlink/configs"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// 管理端统计快照的缓存键和有效期
const (
	AdminStatsKey = "admin:stats"
	AdminStatsTTL = time.Minute
)

// Initialize 初始化Redis连接
func Initialize(cfg *configs.Config) error {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	RDB = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		_ = RDB.Close()
		RDB = nil
		return err
	}
	return nil
}

// Close 关闭Redis连接
func Close() {
	if RDB != nil {
		_ = RDB.Close()
	}
}

// GetStats 读取统计快照，缓存未命中时返回空串
func GetStats(ctx context.Context) (string, error) {
	if RDB == nil {
		return "", nil
	}
	val, err := RDB.Get(ctx, AdminStatsKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

// SetStats 写入统计快照并刷新有效期
func SetStats(ctx context.Context, payload string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Set(ctx, AdminStatsKey, payload, AdminStatsTTL).Err()
}
