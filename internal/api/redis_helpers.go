package api

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// incrWithTTL 自增计数器，首次创建时设置过期时间。
// 登录限流与简历上传限流共用。
func incrWithTTL(ctx context.Context, client redisRateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}

// 限流与锁定键统一在这里构造，前缀固定便于运维批量清理。

func loginRateKey(ip, username string, now time.Time) string {
	return "rate:login:" + ip + ":" + username + ":" + now.UTC().Format("2006010215")
}

func uploadRateKey(userID uint, now time.Time) string {
	return fmt.Sprintf("rate:resume-upload:%d:%s", userID, now.UTC().Format("20060102"))
}

func loginLockKey(username string) string { return "lock:login:" + username }

func loginFailKey(username string) string { return "lock:login:fail:" + username }
