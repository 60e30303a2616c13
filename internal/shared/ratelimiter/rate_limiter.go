// Package ratelimiter はクライアント単位のリクエスト頻度制限を提供します。
package ratelimiter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// maxTrackedKeys はメモリ上で追跡するキーの上限です。
const maxTrackedKeys = 10000

// Limiter はキーごとに操作の頻度を制限するインターフェースです。
type Limiter interface {
	// Allow はkeyのリクエストを許可する場合にtrueを返します。
	Allow(ctx context.Context, key string) (bool, error)
}

// bucket はキーごとのトークンバケットと最終アクセス時刻です。
type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter はプロセス内のトークンバケットでキーごとに頻度を制限します。
// 複数インスタンス間では共有されません。
// 上限に達した場合は、満タンに戻ったアイドルなバケットを削除し、
// それでも空きがなければ最も長く使われていないキーを1つだけ削除します。
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	window  time.Duration
	maxKeys int
	now     func() time.Time
}

var _ Limiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter はwindowあたりrequests回を上限とするMemoryLimiterを生成します。
func NewMemoryLimiter(requests int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		window:  window,
		maxKeys: maxTrackedKeys,
		now:     time.Now,
	}
}

// Allow は常にnilエラーを返します。
func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	b, ok := m.buckets[key]
	if !ok {
		if len(m.buckets) >= m.maxKeys {
			m.evict(now)
		}
		b = &bucket{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1), nil
}

// evict はwindow以上アクセスのないバケットを削除します。
// 該当がなければ最終アクセスが最も古いキーを1つ削除します。
func (m *MemoryLimiter) evict(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, b := range m.buckets {
		if now.Sub(b.lastSeen) >= m.window {
			delete(m.buckets, k)
			continue
		}
		if !found || b.lastSeen.Before(oldest) {
			oldestKey, oldest, found = k, b.lastSeen, true
		}
	}
	if len(m.buckets) >= m.maxKeys {
		delete(m.buckets, oldestKey)
	}
}

// RedisLimiter はRedisの固定ウィンドウカウンターでキーごとに頻度を制限します。
// 複数インスタンスで同じ上限を共有します。
type RedisLimiter struct {
	rdb      *redis.Client
	requests int
	window   time.Duration
	prefix   string
	now      func() time.Time
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter はwindowあたりrequests回を上限とするRedisLimiterを生成します。
// prefixが空の場合は"ratelimit"を使用します。
func NewRedisLimiter(rdb *redis.Client, requests int, window time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{
		rdb:      rdb,
		requests: requests,
		window:   window,
		prefix:   prefix,
		now:      time.Now,
	}
}

// Allow は現在のウィンドウのカウンターをINCRし、上限以内ならtrueを返します。
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowIndex := r.now().UnixNano() / int64(r.window)
	k := fmt.Sprintf("%s:%s:%d", r.prefix, key, windowIndex)

	var incr *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, r.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}
	return incr.Val() <= int64(r.requests), nil
}
