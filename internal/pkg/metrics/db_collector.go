package metrics

import (
	"math"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// RecordPgxPoolMetrics updates pool gauges from a PostgreSQL pool.
func RecordPgxPoolMetrics(pool *pgxpool.Pool) {
	stats := pool.Stat()

	StorePoolConnections.WithLabelValues("in_use").Set(float64(stats.AcquiredConns()))
	StorePoolConnections.WithLabelValues("idle").Set(float64(stats.IdleConns()))
	StorePoolConnections.WithLabelValues("max").Set(float64(stats.MaxConns()))
}

// RecordRedisPoolMetrics updates pool gauges from a Redis client.
func RecordRedisPoolMetrics(client *redis.Client) {
	stats := client.PoolStats()

	StorePoolConnections.WithLabelValues("in_use").Set(inUse(stats.TotalConns, stats.IdleConns))
	StorePoolConnections.WithLabelValues("idle").Set(float64(stats.IdleConns))
	StorePoolConnections.WithLabelValues("max").Set(float64(client.Options().PoolSize))
}

// inUse derives busy connections from counters read separately, so idle may
// briefly exceed total.
func inUse(total, idle uint32) float64 {
	return math.Max(float64(total)-float64(idle), 0)
}
