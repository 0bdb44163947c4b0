package models

import "time"

// SystemMetrics is a lightweight snapshot of runtime counters exposed
// alongside the Prometheus registry.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	GenerationsTotal         uint64    `json:"generationsTotal"`
	AverageGenerationMs      float64   `json:"averageGenerationMs"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
