package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotAggregatesCacheOperations(t *testing.T) {
	svc := NewMetricsService()

	svc.RecordCacheOperation(true, 2*time.Millisecond)
	svc.RecordCacheOperation(true, 2*time.Millisecond)
	svc.RecordCacheOperation(false, 5*time.Millisecond)

	snap := svc.Snapshot()
	assert.Equal(t, uint64(2), snap.CacheHits)
	assert.Equal(t, uint64(1), snap.CacheMisses)
	assert.InDelta(t, 2.0/3.0, snap.CacheHitRatio, 0.001)
}

func TestSnapshotAggregatesUpstreamCalls(t *testing.T) {
	svc := NewMetricsService()

	svc.ObserveUpstreamCall("/students", 10*time.Millisecond)
	svc.ObserveUpstreamCall("bulk save", 30*time.Millisecond)

	snap := svc.Snapshot()
	assert.Equal(t, uint64(2), snap.UpstreamCallCount)
	assert.InDelta(t, 20.0, snap.AverageUpstreamDurationMs, 0.001)
}

func TestSnapshotAggregatesHTTPRequests(t *testing.T) {
	svc := NewMetricsService()

	svc.ObserveHTTPRequest("GET", "/api/v1/marks", 200, 4*time.Millisecond)

	snap := svc.Snapshot()
	assert.Equal(t, uint64(1), snap.RequestsTotal)
	assert.InDelta(t, 4.0, snap.AverageRequestDurationMs, 0.001)
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var svc *MetricsService

	svc.RecordCacheOperation(true, time.Millisecond)
	svc.ObserveUpstreamCall("/students", time.Millisecond)
	svc.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)

	assert.Zero(t, svc.Snapshot().RequestsTotal)
}
