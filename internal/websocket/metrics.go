package websocket

import (
	"sync"
	"time"
)

// Metrics aggregates broadcast delivery for one hub.
type Metrics struct {
	mu                 sync.RWMutex
	totalBroadcasts    int
	delivered          int
	dropped            int
	totalBroadcastTime time.Duration
	peakBroadcastTime  time.Duration
	peakRoomSize       int
	connects           int
	disconnects        int
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	TotalBroadcasts  int           `json:"totalBroadcasts"`
	Delivered        int           `json:"delivered"`
	Dropped          int           `json:"dropped"`
	AvgBroadcastTime time.Duration `json:"avgBroadcastTime"`
	PeakBroadcast    time.Duration `json:"peakBroadcastTime"`
	PeakRoomSize     int           `json:"peakRoomSize"`
	Connects         int           `json:"connects"`
	Disconnects      int           `json:"disconnects"`
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordBroadcast(roomSize, delivered int, took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalBroadcasts++
	m.delivered += delivered
	m.dropped += roomSize - delivered
	m.totalBroadcastTime += took
	if took > m.peakBroadcastTime {
		m.peakBroadcastTime = took
	}
	if roomSize > m.peakRoomSize {
		m.peakRoomSize = roomSize
	}
}

func (m *Metrics) RecordConnect() {
	m.mu.Lock()
	m.connects++
	m.mu.Unlock()
}

func (m *Metrics) RecordDisconnect() {
	m.mu.Lock()
	m.disconnects++
	m.mu.Unlock()
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := MetricsSnapshot{
		TotalBroadcasts: m.totalBroadcasts,
		Delivered:       m.delivered,
		Dropped:         m.dropped,
		PeakBroadcast:   m.peakBroadcastTime,
		PeakRoomSize:    m.peakRoomSize,
		Connects:        m.connects,
		Disconnects:     m.disconnects,
	}
	if m.totalBroadcasts > 0 {
		s.AvgBroadcastTime = m.totalBroadcastTime / time.Duration(m.totalBroadcasts)
	}
	return s
}
