package session

import "time"

// Metrics receives counters about a session's progress.
type Metrics interface {
	ChunkReceived(bytes int)
	RecordDecoded(tag string)
	DecodeFailed(tag string)
	SnapshotPublished()
	SessionFinished(state string, elapsed time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) ChunkReceived(int) {}
func (noopMetrics) RecordDecoded(string) {}
func (noopMetrics) DecodeFailed(string) {}
func (noopMetrics) SnapshotPublished() {}
func (noopMetrics) SessionFinished(string, time.Duration) {}
