package models

import "time"

// FetchResult is what a single proxied request produced.
type FetchResult struct {
	Proxy      string        `json:"proxy"`
	Target     string        `json:"target"`
	StatusCode int           `json:"status_code"`
	Body       string        `json:"-"`
	Latency    time.Duration `json:"latency"`
}

// FetchRecord is one journal row. Error is empty for successful fetches.
type FetchRecord struct {
	ID         int64     `json:"id"`
	Proxy      string    `json:"proxy"`
	Target     string    `json:"target"`
	Country    string    `json:"country,omitempty"`
	OK         bool      `json:"ok"`
	StatusCode int       `json:"status_code"`
	Bytes      int       `json:"bytes"`
	LatencyMS  int64     `json:"latency_ms"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
