package strategies

import (
	"errors"
	"sync"
)

var ErrEmpty = errors.New("no proxies available")

// RoundRobin hands out addresses in list order and wraps after the last one.
type RoundRobin struct {
	addrs []string
	index int
	mu    sync.Mutex
}

func NewRoundRobin(addrs []string) *RoundRobin {
	return &RoundRobin{addrs: clone(addrs)}
}

func (rr *RoundRobin) Next() (string, error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	if len(rr.addrs) == 0 {
		return "", ErrEmpty
	}
	addr := rr.addrs[rr.index]
	rr.index = (rr.index + 1) % len(rr.addrs)
	return addr, nil
}

// Reset swaps the whole list and rewinds the cursor.
func (rr *RoundRobin) Reset(addrs []string) {
	next := clone(addrs)
	rr.mu.Lock()
	defer rr.mu.Unlock()
	rr.addrs = next
	rr.index = 0
}

func (rr *RoundRobin) Snapshot() []string {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return clone(rr.addrs)
}

func (rr *RoundRobin) Len() int {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return len(rr.addrs)
}

func (rr *RoundRobin) Cursor() int {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return rr.index
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
