package balancer

import (
	"proxy-rotator/internal/errdefs"
	"proxy-rotator/internal/interfaces"
	"proxy-rotator/pkg/strategies"
)

// Balancer owns the proxy list and its cursor through a selection strategy.
type Balancer struct {
	strat interfaces.IStrategy
}

func NewBalancer(strat interfaces.IStrategy) *Balancer {
	return &Balancer{strat: strat}
}

func New(strategy string) (*Balancer, error) {
	strat, err := CreateStrategy(strategy, nil)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.ErrInvalidInput, err.Error())
	}
	return NewBalancer(strat), nil
}

func (b *Balancer) NextProxy() (string, error) {
	addr, err := b.strat.Next()
	if errdefs.Is(err, strategies.ErrEmpty) {
		return "", errdefs.ErrNoProxy
	}
	return addr, err
}

func (b *Balancer) ResetProxies(addrs []string) {
	b.strat.Reset(addrs)
}

func (b *Balancer) Proxies() []string {
	return b.strat.Snapshot()
}

func (b *Balancer) Len() int {
	return b.strat.Len()
}
