package balancer

import (
	"fmt"

	"proxy-rotator/internal/interfaces"
	"proxy-rotator/pkg/strategies"
)

var strategyFactories = map[string]func([]string) interfaces.IStrategy{
	"round_robin": func(addrs []string) interfaces.IStrategy {
		return strategies.NewRoundRobin(addrs)
	},
}

func CreateStrategy(name string, addrs []string) (interfaces.IStrategy, error) {
	if factory, ok := strategyFactories[name]; ok {
		return factory(addrs), nil
	}
	return nil, fmt.Errorf("unknown strategy: %s", name)
}
