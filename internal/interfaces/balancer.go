package interfaces

type IBalancer interface {
	NextProxy() (string, error)
	ResetProxies(addrs []string)
	Proxies() []string
	Len() int
}
