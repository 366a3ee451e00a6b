package interfaces

type IStrategy interface {
	// Next returns the next proxy address or an error when the list is empty.
	Next() (string, error)
	Reset(addrs []string)
	Snapshot() []string
	Len() int
}
