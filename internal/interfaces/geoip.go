package interfaces

type ICountryLookup interface {
	Country(addr string) (string, error)
}
