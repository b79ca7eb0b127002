package types

type IPResult struct {
	IPAddress     string
	City          string
	CountryCode   string
	Longitude     float64
	Latitude      float64
	AcuracyRadius int
}

type IPResolver interface {
	ConnectToDB()
	LookUp(ipAddress string) (*IPResult, error)
}
