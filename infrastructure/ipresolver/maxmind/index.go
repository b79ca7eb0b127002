package maxmind

import (
	"net"
	"os"

	"github.com/oschwald/maxminddb-golang"

	"veriface.io/infrastructure/ipresolver/types"
	"veriface.io/infrastructure/logger"
)

var db *maxminddb.Reader

type MaxMindIPResolver struct{}

func (mmResolver *MaxMindIPResolver) ConnectToDB() {
	dbPath := os.Getenv("MAXMIND_DB_PATH")
	if dbPath == "" {
		dbPath = "infrastructure/ipresolver/maxmind/GeoLite2-City.mmdb"
	}
	var err error
	db, err = maxminddb.Open(dbPath)
	if err != nil {
		logger.Warning("could not open maxmind db, login alerts will omit location", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	logger.Info("connected to maxmind db successfully")
}

type maxmindLookupResult struct {
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
	Location struct {
		Longitude      float64 `maxminddb:"longitude"`
		Latitude       float64 `maxminddb:"latitude"`
		AccuracyRadius int     `maxminddb:"accuracy_radius"`
	} `maxminddb:"location"`
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

func (mmResolver *MaxMindIPResolver) LookUp(ipAddress string) (*types.IPResult, error) {
	if db == nil {
		return nil, nil
	}
	ip := net.ParseIP(ipAddress)
	var result maxmindLookupResult
	err := db.Lookup(ip, &result)
	if err != nil {
		return nil, err
	}
	return &types.IPResult{
		Longitude:     result.Location.Longitude,
		Latitude:      result.Location.Latitude,
		City:          result.City.Names["en"],
		CountryCode:   result.Country.ISOCode,
		AcuracyRadius: result.Location.AccuracyRadius,
		IPAddress:     ipAddress,
	}, nil
}
