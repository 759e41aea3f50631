package gateway

import (
	"os"
	"strconv"

	"go.trai.ch/zerr"
)

// Config holds the gateway settings. Every field is read from the
// environment with a default suitable for unattended operation.
type Config struct {
	// Callsign and Password authenticate against APRS-IS.
	Callsign string
	Password string

	// Server and Port locate the APRS-IS endpoint.
	Server string
	Port   int

	// APIURL is the METAR API endpoint. It has no default; an empty value is
	// a configuration error.
	APIURL string

	// StationID, StationLat and StationLon describe the reported station.
	StationID  string
	StationLat float64
	StationLon float64

	// Comment is appended to the position packet text.
	Comment string
}

// ErrInvalidConfig indicates a malformed or incomplete gateway configuration.
var ErrInvalidConfig = zerr.New("invalid gateway configuration")

// LoadConfig reads the gateway configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Callsign:  envOr("CALLSIGN", "NOCALL"),
		Password:  envOr("APRS_PASSWORD", "00000"),
		Server:    envOr("APRS_SERVER", "rotate.aprs2.net"),
		APIURL:    os.Getenv("METAR_API_URL"),
		StationID: envOr("OBJECT_ID", "SBRJ"),
		Comment:   os.Getenv("DATA_COMMENT"),
	}

	port, err := strconv.Atoi(envOr("APRS_PORT", "14580"))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(ErrInvalidConfig, "malformed APRS_PORT"), "value", os.Getenv("APRS_PORT"))
	}
	cfg.Port = port

	cfg.StationLat, err = strconv.ParseFloat(envOr("OBJECT_LAT", "-22.910"), 64)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(ErrInvalidConfig, "malformed OBJECT_LAT"), "value", os.Getenv("OBJECT_LAT"))
	}

	cfg.StationLon, err = strconv.ParseFloat(envOr("OBJECT_LON", "-43.163"), 64)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(ErrInvalidConfig, "malformed OBJECT_LON"), "value", os.Getenv("OBJECT_LON"))
	}

	if cfg.APIURL == "" {
		return nil, zerr.Wrap(ErrInvalidConfig, "METAR_API_URL is required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
