// Package wx parses METAR weather reports and renders them as APRS packets.
package wx

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// ErrUnparsableReport indicates the METAR report could not be decoded.
var ErrUnparsableReport = zerr.New("unparsable METAR report")

// Observation is a decoded METAR report. Optional groups that were absent
// from the report leave their Has flag false and the value zero.
type Observation struct {
	// Station is the reporting station identifier, e.g. "SBRJ".
	Station string

	// Day, Hour and Minute are the observation time in UTC.
	Day    int
	Hour   int
	Minute int

	WindDirDeg  int
	WindSpeedKt int
	HasWind     bool

	TempC       float64
	DewpointC   float64
	HasTemp     bool
	HasDewpoint bool

	PressureHpa float64
	HasPressure bool
}

var (
	timeRe    = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})Z$`)
	windRe    = regexp.MustCompile(`^(\d{3}|VRB)(\d{2,3})(?:G\d{2,3})?KT$`)
	tempRe    = regexp.MustCompile(`^(M?\d{2})/(M?\d{2})?$`)
	pressQRe  = regexp.MustCompile(`^Q(\d{4})$`)
	pressARe  = regexp.MustCompile(`^A(\d{4})$`)
	stationRe = regexp.MustCompile(`^[A-Z]{4}$`)
)

// hpaPerInHg converts altimeter settings reported in inches of mercury.
const hpaPerInHg = 33.8639

// ParseMETAR decodes the groups of a METAR report that weather packets need:
// station, observation time, wind, temperature and dewpoint, and pressure.
// A leading "METAR " keyword and a trailing "=" are tolerated.
func ParseMETAR(report string) (*Observation, error) {
	report = strings.TrimSpace(report)
	report = strings.TrimPrefix(report, "METAR ")
	report = strings.TrimSuffix(report, "=")

	fields := strings.Fields(report)
	if len(fields) < 2 {
		return nil, zerr.With(ErrUnparsableReport, "report", report)
	}

	obs := &Observation{}
	if stationRe.MatchString(fields[0]) {
		obs.Station = fields[0]
		fields = fields[1:]
	}

	m := timeRe.FindStringSubmatch(fields[0])
	if m == nil {
		return nil, zerr.With(ErrUnparsableReport, "report", report)
	}
	obs.Day, _ = strconv.Atoi(m[1])
	obs.Hour, _ = strconv.Atoi(m[2])
	obs.Minute, _ = strconv.Atoi(m[3])
	if obs.Day < 1 || obs.Day > 31 || obs.Hour > 23 || obs.Minute > 59 {
		return nil, zerr.With(ErrUnparsableReport, "report", report)
	}

	for _, field := range fields[1:] {
		switch {
		case windRe.MatchString(field):
			m := windRe.FindStringSubmatch(field)
			if m[1] != "VRB" {
				obs.WindDirDeg, _ = strconv.Atoi(m[1])
			}
			obs.WindSpeedKt, _ = strconv.Atoi(m[2])
			obs.HasWind = true
		case tempRe.MatchString(field):
			m := tempRe.FindStringSubmatch(field)
			obs.TempC = parseSignedTemp(m[1])
			obs.HasTemp = true
			if m[2] != "" {
				obs.DewpointC = parseSignedTemp(m[2])
				obs.HasDewpoint = true
			}
		case pressQRe.MatchString(field):
			m := pressQRe.FindStringSubmatch(field)
			v, _ := strconv.Atoi(m[1])
			obs.PressureHpa = float64(v)
			obs.HasPressure = true
		case pressARe.MatchString(field) && !obs.HasPressure:
			// Altimeter in hundredths of inHg; Q groups take precedence.
			m := pressARe.FindStringSubmatch(field)
			v, _ := strconv.Atoi(m[1])
			obs.PressureHpa = float64(v) / 100 * hpaPerInHg
			obs.HasPressure = true
		}
	}
	return obs, nil
}

func parseSignedTemp(s string) float64 {
	neg := strings.HasPrefix(s, "M")
	v, _ := strconv.Atoi(strings.TrimPrefix(s, "M"))
	if neg {
		return -float64(v)
	}
	return float64(v)
}

// RelativeHumidity derives relative humidity in percent from temperature and
// dewpoint in Celsius using the Magnus formula.
func RelativeHumidity(tempC, dewpointC float64) int {
	const (
		b = 17.625
		c = 243.04
	)
	gammaT := (b * tempC) / (c + tempC)
	gammaD := (b * dewpointC) / (c + dewpointC)
	return int(math.Round(100 * math.Exp(gammaD-gammaT)))
}
