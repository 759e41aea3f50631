package wx

import (
	"fmt"
	"math"
)

// Position is a station location in decimal degrees.
type Position struct {
	Lat float64
	Lon float64
}

// String renders the position in APRS DDMM.MM notation, latitude/longitude
// separated by the symbol table selector.
func (p Position) String() string {
	return formatCoordinate(p.Lat, true) + "/" + formatCoordinate(p.Lon, false)
}

func formatCoordinate(decimal float64, isLatitude bool) string {
	absolute := math.Abs(decimal)
	degrees := int(absolute)
	minutes := (absolute - float64(degrees)) * 60

	if isLatitude {
		direction := "N"
		if decimal < 0 {
			direction = "S"
		}
		return fmt.Sprintf("%02d%05.2f%s", degrees, minutes, direction)
	}

	direction := "E"
	if decimal < 0 {
		direction = "W"
	}
	return fmt.Sprintf("%03d%05.2f%s", degrees, minutes, direction)
}

// WeatherPacket renders the observation as an APRS positionless-value weather
// report with timestamp. Gust and rain fields are never measured here and are
// reported as unknown.
func WeatherPacket(obs *Observation, pos Position) string {
	windDir, windSpeedMph := 0, 0
	if obs.HasWind {
		windDir = obs.WindDirDeg
		windSpeedMph = int(float64(obs.WindSpeedKt) * 1.15078)
	}

	tempF := 0
	if obs.HasTemp {
		tempF = int(obs.TempC*1.8 + 32)
	}

	humidity := 0
	if obs.HasTemp && obs.HasDewpoint {
		humidity = RelativeHumidity(obs.TempC, obs.DewpointC)
	}

	pressure := 0
	if obs.HasPressure {
		pressure = int(obs.PressureHpa * 10)
	}

	return fmt.Sprintf("@%02d%02d%02dz%s_%03d/%03dg...t%03dr...p...h%02db%05d",
		obs.Day, obs.Hour, obs.Minute,
		pos.String(),
		windDir, windSpeedMph,
		tempF,
		humidity,
		pressure,
	)
}

// PositionPacket renders a station position report with the given symbol and
// comment text.
func PositionPacket(pos Position, symbol byte, comment string) string {
	return fmt.Sprintf("=%s%c%s", pos.String(), symbol, comment)
}
