package wx_test

import (
	"testing"

	"github.com/rockdove/forge/internal/wx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_String(t *testing.T) {
	tests := []struct {
		name string
		pos  wx.Position
		want string
	}{
		{"rio", wx.Position{Lat: -22.910, Lon: -43.163}, "2254.60S/04309.78W"},
		{"northeast", wx.Position{Lat: 51.477, Lon: 0.0}, "5128.62N/00000.00E"},
		{"new york", wx.Position{Lat: 40.641, Lon: -73.778}, "4038.46N/07346.68W"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.String())
		})
	}
}

func TestWeatherPacket(t *testing.T) {
	obs, err := wx.ParseMETAR("SBRJ 311400Z 12008KT 25/20 Q1013")
	require.NoError(t, err)

	got := wx.WeatherPacket(obs, wx.Position{Lat: -22.910, Lon: -43.163})
	assert.Equal(t, "@311400z2254.60S/04309.78W_120/009g...t077r...p...h74b10130", got)
}

func TestWeatherPacket_MissingGroupsReportZero(t *testing.T) {
	obs, err := wx.ParseMETAR("SBRJ 311400Z 9999")
	require.NoError(t, err)

	got := wx.WeatherPacket(obs, wx.Position{Lat: -22.910, Lon: -43.163})
	assert.Equal(t, "@311400z2254.60S/04309.78W_000/000g...t000r...p...h00b00000", got)
}

func TestPositionPacket(t *testing.T) {
	got := wx.PositionPacket(wx.Position{Lat: -22.910, Lon: -43.163}, '^', "Visib 10km Ceu claro - bom - SBRJ wx")
	assert.Equal(t, "=2254.60S/04309.78W^Visib 10km Ceu claro - bom - SBRJ wx", got)
}
