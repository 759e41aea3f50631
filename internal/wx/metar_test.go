package wx_test

import (
	"testing"

	"github.com/rockdove/forge/internal/wx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMETAR(t *testing.T) {
	obs, err := wx.ParseMETAR("METAR SBRJ 311400Z 12008KT 9999 SCT020 25/20 Q1013=")
	require.NoError(t, err)

	assert.Equal(t, "SBRJ", obs.Station)
	assert.Equal(t, 31, obs.Day)
	assert.Equal(t, 14, obs.Hour)
	assert.Equal(t, 0, obs.Minute)

	require.True(t, obs.HasWind)
	assert.Equal(t, 120, obs.WindDirDeg)
	assert.Equal(t, 8, obs.WindSpeedKt)

	require.True(t, obs.HasTemp)
	require.True(t, obs.HasDewpoint)
	assert.InDelta(t, 25.0, obs.TempC, 0.001)
	assert.InDelta(t, 20.0, obs.DewpointC, 0.001)

	require.True(t, obs.HasPressure)
	assert.InDelta(t, 1013.0, obs.PressureHpa, 0.001)
}

func TestParseMETAR_NegativeTempAndGusts(t *testing.T) {
	obs, err := wx.ParseMETAR("SBRJ 010230Z 35015G25KT M05/M12 Q1022")
	require.NoError(t, err)

	assert.Equal(t, 350, obs.WindDirDeg)
	assert.Equal(t, 15, obs.WindSpeedKt)
	assert.InDelta(t, -5.0, obs.TempC, 0.001)
	assert.InDelta(t, -12.0, obs.DewpointC, 0.001)
}

func TestParseMETAR_AltimeterInchesOfMercury(t *testing.T) {
	obs, err := wx.ParseMETAR("KJFK 311751Z 18010KT 25/18 A2992")
	require.NoError(t, err)

	require.True(t, obs.HasPressure)
	assert.InDelta(t, 1013.2, obs.PressureHpa, 0.5)
}

func TestParseMETAR_VariableWind(t *testing.T) {
	obs, err := wx.ParseMETAR("SBRJ 311400Z VRB03KT 25/20 Q1013")
	require.NoError(t, err)

	require.True(t, obs.HasWind)
	assert.Equal(t, 0, obs.WindDirDeg)
	assert.Equal(t, 3, obs.WindSpeedKt)
}

func TestParseMETAR_MissingGroups(t *testing.T) {
	obs, err := wx.ParseMETAR("SBRJ 311400Z 9999")
	require.NoError(t, err)

	assert.False(t, obs.HasWind)
	assert.False(t, obs.HasTemp)
	assert.False(t, obs.HasPressure)
}

func TestParseMETAR_Invalid(t *testing.T) {
	for _, report := range []string{"", "garbage", "SBRJ 991400Z 25/20"} {
		_, err := wx.ParseMETAR(report)
		assert.ErrorIs(t, err, wx.ErrUnparsableReport, "report: %q", report)
	}
}

func TestRelativeHumidity(t *testing.T) {
	assert.Equal(t, 100, wx.RelativeHumidity(20, 20))
	assert.Equal(t, 74, wx.RelativeHumidity(25, 20))
	assert.Equal(t, 58, wx.RelativeHumidity(-5, -12))
}
