package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rockdove/forge/internal/gateway"
	"github.com/rockdove/forge/internal/wx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quietLogger struct{}

func (quietLogger) Info(string) {}
func (quietLogger) Warn(string) {}
func (quietLogger) Error(error) {}

type recordingSender struct {
	packets []string
	err     error
}

func (s *recordingSender) Send(_ context.Context, packets []string) error {
	if s.err != nil {
		return s.err
	}
	s.packets = append(s.packets, packets...)
	return nil
}

func testConfig(apiURL string) *gateway.Config {
	return &gateway.Config{
		Callsign:   "PU2XYZ",
		Password:   "12345",
		Server:     "rotate.aprs2.net",
		Port:       14580,
		APIURL:     apiURL,
		StationID:  "SBRJ",
		StationLat: -22.910,
		StationLon: -43.163,
		Comment:    "SBRJ wx",
	}
}

func metarAPI(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGateway_Run(t *testing.T) {
	api := metarAPI(t, `{
		"status": true,
		"data": {
			"metar": "METAR SBRJ 311400Z 12008KT 25/20 Q1013=",
			"visibilidade": "10km",
			"ceu": "claro",
			"condicoes_tempo": "bom"
		}
	}`)

	sender := &recordingSender{}
	g := gateway.New(testConfig(api.URL), sender, quietLogger{})

	require.NoError(t, g.Run(context.Background()))
	require.Len(t, sender.packets, 2)

	assert.Equal(t,
		"SBRJ>RKDV,TCPIP*:@311400z2254.60S/04309.78W_120/009g...t077r...p...h74b10130",
		sender.packets[0])
	assert.Equal(t,
		"SBRJ>RKDV,TCPIP*:=2254.60S/04309.78W^Visib 10km Ceu claro - bom - SBRJ wx",
		sender.packets[1])
}

func TestGateway_Run_MissingConditionsReportNA(t *testing.T) {
	api := metarAPI(t, `{
		"status": true,
		"data": {"metar": "SBRJ 311400Z 12008KT 25/20 Q1013"}
	}`)

	sender := &recordingSender{}
	g := gateway.New(testConfig(api.URL), sender, quietLogger{})

	require.NoError(t, g.Run(context.Background()))
	require.Len(t, sender.packets, 2)
	assert.Contains(t, sender.packets[1], "Visib NA Ceu NA - NA - SBRJ wx")
}

func TestGateway_Run_APIReportsNoData(t *testing.T) {
	api := metarAPI(t, `{"status": false}`)

	g := gateway.New(testConfig(api.URL), &recordingSender{}, quietLogger{})
	require.Error(t, g.Run(context.Background()))
}

func TestGateway_Run_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	g := gateway.New(testConfig(server.URL), &recordingSender{}, quietLogger{})
	require.Error(t, g.Run(context.Background()))
}

func TestGateway_Run_UnparsableReport(t *testing.T) {
	api := metarAPI(t, `{"status": true, "data": {"metar": "garbage"}}`)

	g := gateway.New(testConfig(api.URL), &recordingSender{}, quietLogger{})
	err := g.Run(context.Background())
	require.ErrorIs(t, err, wx.ErrUnparsableReport)
}
