// Package gateway bridges a METAR API to APRS-IS: it fetches one report,
// renders weather and position packets, and uplinks them.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rockdove/forge/internal/aprs"
	"github.com/rockdove/forge/internal/core/ports"
	"github.com/rockdove/forge/internal/wx"
	"go.trai.ch/zerr"
)

// stationSymbol marks the station as an airport on APRS maps.
const stationSymbol = '^'

// PacketSender uplinks framed packets to APRS-IS.
type PacketSender interface {
	Send(ctx context.Context, packets []string) error
}

// apiResponse is the METAR API payload. Field names follow the upstream
// service, which reports in Portuguese.
type apiResponse struct {
	Status bool `json:"status"`
	Data   struct {
		METAR      string `json:"metar"`
		Visibility string `json:"visibilidade"`
		Sky        string `json:"ceu"`
		Weather    string `json:"condicoes_tempo"`
	} `json:"data"`
}

// Gateway runs one fetch-format-send cycle per invocation.
type Gateway struct {
	cfg    *Config
	sender PacketSender
	client *http.Client
	logger ports.Logger
}

// New creates a Gateway from the given configuration.
func New(cfg *Config, sender PacketSender, logger ports.Logger) *Gateway {
	return &Gateway{
		cfg:    cfg,
		sender: sender,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Run performs one gateway cycle: fetch the report, render the weather and
// position packets, and send both. It is a single shot; scheduling repeats
// is the caller's concern.
func (g *Gateway) Run(ctx context.Context) error {
	report, err := g.fetch(ctx)
	if err != nil {
		return err
	}

	obs, err := wx.ParseMETAR(report.Data.METAR)
	if err != nil {
		return err
	}

	pos := wx.Position{Lat: g.cfg.StationLat, Lon: g.cfg.StationLon}
	comment := fmt.Sprintf("Visib %s Ceu %s - %s - %s",
		orNA(report.Data.Visibility), orNA(report.Data.Sky), orNA(report.Data.Weather), g.cfg.Comment)

	packets := []string{
		aprs.Frame(g.cfg.StationID, wx.WeatherPacket(obs, pos)),
		aprs.Frame(g.cfg.StationID, wx.PositionPacket(pos, stationSymbol, comment)),
	}

	if err := g.sender.Send(ctx, packets); err != nil {
		return err
	}
	for _, packet := range packets {
		g.logger.Info("sent " + packet)
	}
	return nil
}

func (g *Gateway) fetch(ctx context.Context) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.APIURL, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build API request")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to fetch METAR report")
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.New("METAR API returned an error"), "status", resp.Status)
	}

	var report apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, zerr.Wrap(err, "failed to decode METAR API response")
	}
	if !report.Status || report.Data.METAR == "" {
		return nil, zerr.New("METAR API reported no data")
	}
	return &report, nil
}

func orNA(s string) string {
	if s == "" {
		return "NA"
	}
	return s
}
