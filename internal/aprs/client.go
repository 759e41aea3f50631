// Package aprs implements a minimal APRS-IS uplink client.
package aprs

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// ErrLoginFailed indicates the APRS-IS server did not verify the login.
var ErrLoginFailed = zerr.New("APRS-IS login failed")

// softwareVersion identifies this client in the login line.
const softwareVersion = "Rockdove 0.1"

// Client sends packets to an APRS-IS server over a short-lived TCP session:
// connect, read the banner, log in, send, disconnect.
type Client struct {
	Server   string
	Port     int
	Callsign string
	Password string

	// Timeout bounds every read and write on the session.
	Timeout time.Duration
}

// NewClient creates a Client with the default session timeout.
func NewClient(server string, port int, callsign, password string) *Client {
	return &Client{
		Server:   server,
		Port:     port,
		Callsign: callsign,
		Password: password,
		Timeout:  10 * time.Second,
	}
}

// Send logs in and transmits the given packets in order. Each packet is a
// full TNC2-format line without the trailing newline.
func (c *Client) Send(ctx context.Context, packets []string) error {
	addr := net.JoinHostPort(c.Server, strconv.Itoa(c.Port))

	dialer := &net.Dialer{Timeout: c.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to connect to APRS-IS"), "server", addr)
	}
	defer conn.Close() //nolint:errcheck // Best effort close in defer

	if err := conn.SetDeadline(time.Now().Add(c.Timeout)); err != nil {
		return zerr.Wrap(err, "failed to set session deadline")
	}

	reader := bufio.NewReader(conn)
	if _, err := reader.ReadString('\n'); err != nil {
		return zerr.Wrap(err, "failed to read server banner")
	}

	login := "user " + c.Callsign + " pass " + c.Password + " vers " + softwareVersion + "\n"
	if _, err := conn.Write([]byte(login)); err != nil {
		return zerr.Wrap(err, "failed to send login")
	}

	response, err := reader.ReadString('\n')
	if err != nil {
		return zerr.Wrap(err, "failed to read login response")
	}
	if strings.Contains(strings.ToLower(response), "unverified") {
		return zerr.With(ErrLoginFailed, "callsign", c.Callsign)
	}

	for _, packet := range packets {
		if _, err := conn.Write([]byte(packet + "\n")); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to send packet"), "packet", packet)
		}
	}
	return nil
}

// Frame wraps a packet payload in a TNC2 header from the given source
// station.
func Frame(station, payload string) string {
	return station + ">RKDV,TCPIP*:" + payload
}
