package aprs_test

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"

	"github.com/rockdove/forge/internal/aprs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer accepts one APRS-IS session and records what the client sent.
type fakeServer struct {
	listener      net.Listener
	loginResponse string

	login   chan string
	packets chan string
}

func newFakeServer(t *testing.T, loginResponse string) *fakeServer {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	s := &fakeServer{
		listener:      listener,
		loginResponse: loginResponse,
		login:         make(chan string, 1),
		packets:       make(chan string, 8),
	}
	go s.serve()
	return s
}

func (s *fakeServer) serve() {
	conn, err := s.listener.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	_, _ = conn.Write([]byte("# aprsc 2.1.15\n"))

	reader := bufio.NewReader(conn)
	login, err := reader.ReadString('\n')
	if err != nil {
		return
	}
	s.login <- strings.TrimSpace(login)

	_, _ = conn.Write([]byte(s.loginResponse))

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			close(s.packets)
			return
		}
		s.packets <- strings.TrimSpace(line)
	}
}

func (s *fakeServer) addr(t *testing.T) (string, int) {
	t.Helper()
	addr, ok := s.listener.Addr().(*net.TCPAddr)
	require.True(t, ok)
	return addr.IP.String(), addr.Port
}

func TestClient_Send(t *testing.T) {
	server := newFakeServer(t, "# logresp PU2XYZ verified, server T2BRAZIL\n")
	host, port := server.addr(t)

	client := aprs.NewClient(host, port, "PU2XYZ", "12345")
	err := client.Send(context.Background(), []string{
		aprs.Frame("SBRJ", "@311400z2254.60S/04309.78W_120/009g...t077r...p...h74b10130"),
		aprs.Frame("SBRJ", "=2254.60S/04309.78W^Visib 10km"),
	})
	require.NoError(t, err)

	assert.Equal(t, "user PU2XYZ pass 12345 vers Rockdove 0.1", <-server.login)
	assert.Equal(t, "SBRJ>RKDV,TCPIP*:@311400z2254.60S/04309.78W_120/009g...t077r...p...h74b10130", <-server.packets)
	assert.Equal(t, "SBRJ>RKDV,TCPIP*:=2254.60S/04309.78W^Visib 10km", <-server.packets)
}

func TestClient_Send_UnverifiedLogin(t *testing.T) {
	server := newFakeServer(t, "# logresp NOCALL unverified, server T2BRAZIL\n")
	host, port := server.addr(t)

	client := aprs.NewClient(host, port, "NOCALL", "-1")
	err := client.Send(context.Background(), []string{"SBRJ>RKDV,TCPIP*:test"})
	require.ErrorIs(t, err, aprs.ErrLoginFailed)
}

func TestClient_Send_ConnectFailure(t *testing.T) {
	// A listener that is immediately closed yields a refused connection.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr, ok := listener.Addr().(*net.TCPAddr)
	require.True(t, ok)
	require.NoError(t, listener.Close())

	client := aprs.NewClient(addr.IP.String(), addr.Port, "PU2XYZ", "12345")
	err = client.Send(context.Background(), []string{"SBRJ>RKDV,TCPIP*:test"})
	require.Error(t, err)
}
