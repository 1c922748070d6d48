//go:build !windows

package netpoll

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
	"time"

	"github.com/cloudwego/netpoll"
	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/favbox/courier/pkg/common/hlog"
	"github.com/favbox/courier/pkg/network"
	"golang.org/x/sys/unix"
)

type dialer struct {
	netpoll.Dialer
}

// NewDialer 返回基于 netpoll 的拨号器。
func NewDialer() network.Dialer {
	return &dialer{Dialer: netpoll.NewDialer()}
}

func (d *dialer) DialTimeout(network, address string, timeout time.Duration, tlsConfig *tls.Config) (net.Conn, error) {
	c, err := d.Dialer.DialTimeout(network, address, timeout)
	if err != nil {
		return nil, err
	}
	conn := &Conn{Conn: c}
	if tlsConfig == nil {
		return conn, nil
	}
	return d.AddTLS(conn, tlsConfig)
}

func (d *dialer) AddTLS(conn net.Conn, tlsConfig *tls.Config) (net.Conn, error) {
	return network.AddTLS(conn, tlsConfig)
}

// Conn 将 netpoll 的错误转换为通用错误。
type Conn struct {
	net.Conn
}

func (c *Conn) Read(p []byte) (int, error) {
	n, err := c.Conn.Read(p)
	return n, normalizeErr(err)
}

func (c *Conn) Write(p []byte) (int, error) {
	n, err := c.Conn.Write(p)
	return n, normalizeErr(err)
}

func (c *Conn) Close() error {
	err := c.Conn.Close()
	if err != nil && !errors.Is(err, netpoll.ErrConnClosed) {
		hlog.SystemLogger().Debugf("Netpoll 关闭连接出错 error=%s, remoteAddr=%s", err.Error(), c.RemoteAddr())
		return err
	}
	return nil
}

func normalizeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, netpoll.ErrEOF):
		return io.EOF
	case errors.Is(err, netpoll.ErrConnClosed), errors.Is(err, unix.EPIPE), errors.Is(err, unix.ECONNRESET):
		return errs.ErrConnectionClosed
	}
	return err
}
