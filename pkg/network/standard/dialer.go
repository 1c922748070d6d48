package standard

import (
	"crypto/tls"
	"net"
	"time"

	"github.com/favbox/courier/pkg/network"
)

type dialer struct{}

// NewDialer 返回基于 net.Dialer 的标准拨号器。
func NewDialer() network.Dialer {
	return &dialer{}
}

func (d *dialer) DialTimeout(network, address string, timeout time.Duration, tlsConfig *tls.Config) (net.Conn, error) {
	nd := &net.Dialer{Timeout: timeout}
	if tlsConfig != nil {
		return tls.DialWithDialer(nd, network, address, tlsConfig)
	}
	return nd.Dial(network, address)
}

func (d *dialer) AddTLS(conn net.Conn, tlsConfig *tls.Config) (net.Conn, error) {
	return network.AddTLS(conn, tlsConfig)
}
