package proxy

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/favbox/courier/internal/bytestr"

	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/favbox/courier/pkg/protocol/consts"
)

// Kind 是代理类型代码，取值与 curl 的 CURLPROXY_* 一致。
type Kind int

const (
	KindUnset          Kind = -1
	KindHTTP           Kind = 0
	KindSOCKS4         Kind = 4
	KindSOCKS5         Kind = 5
	KindSOCKS4A        Kind = 6
	KindSOCKS5Hostname Kind = 7
)

var kinds = map[string]Kind{
	"http":           KindHTTP,
	"socks4":         KindSOCKS4,
	"socks5":         KindSOCKS5,
	"socks4a":        KindSOCKS4A,
	"socks5hostname": KindSOCKS5Hostname,
}

// KindOf 返回代理类型名称对应的代码，未知名称返回 KindUnset。
func KindOf(typ string) Kind {
	if k, ok := kinds[typ]; ok {
		return k
	}
	return KindUnset
}

func (k Kind) String() string {
	for name, v := range kinds {
		if v == k {
			return name
		}
	}
	return "unset"
}

// Spec 是代理配置项。Type、IP 和 Port 必填，Login 和 Password 可选。
type Spec struct {
	Type     string
	IP       string
	Port     int
	Login    string
	Password string
}

// Config 是校验后的代理配置。
type Config struct {
	// 代理类型代码，未知类型为 KindUnset。
	Kind Kind
	// 代理地址，socks 类型形如 "socks5h://ip:port"，其他类型形如 "http://ip:port"。
	Address string
	// "login:password" 形式的凭据，未设置 Login 时为空。
	Credentials string

	login    string
	password string
	hostPort string
}

// New 校验 spec 并构造代理配置。
//
// Type、IP 或 Port 缺失时返回 TransportConfigError；Port 越界时返回 InvalidArgument。
func New(spec Spec) (*Config, error) {
	if spec.Type == "" || spec.IP == "" || spec.Port == 0 {
		return nil, errs.Newf(errs.ErrorTypeTransportConfig, spec, "代理缺少 type、ip 或 port")
	}
	if spec.Port < 0 || spec.Port > consts.MaxPort {
		return nil, errs.NewInvalidArgumentf("无效的代理端口: %d", spec.Port)
	}

	format := "%s://%s:%d"
	if strings.Contains(spec.Type, string(bytestr.StrSocks)) {
		format = "%sh://%s:%d"
	}
	c := &Config{
		Kind:     KindOf(spec.Type),
		Address:  fmt.Sprintf(format, spec.Type, spec.IP, spec.Port),
		hostPort: net.JoinHostPort(spec.IP, strconv.Itoa(spec.Port)),
	}
	if spec.Login != "" {
		c.login, c.password = spec.Login, spec.Password
		c.Credentials = spec.Login + ":" + spec.Password
	}
	return c, nil
}

// HostPort 返回代理的 "ip:port"。
func (c *Config) HostPort() string {
	return c.hostPort
}
