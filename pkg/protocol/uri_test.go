package protocol

import (
	"errors"
	"testing"

	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURIDefaultPortNormalized(t *testing.T) {
	t.Parallel()

	for scheme, port := range defaultPorts {
		u, err := URI{}.WithScheme(scheme).WithHost("example.com").WithPath("/a").WithPort(port)
		require.Nil(t, err)
		assert.Equal(t, scheme+"://example.com/a", u.Compose(), scheme)
		_, ok := u.Port()
		assert.False(t, ok)
		assert.True(t, u.IsDefaultPort())
	}

	// 先设端口再设协议，同样会清除默认端口
	u, err := URI{}.WithHost("example.com").WithPort(443)
	require.Nil(t, err)
	assert.Equal(t, "//example.com:443", u.Compose())
	assert.Equal(t, "https://example.com", u.WithScheme("HTTPS").Compose())
}

func TestURIComposeRoundTrip(t *testing.T) {
	t.Parallel()

	u := URI{}.WithScheme("https").WithHost("a.b").WithPath("p").WithQuery("q=1").WithFragment("f")
	assert.Equal(t, "https://a.b/p?q=1#f", u.Compose())
	assert.Equal(t, u.Compose(), u.String())
}

func TestURIComposeLeadingSlash(t *testing.T) {
	t.Parallel()

	u := URI{}.WithHost("h").WithPath("x")
	assert.Contains(t, u.Compose(), "//h/x")

	assert.Equal(t, "file:///etc/hosts", URI{}.WithScheme("file").WithPath("etc/hosts").Compose())
	assert.Equal(t, "http://a.b", URI{}.WithScheme("http").WithHost("a.b").Compose())
	assert.Equal(t, "x/y", URI{}.WithPath("x/y").Compose())
}

func TestURIWithPort(t *testing.T) {
	t.Parallel()

	base := URI{}.WithScheme("http").WithHost("h")
	for _, p := range []int{-1, 65536} {
		u, err := base.WithPort(8080)
		require.Nil(t, err)
		u2, err := u.WithPort(p)
		assert.True(t, errors.Is(err, errs.ErrInvalidArgument), p)
		// 校验失败时保留原端口
		port, ok := u2.Port()
		assert.True(t, ok)
		assert.Equal(t, 8080, port)
	}
	for _, p := range []int{0, 65535} {
		u, err := base.WithPort(p)
		assert.Nil(t, err)
		port, ok := u.Port()
		assert.True(t, ok)
		assert.Equal(t, p, port)
	}

	u, _ := base.WithPort(0)
	assert.Equal(t, "http://h:0", u.Compose())
	assert.Equal(t, "http://h", u.WithoutPort().Compose())
}

func TestURIWithScheme(t *testing.T) {
	t.Parallel()

	t.Run("http 默认主机", func(t *testing.T) {
		u := URI{}.WithScheme("HTTP")
		assert.Equal(t, "http", u.Scheme())
		assert.Equal(t, "localhost", u.Host())
		assert.Equal(t, "http://localhost", u.Compose())
	})

	t.Run("已有主机不替换", func(t *testing.T) {
		u := URI{}.WithHost("Example.COM").WithScheme("https")
		assert.Equal(t, "example.com", u.Host())
	})

	t.Run("其他协议无默认主机", func(t *testing.T) {
		assert.Equal(t, "", URI{}.WithScheme("ftp").Host())
	})
}

func TestURIImmutable(t *testing.T) {
	t.Parallel()

	a := URI{}.WithScheme("http").WithHost("a")
	b := a.WithHost("b").WithPath("/x")
	assert.Equal(t, "http://a", a.Compose())
	assert.Equal(t, "http://b/x", b.Compose())
}

func TestURIAuthority(t *testing.T) {
	t.Parallel()

	u, err := URI{}.WithScheme("http").WithUserInfo("user", "pass").WithHost("h").WithPort(8080)
	require.Nil(t, err)
	assert.Equal(t, "user:pass@h:8080", u.Authority())
	assert.Equal(t, "h:8080", u.HostPort())
	assert.Equal(t, "u@h", URI{}.WithUserInfo("u", "").WithHost("h").Authority())
	assert.Equal(t, "", URI{}.WithUserInfo("u", "p").Authority())
}

func TestURIWithQueryParams(t *testing.T) {
	t.Parallel()

	u := URI{}.WithPath("/s").WithQueryParams(map[string]string{
		"q":   "a b",
		"a&b": "c=d",
	})
	assert.Equal(t, "a%26b=c%3Dd&q=a+b", u.Query())
	assert.Equal(t, "/s?a%26b=c%3Dd&q=a+b", u.Compose())

	// 空映射不改变查询
	assert.Equal(t, "x=1", URI{}.WithQuery("x=1").WithQueryParams(nil).Query())
}

func TestURIKinds(t *testing.T) {
	t.Parallel()

	assert.True(t, MustParseURI("http://h/p").IsNetwork())
	assert.False(t, MustParseURI("http://h/p").IsAbsolute())
	assert.True(t, MustParseURI("/a/b").IsAbsolute())
	assert.False(t, MustParseURI("/a/b").IsRelative())
	assert.True(t, MustParseURI("a/b").IsRelative())
	assert.True(t, MustParseURI("").IsRelative())
	assert.False(t, MustParseURI("//h/p").IsRelative())
}

func TestParseURI(t *testing.T) {
	t.Parallel()

	t.Run("完整 URI", func(t *testing.T) {
		u, err := ParseURI("HTTP://User:Pw@Example.COM:8080/a/b?x=1&y=2#frag")
		require.Nil(t, err)
		assert.Equal(t, "http", u.Scheme())
		assert.Equal(t, "User:Pw", u.UserInfo())
		assert.Equal(t, "example.com", u.Host())
		port, ok := u.Port()
		assert.True(t, ok)
		assert.Equal(t, 8080, port)
		assert.Equal(t, "/a/b", u.Path())
		assert.Equal(t, "x=1&y=2", u.Query())
		assert.Equal(t, "frag", u.Fragment())
		assert.Equal(t, "http://User:Pw@example.com:8080/a/b?x=1&y=2#frag", u.Compose())
	})

	t.Run("默认端口被清除", func(t *testing.T) {
		u, err := ParseURI("https://example.com:443/")
		require.Nil(t, err)
		assert.Equal(t, "https://example.com/", u.Compose())
	})

	t.Run("授权部分主机为空", func(t *testing.T) {
		for _, s := range []string{"http:///x", "HTTPS:///", "ftp:///a", "http://:8080/x"} {
			_, err := ParseURI(s)
			assert.True(t, errs.IsType(err, errs.ErrorTypeInvalidURI), s)
		}
	})

	t.Run("file 协议允许空主机", func(t *testing.T) {
		u, err := ParseURI("file:///etc/hosts")
		require.Nil(t, err)
		assert.Equal(t, "", u.Host())
		assert.Equal(t, "file:///etc/hosts", u.Compose())
	})

	t.Run("无授权部分的协议路径", func(t *testing.T) {
		u, err := ParseURI("http:/p")
		require.Nil(t, err)
		assert.Equal(t, "", u.Host())
		assert.Equal(t, "http:/p", u.Compose())
	})

	t.Run("不透明 URI", func(t *testing.T) {
		u, err := ParseURI("mailto:a@b.c")
		require.Nil(t, err)
		assert.Equal(t, "a@b.c", u.Path())
		assert.Equal(t, "mailto:a@b.c", u.Compose())
	})

	t.Run("IPv6 主机", func(t *testing.T) {
		u, err := ParseURI("http://[::1]:8080/x")
		require.Nil(t, err)
		assert.Equal(t, "::1", u.Host())
		assert.Equal(t, "http://[::1]:8080/x", u.Compose())
	})

	t.Run("无效 URI", func(t *testing.T) {
		for _, s := range []string{"http://h:99999/", "http://[::1", "%zz", "http://h:port/"} {
			_, err := ParseURI(s)
			assert.True(t, errors.Is(err, errs.ErrInvalidURI), s)
		}
	})
}

func TestDefaultPort(t *testing.T) {
	t.Parallel()

	p, ok := DefaultPort("LDAP")
	assert.True(t, ok)
	assert.Equal(t, 389, p)
	_, ok = DefaultPort("redis")
	assert.False(t, ok)
}
