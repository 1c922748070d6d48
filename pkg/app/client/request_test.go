package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/mockey"
	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/favbox/courier/pkg/network/standard"
	"github.com/favbox/courier/pkg/protocol/http1"
	"github.com/favbox/courier/pkg/protocol/http1/proxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/mr"
)

type seen struct {
	query  string
	cookie string
	body   string
}

func newServer(t *testing.T, got *seen) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if got != nil {
			got.query = r.URL.RawQuery
			got.cookie = r.Header.Get("Cookie")
			got.body = string(b)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Server", "yes")
		_, _ = fmt.Fprintf(w, `{"ok":true,"id":%q}`, r.Header.Get("X-Id"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRequestSend(t *testing.T) {
	var got seen
	srv := newServer(t, &got)

	r, err := NewRequest("POST", srv.URL+"/submit", WithDialer(standard.NewDialer()))
	require.Nil(t, err)
	defer r.Close()

	r.Header.Set("X-Trace", "t1")
	r.SetCookie("sid", "abc")
	r.SetCookie("lang", "zh")
	r.SetQuery(map[string]string{"q": "a b"})
	require.Nil(t, r.SetBodyJSON(map[string]int{"a": 1}))

	res, err := r.Send(context.Background())
	require.Nil(t, err)

	assert.Equal(t, "q=a+b", got.query)
	assert.Equal(t, "sid=abc;lang=zh", got.cookie)
	assert.Equal(t, `{"a":1}`, got.body)

	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	// 默认解析请求头回显
	assert.Equal(t, "t1", res.Header.Get("x-trace"))
	assert.False(t, res.Header.Has("X-Server"))
	v, ok := res.Cookie("sid")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	parsed, err := res.ParsedBody(false)
	require.Nil(t, err)
	assert.Equal(t, map[string]any{"ok": true, "id": ""}, parsed)
}

func TestRequestSendReceivedHeaders(t *testing.T) {
	srv := newServer(t, nil)

	r, err := NewRequest("GET", srv.URL+"/", WithDialer(standard.NewDialer()), WithReceivedHeaders(true))
	require.Nil(t, err)
	defer r.Close()
	r.Header.Set("X-Trace", "t1")

	res, err := r.Send(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "yes", res.Header.Get("X-Server"))
	assert.False(t, res.Header.Has("X-Trace"))
}

func TestRequestReuse(t *testing.T) {
	srv := newServer(t, nil)

	r, err := NewRequest("GET", srv.URL+"/", WithDialer(standard.NewDialer()))
	require.Nil(t, err)
	defer r.Close()

	for i := 0; i < 3; i++ {
		res, err := r.Send(context.Background())
		require.Nil(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode())
		r.Reset()
	}
}

func TestRequestWithProxy(t *testing.T) {
	r, err := NewRequest("GET", "http://example.com/", WithUserAgent("base"))
	require.Nil(t, err)
	defer r.Close()
	assert.Nil(t, r.Proxy())

	t.Run("缺少端口", func(t *testing.T) {
		err := r.WithProxy(proxy.Spec{Type: "http", IP: "10.0.0.1"})
		assert.True(t, errs.IsType(err, errs.ErrorTypeTransportConfig))
		assert.Nil(t, r.Proxy())
	})

	t.Run("设置代理", func(t *testing.T) {
		require.Nil(t, r.WithProxy(proxy.Spec{Type: "socks5", IP: "10.0.0.1", Port: 1080, Login: "u", Password: "p"}))
		require.NotNil(t, r.Proxy())
		assert.Equal(t, "socks5h://10.0.0.1:1080", r.Proxy().Address)
		assert.Equal(t, "u:p", r.Proxy().Credentials)
	})

	t.Run("重置后恢复初始配置", func(t *testing.T) {
		r.WithUserAgent("changed").Reset()
		assert.Nil(t, r.Proxy())
		assert.Equal(t, "base", r.handle.Options().UserAgent)
	})
}

func TestRequestClose(t *testing.T) {
	r, err := NewRequest("GET", "http://example.com/")
	require.Nil(t, err)

	assert.Nil(t, r.Close())
	assert.Nil(t, r.Close())

	_, err = r.Send(context.Background())
	assert.True(t, errs.IsType(err, errs.ErrorTypeTransport))
	assert.ErrorIs(t, err, errs.ErrNoHandle)

	err = r.WithProxy(proxy.Spec{Type: "http", IP: "10.0.0.1", Port: 80})
	assert.ErrorIs(t, err, errs.ErrNoHandle)
	assert.Nil(t, r.WithTimeout(0).Proxy())
}

func TestRequestSendTransportFailure(t *testing.T) {
	mocker := mockey.Mock((*http1.Client).Do).
		Return(nil, errs.NewTransport(errors.New("connection reset by peer"))).
		Build()
	defer mocker.UnPatch()

	r, err := NewRequest("GET", "http://example.com/")
	require.Nil(t, err)
	defer r.Close()

	res, err := r.Send(context.Background())
	assert.Nil(t, res)
	assert.True(t, errs.IsType(err, errs.ErrorTypeTransport))
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.Equal(t, 1, mocker.Times())
}

func TestRequestsDoNotShareState(t *testing.T) {
	srv := newServer(t, nil)

	const n = 8
	ids := make([]string, n)
	fns := make([]func(), n)
	for i := 0; i < n; i++ {
		i := i
		fns[i] = func() {
			r, err := NewRequest("GET", srv.URL+"/", WithDialer(standard.NewDialer()))
			if !assert.Nil(t, err) {
				return
			}
			defer r.Close()
			r.Header.Set("X-Id", fmt.Sprint(i))

			res, err := r.Send(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			parsed, err := res.ParsedBody(false)
			if !assert.Nil(t, err) {
				return
			}
			ids[i] = parsed.(map[string]any)["id"].(string)
		}
	}
	mr.FinishVoid(fns...)

	for i, id := range ids {
		assert.Equal(t, fmt.Sprint(i), id)
	}
}
