package protocol

import (
	"errors"
	"testing"
	"time"

	errs "github.com/favbox/courier/pkg/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stringx"
)

func TestCookieRender(t *testing.T) {
	t.Parallel()

	expires := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("全部属性", func(t *testing.T) {
		c, err := NewCookie("sid", CookieAttrs{
			Value:    "abc",
			Expires:  expires,
			Path:     "/",
			Domain:   "example.com",
			Secure:   true,
			HTTPOnly: true,
		})
		require.Nil(t, err)
		assert.Equal(t, "sid=abc; Expires=Mon, 01 Jan 2024 00:00:00 GMT; Path=/; Domain=example.com; Secure; HttpOnly", c.Render())
	})

	t.Run("Expires 优先于 Max-Age", func(t *testing.T) {
		c, _ := NewCookie("a", CookieAttrs{Value: "1"})
		c = c.WithMaxAge(60).WithExpires(expires)
		assert.Equal(t, "a=1; Expires=Mon, 01 Jan 2024 00:00:00 GMT", c.Render())
		assert.NotContains(t, c.Render(), "Max-Age")
	})

	t.Run("仅 Max-Age", func(t *testing.T) {
		c, _ := NewCookie("a", CookieAttrs{})
		assert.Equal(t, "a=; Max-Age=60", c.WithMaxAge(60).String())
	})
}

func TestCookieBuilderImmutable(t *testing.T) {
	t.Parallel()

	c, _ := NewCookie("a", CookieAttrs{Value: "1"})
	d := c.WithPath("/x").WithDomain("d").WithSecure().WithHTTPOnly()
	assert.Equal(t, "a=1", c.Render())
	assert.Equal(t, "/x", d.Path())
	assert.Equal(t, "d", d.Domain())
	assert.True(t, d.Secure())
	assert.True(t, d.HTTPOnly())
}

func TestCookieWithJSONValue(t *testing.T) {
	t.Parallel()

	c, _ := NewCookie("prefs", CookieAttrs{})
	c, err := c.WithJSONValue(map[string]int{"x": 1})
	assert.Nil(t, err)
	assert.Equal(t, `{"x":1}`, c.Value())

	_, err = c.WithJSONValue(make(chan int))
	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
}

func TestCookieWithExpiresIn(t *testing.T) {
	t.Parallel()

	c, _ := NewCookie("a", CookieAttrs{})
	before := time.Now()
	c = c.WithExpiresIn(time.Hour)
	assert.WithinDuration(t, before.Add(time.Hour), c.Expires(), time.Second)
}

func TestCookieFactory(t *testing.T) {
	t.Parallel()

	f := CookieFactory{Defaults: CookieAttrs{Path: "/", Domain: "example.com", HTTPOnly: true}}

	c, err := f.New("sid", CookieAttrs{Value: "v", Path: "/app"})
	require.Nil(t, err)
	assert.Equal(t, "/app", c.Path())
	assert.Equal(t, "example.com", c.Domain())
	assert.True(t, c.HTTPOnly())

	// 空字段不覆盖默认值
	c, _ = f.New("sid", CookieAttrs{Domain: ""})
	assert.Equal(t, "example.com", c.Domain())

	_, err = f.New("", CookieAttrs{})
	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
}

func TestParseCookieLine(t *testing.T) {
	t.Parallel()

	a := ParseCookieLine("a=1;b=2")
	assert.Equal(t, "a=1&b=2", a.String())

	a = ParseCookieLine(" a = 1 ; ;c; =x;b=2=3;a=4")
	assert.Equal(t, map[string]string{"a": "4", "b": "2=3"}, a.Map())
	assert.Equal(t, 2, a.Len())

	assert.Equal(t, 0, ParseCookieLine("").Len())
}

func TestParseCookieLineRandom(t *testing.T) {
	t.Parallel()

	var jar CookieJar
	for i := 0; i < 20; i++ {
		jar.Set(stringx.Randn(8), stringx.Randn(16))
	}
	parsed := ParseCookieLine(jar.RequestLine())
	assert.Equal(t, jar.Map(), parsed.Map())
}

func TestCookieJar(t *testing.T) {
	t.Parallel()

	var jar CookieJar
	jar.Set("a", "1")
	c, _ := NewCookie("b", CookieAttrs{Value: "2", Path: "/"})
	jar.SetCookie(c)
	jar.Set("c", "3")

	assert.Equal(t, "a=1;b=2;c=3", jar.RequestLine())
	assert.Equal(t, []string{"a=1", "b=2; Path=/", "c=3"}, jar.SetCookieLines())

	// 同名以最后一次写入为准，顺序不变
	jar.Set("b", "x")
	_, ok := jar.Cookie("b")
	assert.False(t, ok)
	v, ok := jar.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.Equal(t, []string{"a", "b", "c"}, jar.Names())

	jar.Del("a")
	assert.False(t, jar.Has("a"))
	assert.Equal(t, 2, jar.Len())

	jar.Reset()
	assert.Equal(t, "", jar.RequestLine())
}
