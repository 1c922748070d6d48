package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgsDeleteAll(t *testing.T) {
	t.Parallel()
	var a Args
	a.Add("q1", "foo")
	a.Add("q1", "bar")
	a.Add("q1", "baz")
	a.Add("q1", "quux")
	a.Add("q2", "1234")
	a.Del("q1")
	if a.Len() != 1 || a.Has("q1") {
		t.Fatalf("Expected q1 arg to be completely deleted. Current Args: %s", a.String())
	}
}

func TestArgsPeekExists(t *testing.T) {
	t.Parallel()
	var a Args
	a.Add("q1", "foo")
	a.Add("", "")
	a.Add("?", "=")
	v1, b1 := a.PeekExists("q1")
	assert.Equal(t, "foo", v1)
	assert.True(t, b1)
	v2, b2 := a.PeekExists("")
	assert.Equal(t, "", v2)
	assert.True(t, b2)
	v3, b3 := a.PeekExists("q3")
	assert.Equal(t, "", v3)
	assert.False(t, b3)
	v4, b4 := a.PeekExists("?")
	assert.Equal(t, "=", v4)
	assert.True(t, b4)
}

func TestArgsSet(t *testing.T) {
	t.Parallel()
	var a Args
	a.Add("q1", "a")
	a.Add("q2", "b")
	a.Add("q1", "c")
	a.Set("q1", "d")
	assert.Equal(t, "q1=d&q2=b", a.String())

	a.SetAll(map[string]string{"z": "1", "q2": "x"})
	assert.Equal(t, "q1=d&q2=x&z=1", a.String())
	assert.Equal(t, map[string]string{"q1": "d", "q2": "x", "z": "1"}, a.Map())
}

// 特殊参数的编码
func TestArgsParse(t *testing.T) {
	t.Parallel()
	var ta1 Args
	ta1.Add("q1", "foo")
	ta1.Add("q1", "bar")
	ta1.Add("q2", "123")
	ta1.Add("q3", "")
	var a1 Args
	a1.Parse("q1=foo&q1=bar&q2=123&q3=")
	assert.Equal(t, &ta1, &a1)

	var ta2 Args
	ta2.Add("?", "foo")
	ta2.Add("&", "bar")
	ta2.Add("&", "?")
	ta2.Add("=", "=")
	var a2 Args
	a2.Parse("%3F=foo&%26=bar&%26=%3F&%3D=%3D")
	assert.Equal(t, &ta2, &a2)
	assert.Equal(t, "%3F=foo&%26=bar&%26=%3F&%3D=%3D", a2.String())

	var a3 Args
	a3.Parse("a=%zz&&b+c=d+e")
	assert.Equal(t, "%zz", a3.Peek("a"))
	assert.Equal(t, "d e", a3.Peek("b c"))
}

func TestArgsCopyTo(t *testing.T) {
	t.Parallel()
	var a, b Args
	a.Add("x", "1")
	a.CopyTo(&b)
	b.Set("x", "2")
	assert.Equal(t, "1", a.Peek("x"))
	assert.Equal(t, "2", b.Peek("x"))

	var visited []string
	a.VisitAll(func(k, v string) { visited = append(visited, k+v) })
	assert.Equal(t, []string{"x1"}, visited)
	a.Reset()
	assert.Equal(t, 0, a.Len())
}
