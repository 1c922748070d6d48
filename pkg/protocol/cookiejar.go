package protocol

import "github.com/favbox/courier/internal/bytestr"

type jarEntry struct {
	name   string
	raw    string
	cookie *Cookie
}

// CookieJar 是消息内的 Cookie 集合。
//
// 条目为原始值（请求侧）或带属性的 Cookie（响应侧），同名条目以最后一次写入为准。
type CookieJar struct {
	entries []jarEntry
}

// Set 写入原始值条目。
func (j *CookieJar) Set(name, value string) {
	j.put(jarEntry{name: name, raw: value})
}

// SetAll 按名称的字典序写入原始值条目。
func (j *CookieJar) SetAll(m map[string]string) {
	for _, k := range sortedKeys(m) {
		j.Set(k, m[k])
	}
}

// SetCookie 写入带属性的 Cookie 条目。
func (j *CookieJar) SetCookie(c Cookie) {
	j.put(jarEntry{name: c.name, cookie: &c})
}

// Get 返回条目的值，带属性的条目返回其 Cookie 值。
func (j *CookieJar) Get(name string) (string, bool) {
	e := j.find(name)
	if e == nil {
		return "", false
	}
	if e.cookie != nil {
		return e.cookie.value, true
	}
	return e.raw, true
}

// Cookie 返回带属性的条目，原始值条目返回 false。
func (j *CookieJar) Cookie(name string) (Cookie, bool) {
	if e := j.find(name); e != nil && e.cookie != nil {
		return *e.cookie, true
	}
	return Cookie{}, false
}

// Has 报告条目是否存在。
func (j *CookieJar) Has(name string) bool {
	return j.find(name) != nil
}

// Del 删除条目。
func (j *CookieJar) Del(name string) {
	for i := range j.entries {
		if j.entries[i].name == name {
			j.entries = append(j.entries[:i], j.entries[i+1:]...)
			return
		}
	}
}

// Len 返回条目个数。
func (j *CookieJar) Len() int {
	return len(j.entries)
}

// Names 按写入顺序返回条目名称。
func (j *CookieJar) Names() []string {
	names := make([]string, len(j.entries))
	for i := range j.entries {
		names[i] = j.entries[i].name
	}
	return names
}

// Map 返回名称到值的映射。
func (j *CookieJar) Map() map[string]string {
	m := make(map[string]string, len(j.entries))
	for _, name := range j.Names() {
		m[name], _ = j.Get(name)
	}
	return m
}

// Reset 清空条目。
func (j *CookieJar) Reset() {
	j.entries = j.entries[:0]
}

// RequestLine 返回请求 Cookie 标头的值，形如 "a=1;b=2"，';' 后无空格。
func (j *CookieJar) RequestLine() string {
	var dst []byte
	for i, e := range j.entries {
		if i > 0 {
			dst = append(dst, bytestr.StrSemicolon...)
		}
		v, _ := j.Get(e.name)
		dst = append(dst, e.name...)
		dst = append(dst, bytestr.StrEqual...)
		dst = append(dst, v...)
	}
	return string(dst)
}

// SetCookieLines 返回每个条目的 Set-Cookie 值。原始值条目渲染为 "name=value"。
func (j *CookieJar) SetCookieLines() []string {
	lines := make([]string, 0, len(j.entries))
	for _, e := range j.entries {
		if e.cookie != nil {
			lines = append(lines, e.cookie.Render())
			continue
		}
		lines = append(lines, e.name+"="+e.raw)
	}
	return lines
}

func (j *CookieJar) put(e jarEntry) {
	if cur := j.find(e.name); cur != nil {
		*cur = e
		return
	}
	j.entries = append(j.entries, e)
}

func (j *CookieJar) find(name string) *jarEntry {
	for i := range j.entries {
		if j.entries[i].name == name {
			return &j.entries[i]
		}
	}
	return nil
}
