package bytesconv

import (
	"net/http"
	"time"
	"unsafe"
)

const upperHex = "0123456789ABCDEF"

// LowercaseBytes 原地将字节切片转为小写。
func LowercaseBytes(b []byte) {
	for i, n := 0, len(b); i < n; i++ {
		p := &b[i]
		*p = ToLowerTable[*p]
	}
}

// ToLower 返回 ASCII 小写形式的字符串。
//
// 若 s 已是小写则原样返回，不分配内存。
func ToLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; ToLowerTable[c] != c {
			b := make([]byte, len(s))
			copy(b, s)
			LowercaseBytes(b[i:])
			return B2s(b)
		}
	}
	return s
}

// B2s 将字节切片转为字符串，且不分配内存。
// 详见 https://groups.google.com/forum/#!msg/Golang-Nuts/ENgbUzYvCuU/90yGx7GUAgAJ 。
//
// 注意：调用方在返回后不可再修改 b。
func B2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// S2b 将字符串转为字节切片，且不分配内存。
//
// 注意：返回的切片只读，修改将导致未定义行为。
func S2b(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// AppendQuotedArg 将源参数切片转义后附加到目标并返回。等效于 url.QueryEscape。
func AppendQuotedArg(dst, src []byte) []byte {
	for _, c := range src {
		switch {
		case c == ' ':
			dst = append(dst, '+')
		case QuotedArgShouldEscapeTable[int(c)] != 0:
			dst = append(dst, '%', upperHex[c>>4], upperHex[c&0xf])
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// AppendUint 附加正整数 n 到字节切片 dst 并返回。
func AppendUint(dst []byte, n int) []byte {
	if n < 0 {
		panic("BUG：int 必须为正数")
	}

	var b [20]byte
	buf := b[:]
	i := len(buf)
	var q int
	for n >= 10 {
		i--
		q = n / 10
		buf[i] = '0' + byte(n-q*10)
		n = q
	}
	i--
	buf[i] = '0' + byte(n)

	dst = append(dst, buf[i:]...)
	return dst
}

// AppendHTTPDate 附加 HTTP 兼容的时间表示到字节切片 dst 并返回。
//
// 形如 "Mon, 02 Jan 2006 15:04:05 GMT"。
func AppendHTTPDate(dst []byte, date time.Time) []byte {
	return date.UTC().AppendFormat(dst, http.TimeFormat)
}

// ParseUintBuf 从字节缓冲区中解析出 uint。
func ParseUintBuf(b []byte) (v int, n int, err error) {
	n = len(b)
	if n == 0 {
		return -1, 0, errEmptyInt
	}
	for i := 0; i < n; i++ {
		c := b[i]
		k := c - '0'
		if k > 9 {
			if i == 0 {
				return -1, i, errUnexpectedFirstChar
			}
			return v, i, nil
		}
		vNew := 10*v + int(k)
		// 测试溢出
		if vNew < v {
			return -1, i, errTooLongInt
		}
		v = vNew
	}
	return
}

// ParseUint 从字节切片中解析出 uint。
func ParseUint(buf []byte) (int, error) {
	v, n, err := ParseUintBuf(buf)
	if err != nil {
		return -1, err
	}
	if n != len(buf) {
		return -1, errUnexpectedTrailingChar
	}
	return v, nil
}
