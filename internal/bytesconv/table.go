package bytesconv

// 字节查找表。
var (
	ToLowerTable               = buildToLowerTable()
	QuotedArgShouldEscapeTable = buildQuotedArgShouldEscapeTable()
)

func buildToLowerTable() (t [256]byte) {
	for i := range t {
		c := byte(i)
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		t[i] = c
	}
	return
}

// 除字母、数字和 "-_.~" 之外的字节都需要转义，与 url.QueryEscape 保持一致。
func buildQuotedArgShouldEscapeTable() (t [256]byte) {
	for i := range t {
		c := byte(i)
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == '~':
		default:
			t[i] = 1
		}
	}
	return
}
