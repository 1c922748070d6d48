package consts

// 已知文本的 HTTP 状态码。
const (
	StatusSwitchingProtocols  = 101
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusInternalServerError = 500
)

var statusTexts = map[int]string{
	StatusSwitchingProtocols:  "Web Socket Protocol Handshake",
	StatusOK:                  "OK",
	StatusBadRequest:          "Bad Request",
	StatusUnauthorized:        "Unauthorized",
	StatusForbidden:           "Forbidden",
	StatusNotFound:            "Not Found",
	StatusInternalServerError: "Internal Server Error",
}

// StatusText 返回状态码对应的文本，未知时返回空字符串。
func StatusText(code int) string {
	return statusTexts[code]
}
