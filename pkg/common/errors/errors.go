package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConnectionClosed = errors.New("连接已关闭")
	ErrTimeout          = errors.New("超时")

	ErrInvalidURI      = errors.New("无效的 URI")
	ErrInvalidArgument = errors.New("无效的参数")
	ErrTransportConfig = errors.New("传输配置错误")
	ErrTransport       = errors.New("传输失败")
	ErrBodyParse       = errors.New("正文解析失败")
	ErrNoHandle        = errors.New("传输句柄已释放")
)

type ErrorType uint64

type Error struct {
	Err  error
	Type ErrorType
	Meta any
}

// 返回错误的消息字符串。
func (msg *Error) Error() string {
	return msg.Err.Error()
}

// Unwrap 返回底层错误。
func (msg *Error) Unwrap() error {
	return msg.Err
}

// Is 使 errors.Is 能按错误类型匹配对应的哨兵错误。
func (msg *Error) Is(target error) bool {
	if s, ok := sentinels[msg.Type]; ok && s == target {
		return true
	}
	return false
}

func (msg *Error) IsType(flags ErrorType) bool {
	return (msg.Type & flags) > 0
}

func (msg *Error) SetMeta(data any) *Error {
	msg.Meta = data
	return msg
}

const (
	// ErrorTypeInvalidURI 用于无法分解的 URI 字符串。
	ErrorTypeInvalidURI ErrorType = 1 << iota
	// ErrorTypeInvalidArgument 用于越界端口、错误的状态码等参数校验失败。
	ErrorTypeInvalidArgument
	// ErrorTypeTransportConfig 用于不完整的代理配置。
	ErrorTypeTransportConfig
	// ErrorTypeTransport 用于发送过程中底层传输的失败。
	ErrorTypeTransport
	// ErrorTypeBodyParse 用于声明为 JSON 但内容无效的正文。
	ErrorTypeBodyParse
)

var sentinels = map[ErrorType]error{
	ErrorTypeInvalidURI:      ErrInvalidURI,
	ErrorTypeInvalidArgument: ErrInvalidArgument,
	ErrorTypeTransportConfig: ErrTransportConfig,
	ErrorTypeTransport:       ErrTransport,
	ErrorTypeBodyParse:       ErrBodyParse,
}

var _ error = (*Error)(nil)

func New(err error, t ErrorType, meta any) *Error {
	return &Error{
		Err:  err,
		Type: t,
		Meta: meta,
	}
}

func Newf(t ErrorType, meta any, format string, v ...any) *Error {
	return New(fmt.Errorf(format, v...), t, meta)
}

func NewInvalidArgumentf(format string, v ...any) *Error {
	return Newf(ErrorTypeInvalidArgument, nil, format, v...)
}

// NewTransport 包装底层传输错误，保留其错误文本。
func NewTransport(err error) *Error {
	return New(fmt.Errorf("传输失败: %w", err), ErrorTypeTransport, nil)
}

// IsType 报告 err 链中是否存在指定类型的 *Error。支持位或|操作。
func IsType(err error, t ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.IsType(t)
	}
	return false
}
