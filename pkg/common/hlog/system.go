package hlog

const systemLogPrefix = "COURIER: "

var sysLogger = &systemLogger{logger: logger, prefix: systemLogPrefix}

// SystemLogger 返回库内部使用的记录器，输出带有统一前缀。
func SystemLogger() FormatLogger {
	return sysLogger
}

type systemLogger struct {
	logger FullLogger
	prefix string
}

func (l *systemLogger) Tracef(format string, v ...any) {
	l.logger.Tracef(l.prefix+format, v...)
}

func (l *systemLogger) Debugf(format string, v ...any) {
	l.logger.Debugf(l.prefix+format, v...)
}

func (l *systemLogger) Infof(format string, v ...any) {
	l.logger.Infof(l.prefix+format, v...)
}

func (l *systemLogger) Noticef(format string, v ...any) {
	l.logger.Noticef(l.prefix+format, v...)
}

func (l *systemLogger) Warnf(format string, v ...any) {
	l.logger.Warnf(l.prefix+format, v...)
}

func (l *systemLogger) Errorf(format string, v ...any) {
	l.logger.Errorf(l.prefix+format, v...)
}

func (l *systemLogger) Fatalf(format string, v ...any) {
	l.logger.Fatalf(l.prefix+format, v...)
}
