package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/paca-cli/paca"
)

// logrusLogger adapts logrus to paca.Logger.
type logrusLogger struct {
	l logrus.FieldLogger
}

var _ paca.Logger = logrusLogger{}

// newLogger logs warnings and errors to w, and everything with verbose.
func newLogger(w io.Writer, verbose bool) logrusLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return logrusLogger{l: l}
}

func (a logrusLogger) Debug(msg string, kv ...any) { a.l.WithFields(fields(kv)).Debug(msg) }
func (a logrusLogger) Info(msg string, kv ...any)  { a.l.WithFields(fields(kv)).Info(msg) }
func (a logrusLogger) Warn(msg string, kv ...any)  { a.l.WithFields(fields(kv)).Warn(msg) }
func (a logrusLogger) Error(msg string, kv ...any) { a.l.WithFields(fields(kv)).Error(msg) }

func fields(kv []any) logrus.Fields {
	f := make(logrus.Fields, len(kv)/2+1)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if i+1 == len(kv) {
			f["!BADKEY"] = kv[i]
			break
		}
		f[key] = kv[i+1]
	}
	return f
}
