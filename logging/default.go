package logging

import (
	"context"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strings"
)

// DefaultLogger is a leveled logger on the standard log package. Debug and
// Info lines go to stdout, Warn and above to stderr. Fields render as sorted
// key=value pairs so log lines are stable and grep-friendly.
type DefaultLogger struct {
	out    *log.Logger
	errOut *log.Logger
	level  Level
	fields Fields
	color  bool
}

// NewDefaultLogger creates a logger that colors warnings and errors when
// stdout is a terminal.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		out:    log.New(os.Stdout, "", log.LstdFlags),
		errOut: log.New(os.Stderr, "", log.LstdFlags),
		level:  InfoLevel,
		fields: make(Fields),
		color:  isTerminal(),
	}
}

// NewDefaultLoggerNoColor creates a logger with coloring forced off, for
// captured or piped output.
func NewDefaultLoggerNoColor() *DefaultLogger {
	l := NewDefaultLogger()
	l.color = false
	return l
}

func isTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// render builds one log line: "[LEVEL] msg: err k1=v1 k2=v2".
func (d *DefaultLogger) render(level Level, err error, msg string, extra ...Fields) string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(level.String())
	b.WriteString("] ")
	b.WriteString(msg)
	if err != nil {
		b.WriteString(": ")
		b.WriteString(err.Error())
	}

	merged := make(Fields, len(d.fields))
	maps.Copy(merged, d.fields)
	for _, f := range extra {
		maps.Copy(merged, f)
	}
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		fmt.Fprintf(&b, " %s=%v", k, merged[k])
	}

	line := b.String()
	if d.color {
		switch level {
		case WarnLevel:
			line = ColorYellow + line + ColorReset
		case ErrorLevel:
			line = ColorRed + line + ColorReset
		case FatalLevel:
			line = ColorBold + ColorRed + line + ColorReset
		}
	}
	return line
}

func (d *DefaultLogger) emit(level Level, err error, msg string, fields ...Fields) {
	if level < d.level {
		return
	}

	line := d.render(level, err, msg, fields...)
	if level >= WarnLevel {
		d.errOut.Println(line)
	} else {
		d.out.Println(line)
	}

	if level == FatalLevel {
		os.Exit(1)
	}
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) { d.emit(DebugLevel, nil, msg, fields...) }
func (d *DefaultLogger) Info(msg string, fields ...Fields)  { d.emit(InfoLevel, nil, msg, fields...) }
func (d *DefaultLogger) Warn(msg string, fields ...Fields)  { d.emit(WarnLevel, nil, msg, fields...) }

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.emit(ErrorLevel, err, msg, fields...)
}

func (d *DefaultLogger) Fatal(err error, msg string, fields ...Fields) {
	d.emit(FatalLevel, err, msg, fields...)
}

// WithFields returns a copy carrying the merged field set; the receiver's
// fields are untouched.
func (d *DefaultLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(d.fields)+len(fields))
	maps.Copy(merged, d.fields)
	maps.Copy(merged, fields)

	return &DefaultLogger{
		out:    d.out,
		errOut: d.errOut,
		level:  d.level,
		fields: merged,
		color:  d.color,
	}
}

func (d *DefaultLogger) WithContext(ctx context.Context) Logger { return d }

func (d *DefaultLogger) SetLevel(level Level) { d.level = level }

// NoOpLogger discards everything. Install it when the host application owns
// all logging.
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, fields ...Fields)            {}
func (n *NoOpLogger) Info(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Warn(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Error(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) Fatal(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) WithFields(fields Fields) Logger               { return n }
func (n *NoOpLogger) WithContext(ctx context.Context) Logger        { return n }
func (n *NoOpLogger) SetLevel(level Level)                          {}
