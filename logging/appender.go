package logging

import (
	"io"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Appender is an output for log entries. This is a subset of the `zapcore.Core` interface.
type Appender interface {
	// Write submits a structured log entry to the appender for logging.
	Write(zapcore.Entry, []zapcore.Field) error
	// Sync is for signaling that any buffered logs to `Write` should be flushed. E.g: at shutdown.
	Sync() error
}

// ConsoleAppender will create human readable lines from log events and write them to the desired
// output sync. E.g: stdout or a file.
type ConsoleAppender struct {
	io.Writer
	encoder zapcore.Encoder
}

// NewStdoutAppender creates a new appender that outputs to stdout with colored levels.
func NewStdoutAppender() ConsoleAppender {
	return NewWriterAppender(os.Stdout, zapcore.CapitalColorLevelEncoder)
}

// NewWriterAppender outputs to the given writer. Levels are rendered with encodeLevel.
func NewWriterAppender(writer io.Writer, encodeLevel zapcore.LevelEncoder) ConsoleAppender {
	encoderConfig := NewZapLoggerConfig().EncoderConfig
	encoderConfig.EncodeLevel = encodeLevel
	return ConsoleAppender{writer, zapcore.NewConsoleEncoder(encoderConfig)}
}

// NewFileAppender outputs to a file at path that is rotated once it grows past maxSizeMB. The returned closer
// releases the file.
func NewFileAppender(path string, maxSizeMB int) (ConsoleAppender, io.Closer) {
	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 2,
		Compress:   true,
	}
	return NewWriterAppender(writer, zapcore.CapitalLevelEncoder), writer
}

// Write outputs the log entry to the underlying stream.
func (appender ConsoleAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	buf, err := appender.encoder.EncodeEntry(entry, fields)
	if err != nil {
		return err
	}
	defer buf.Free()

	_, err = appender.Writer.Write(buf.Bytes())
	return err
}

// Sync is a no-op.
func (appender ConsoleAppender) Sync() error {
	return nil
}
