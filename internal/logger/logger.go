// Package logger is the structured logging facade of the engine. Systems
// log through the Logger interface; the zap implementation behind it keeps
// high-frequency debug output sampled so a 60 Hz loop cannot flood the sink.
package logger

// Logger is the logging interface used across the engine.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Field is one structured log field.
type Field struct {
	Key   string
	Value interface{}
}

// String, Int and friends keep call sites terse.
func String(key, value string) Field      { return Field{Key: key, Value: value} }
func Int(key string, value int) Field     { return Field{Key: key, Value: value} }
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }
func Float32(key string, value float32) Field {
	return Field{Key: key, Value: float64(value)}
}
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field       { return Field{Key: key, Value: value} }
func Err(err error) Field                     { return Field{Key: "error", Value: err} }
