// Package logger envuelve zerolog con la configuración de la app.
package logger

import (
	"io"
	"os"

	"github.com/jhoicas/veon-api/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger wrapper sobre zerolog para inyección en casos de uso y handlers.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger de la app sobre stdout.
func New(app config.AppConfig) *Logger {
	return NewWithWriter(app, os.Stdout)
}

// NewWithWriter crea el logger escribiendo en out. En development la salida es legible por consola,
// en otro entorno JSON. Cada línea lleva service y env. LOG_LEVEL inválido o vacío equivale a info.
// También reemplaza el logger global de zerolog.
func NewWithWriter(app config.AppConfig, out io.Writer) *Logger {
	if app.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out}
	}
	level, err := zerolog.ParseLevel(app.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if app.Name != "" {
		ctx = ctx.Str("service", app.Name)
	}
	if app.Env != "" {
		ctx = ctx.Str("env", app.Env)
	}
	zl := ctx.Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

// FromZerolog envuelve un zerolog.Logger ya configurado (tests que inspeccionan la salida).
func FromZerolog(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl}
}

// NewNop descarta todo.
func NewNop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
