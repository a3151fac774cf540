package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// NewTest devolve um logger mudo para os testes.
func NewTest() *Logger {
	return &Logger{
		logger:   zerolog.New(io.Discard).Level(zerolog.Disabled),
		language: "en-US",
		messages: embeddedMessages("en-US"),
	}
}
