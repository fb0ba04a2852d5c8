package kafkaproducer

import (
	"io"
	"log"
)

// StdLogger is the minimal interface this package logs through, satisfied
// by the standard library's *log.Logger. Assign a Logger to Logger to
// route dispatch-loop and lifecycle diagnostics anywhere you like.
type StdLogger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Logger is the package-wide diagnostic logger. It discards everything by
// default; set it before constructing a Producer to see dispatch-loop
// lifecycle messages.
var Logger StdLogger = log.New(io.Discard, "[kafkaproducer] ", log.LstdFlags)

// PanicHandler, if set, is invoked with the recovered value whenever a
// background goroutine started by this package would otherwise crash the
// process. It is not set by default, matching sarama's own opt-in
// PanicHandler.
var PanicHandler func(interface{})

// withRecover runs fn and, only if PanicHandler is set, recovers any panic
// and forwards it there. With no PanicHandler set a panic in fn propagates
// and crashes the process, exactly as if withRecover were not used at all.
func withRecover(fn func()) {
	defer func() {
		if PanicHandler != nil {
			if err := recover(); err != nil {
				PanicHandler(err)
			}
		}
	}()
	fn()
}
