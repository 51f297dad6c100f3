// Copyright © 2024 The MNL authors

package readtest

import (
	"bytes"
	"io"
	"testing"
)

// Logger is an io.Writer that sends each complete line written to it to a
// test log.
type Logger struct {
	t   testing.TB
	buf []byte
}

var _ io.Writer = (*Logger)(nil)

func NewLogger(t testing.TB) *Logger {
	return &Logger{
		t: t,
	}
}

func (log *Logger) Write(b []byte) (int, error) {
	log.buf = append(log.buf, b...)
	for {
		i := bytes.IndexByte(log.buf, '\n')
		if i < 0 {
			return len(b), nil
		}
		log.t.Log(string(log.buf[:i]))
		log.buf = log.buf[i+1:]
	}
}

// Flush logs any partial line left in the buffer.
func (log *Logger) Flush() {
	if len(log.buf) == 0 {
		return
	}
	log.t.Log(string(log.buf))
	log.buf = nil
}
