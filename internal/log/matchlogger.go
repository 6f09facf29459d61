package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Alia5/offsetgen/internal/codegen/scanner"
)

// MatchLogger traces every namespace and offset the scanner recognizes.
type MatchLogger interface {
	Log(m scanner.Match)
}

// matchLogger implements MatchLogger with thread-safe writes.
type matchLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewMatch creates a new MatchLogger. If writer is nil, returns a no-op logger.
func NewMatch(w io.Writer) MatchLogger {
	return &matchLogger{w: w}
}

// Log emits a single line per match:
//
//	2006/01/02 15:04:05 dir/offsets.hpp:12 offset client_dll.dwEntityList=0x19CA848 | constexpr ...
func (l *matchLogger) Log(m scanner.Match) {
	if l.w == nil {
		return
	}

	what := m.Namespace
	if m.Kind == scanner.MatchOffset {
		what = fmt.Sprintf("%s.%s=%s", m.Namespace, m.Name, m.Value)
	}

	line := fmt.Sprintf("%s %s:%d %s %s | %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		m.File,
		m.Line,
		m.Kind,
		what,
		m.Text)

	l.mu.Lock()
	_, _ = l.w.Write([]byte(line))
	l.mu.Unlock()
}
