package cli

import (
	"time"

	"github.com/charmbracelet/log"
)

// progress times one command step and logs its outcome with structured
// fields. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time as "took", rounded to
// the millisecond, followed by keyvals, e.g.
// "Imported roads.gr took=1.234s vertices=264346 edges=733846".
func (p *progress) done(msg string, keyvals ...any) {
	fields := append([]any{"took", time.Since(p.start).Round(time.Millisecond)}, keyvals...)
	p.logger.Info(msg, fields...)
}
