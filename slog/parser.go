package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/sitepdf"
)

// Ensure LoggingParser implements sitepdf.Parser.
var _ sitepdf.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with timing logs.
type LoggingParser struct {
	next   sitepdf.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next sitepdf.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse logs the markup size and parse time.
func (p *LoggingParser) Parse(html string) (root sitepdf.Node, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(html)
}
