package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/labelmkr"
)

var (
	_ labelmkr.Parser   = (*LoggingParser)(nil)
	_ labelmkr.Document = (*LoggingDocument)(nil)
)

// LoggingParser wraps a Parser so every parsed document logs its queries.
type LoggingParser struct {
	next   labelmkr.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next labelmkr.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and wraps the resulting document.
func (p *LoggingParser) Parse(html string) (labelmkr.Document, error) {
	begin := time.Now()
	doc, err := p.next.Parse(html)
	p.logger.Debug("parse",
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	if err != nil {
		return nil, err
	}
	return NewLoggingDocument(doc, p.logger), nil
}

// LoggingDocument wraps a Document and logs locator resolution.
type LoggingDocument struct {
	next   labelmkr.Document
	logger *slog.Logger
}

// NewLoggingDocument creates a new LoggingDocument.
func NewLoggingDocument(next labelmkr.Document, logger *slog.Logger) *LoggingDocument {
	return &LoggingDocument{next: next, logger: logger}
}

// Query delegates to the wrapped document. Syntax errors log at warn level.
func (d *LoggingDocument) Query(locator string) (nodes []labelmkr.Node, err error) {
	defer func(begin time.Time) {
		if err != nil {
			d.logger.Warn("query",
				"locator", locator,
				"err", err,
			)
			return
		}
		d.logger.Debug("query",
			"locator", locator,
			"matches", len(nodes),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return d.next.Query(locator)
}
