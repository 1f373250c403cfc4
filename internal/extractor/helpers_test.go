package extractor

import (
	"context"
	"strings"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

// fakePage answers queries from fixed tables
type fakePage struct {
	properties map[string][]string // "selector|name" -> values
	texts      map[string][]string
	queryErr   error
	queries    int
}

func (p *fakePage) Properties(_ context.Context, selector, name string) ([]string, error) {
	p.queries++
	if p.queryErr != nil {
		return nil, p.queryErr
	}
	return p.properties[selector+"|"+name], nil
}

func (p *fakePage) TextContents(_ context.Context, selector string) ([]string, error) {
	p.queries++
	if p.queryErr != nil {
		return nil, p.queryErr
	}
	return p.texts[selector], nil
}

func (p *fakePage) Close() error { return nil }

// countingStrategy returns a fixed candidate and records invocations
type countingStrategy struct {
	name      string
	candidate *domain.MediaCandidate
	err       error
	calls     int
}

func (s *countingStrategy) Name() string { return s.name }

func (s *countingStrategy) Extract(context.Context, domain.Page, string) (*domain.MediaCandidate, error) {
	s.calls++
	return s.candidate, s.err
}

func key(selector, name string) string {
	return strings.Join([]string{selector, name}, "|")
}
