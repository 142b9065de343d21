package search

import (
	"context"

	"github.com/kamusis/pandora-cli/internal/marketplace"
)

// Lister supplies the flattened component list.
type Lister interface {
	ListFlatComponents(ctx context.Context) ([]marketplace.FlatComponent, error)
}

// Service runs searches against a fresh engine built from the current list.
type Service struct {
	lister Lister
}

// NewService returns a Service over l.
func NewService(l Lister) *Service {
	return &Service{lister: l}
}

// Engine builds an engine over the current list.
func (s *Service) Engine(ctx context.Context) (*Engine, error) {
	comps, err := s.lister.ListFlatComponents(ctx)
	if err != nil {
		return nil, err
	}
	return NewEngine(comps), nil
}

// Search lists the components passing fs.
func (s *Service) Search(ctx context.Context, fs FilterState) ([]Result, error) {
	e, err := s.Engine(ctx)
	if err != nil {
		return nil, err
	}
	return e.Results(fs), nil
}

// Suggest returns up to limit close matches for query over the whole list.
func (s *Service) Suggest(ctx context.Context, query string, limit int) ([]marketplace.FlatComponent, error) {
	e, err := s.Engine(ctx)
	if err != nil {
		return nil, err
	}
	return e.Suggest(query, limit), nil
}
