package escansion

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ScanAll scans lines concurrently and returns their verses in input
// order. The first collaborator error cancels the remaining lines.
func (s *Scanner) ScanAll(ctx context.Context, lines []string, opts ...ScanOption) ([]*Verse, error) {
	out := make([]*Verse, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, line := range lines {
		g.Go(func() error {
			v, err := s.Scan(ctx, line, opts...)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
