// Package reputation supplies solver reputation figures to the ranking
// pipeline. The engine treats reputation as an external input feature; it
// never computes or mutates it.
package reputation

import "context"

// Source provides a reputation score in [0,100] per solver address.
type Source interface {
	Reputation(ctx context.Context, solverAddress string) (float64, error)
	HealthCheck(ctx context.Context) error
}

// StaticSource serves scores from a fixed map with a default for unknown
// solvers. Used in development and tests, and as the fallback when no
// registry is configured.
type StaticSource struct {
	scores       map[string]float64
	defaultScore float64
}

// NewStaticSource creates a static source. Scores may be nil.
func NewStaticSource(scores map[string]float64, defaultScore float64) *StaticSource {
	return &StaticSource{scores: scores, defaultScore: defaultScore}
}

// Reputation returns the configured score or the default.
func (s *StaticSource) Reputation(_ context.Context, solverAddress string) (float64, error) {
	if score, ok := s.scores[solverAddress]; ok {
		return clampScore(score), nil
	}
	return clampScore(s.defaultScore), nil
}

// HealthCheck always succeeds for a static source.
func (s *StaticSource) HealthCheck(_ context.Context) error {
	return nil
}

// Fetch resolves reputations for a set of solvers from any source,
// skipping solvers the source cannot resolve. A missing reputation scores
// zero downstream rather than aborting the round.
func Fetch(ctx context.Context, src Source, solverAddresses []string) map[string]float64 {
	scores := make(map[string]float64, len(solverAddresses))
	for _, addr := range solverAddresses {
		if _, seen := scores[addr]; seen {
			continue
		}
		score, err := src.Reputation(ctx, addr)
		if err != nil {
			continue
		}
		scores[addr] = score
	}
	return scores
}

// clampScore bounds a registry value to the [0,100] scale the ranker
// passes through unmodified.
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
