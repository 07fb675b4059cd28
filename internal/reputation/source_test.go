package reputation

import (
	"context"
	"errors"
	"testing"
)

func TestStaticSource(t *testing.T) {
	src := NewStaticSource(map[string]float64{
		"0x2222222222222222222222222222222222222222": 85,
		"0x3333333333333333333333333333333333333333": 150,
		"0x4444444444444444444444444444444444444444": -10,
	}, 50)
	ctx := context.Background()

	tests := []struct {
		name     string
		address  string
		expected float64
	}{
		{"Known solver", "0x2222222222222222222222222222222222222222", 85},
		{"Unknown solver gets default", "0x9999999999999999999999999999999999999999", 50},
		{"Score above scale is capped", "0x3333333333333333333333333333333333333333", 100},
		{"Negative score is floored", "0x4444444444444444444444444444444444444444", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.Reputation(ctx, tt.address)
			if err != nil {
				t.Fatalf("Reputation failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Reputation = %f, expected %f", got, tt.expected)
			}
		})
	}

	if err := src.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}

type flakySource struct {
	scores map[string]float64
}

func (f *flakySource) Reputation(_ context.Context, addr string) (float64, error) {
	score, ok := f.scores[addr]
	if !ok {
		return 0, errors.New("registry unavailable")
	}
	return score, nil
}

func (f *flakySource) HealthCheck(_ context.Context) error { return nil }

func TestFetchSkipsUnresolvable(t *testing.T) {
	src := &flakySource{scores: map[string]float64{
		"0x2222222222222222222222222222222222222222": 85,
	}}

	scores := Fetch(context.Background(), src, []string{
		"0x2222222222222222222222222222222222222222",
		"0x3333333333333333333333333333333333333333",
		"0x2222222222222222222222222222222222222222",
	})

	if len(scores) != 1 {
		t.Fatalf("expected 1 resolved score, got %d", len(scores))
	}
	if scores["0x2222222222222222222222222222222222222222"] != 85 {
		t.Errorf("unexpected score map: %v", scores)
	}
}
