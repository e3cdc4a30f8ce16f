package catalog

import (
	"errors"
	"testing"
)

func pct(n int) *int { return &n }

func TestDominantFiber(t *testing.T) {
	tests := []struct {
		name   string
		shares []FiberShare
		want   string
	}{
		{
			name:   "highest percentage wins",
			shares: []FiberShare{{pct(80), "Wool"}, {pct(20), "Nylon"}},
			want:   "Wool",
		},
		{
			name:   "order does not matter",
			shares: []FiberShare{{pct(20), "Nylon"}, {pct(80), "wool"}},
			want:   "Wool",
		},
		{
			name:   "tie resolves to first share at the maximum",
			shares: []FiberShare{{pct(50), "Alpaca"}, {pct(50), "Silk"}},
			want:   "Alpaca",
		},
		{
			name:   "missing percentages are skipped",
			shares: []FiberShare{{nil, "Cashmere"}, {pct(10), "Nylon"}},
			want:   "Nylon",
		},
		{
			name:   "all missing falls back to first fiber",
			shares: []FiberShare{{nil, "cotton"}, {nil, "linen"}},
			want:   "Cotton",
		},
		{
			name:   "zero percent is usable, distinct from missing",
			shares: []FiberShare{{nil, "Mohair"}, {pct(0), "Wool"}},
			want:   "Wool",
		},
		{
			name:   "fiber name is title-cased",
			shares: []FiberShare{{pct(100), "merino wool"}},
			want:   "Merino Wool",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DominantFiber(tt.shares)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DominantFiber = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDominantFiber_Empty(t *testing.T) {
	if _, err := DominantFiber(nil); !errors.Is(err, ErrEmptyFiberContent) {
		t.Fatalf("expected ErrEmptyFiberContent, got %v", err)
	}
}
