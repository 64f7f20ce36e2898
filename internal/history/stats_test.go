package history

import (
	"testing"
	"time"
)

func obsSeq(temps ...float64) []Observation {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	out := make([]Observation, 0, len(temps))
	for i, temp := range temps {
		out = append(out, Observation{
			Timestamp:   base.AddDate(0, 0, i),
			City:        "Testville",
			Temperature: temp,
		})
	}
	return out
}

func TestComputeStatistics(t *testing.T) {
	tests := []struct {
		name string
		obs  []Observation
		want Statistics
	}{
		{
			name: "empty window",
			obs:  nil,
			want: Statistics{},
		},
		{
			name: "single observation is steady",
			obs:  obsSeq(21.5),
			want: Statistics{Count: 1, Average: 21.5, Minimum: 21.5, Maximum: 21.5, Trend: TrendSteady},
		},
		{
			name: "rising trend",
			obs:  obsSeq(10, 12, 15),
			want: Statistics{Count: 3, Average: 12.3, Minimum: 10, Maximum: 15, Trend: TrendRising},
		},
		{
			name: "falling trend",
			obs:  obsSeq(20, 25, 18),
			want: Statistics{Count: 3, Average: 21, Minimum: 18, Maximum: 25, Trend: TrendFalling},
		},
		{
			name: "steady when endpoints match",
			obs:  obsSeq(15, 30, 15),
			want: Statistics{Count: 3, Average: 20, Minimum: 15, Maximum: 30, Trend: TrendSteady},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStatistics(tt.obs)
			if got != tt.want {
				t.Errorf("ComputeStatistics() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
