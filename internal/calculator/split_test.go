package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func equal(n int) []models.SplitSpec {
	splits := make([]models.SplitSpec, n)
	for i := range splits {
		splits[i] = models.SplitSpec{Method: models.SplitEqual}
	}
	return splits
}

func exact(amounts ...string) []models.SplitSpec {
	splits := make([]models.SplitSpec, len(amounts))
	for i, a := range amounts {
		splits[i] = models.SplitSpec{Method: models.SplitExact, Amount: d(a)}
	}
	return splits
}

func percentage(pcts ...string) []models.SplitSpec {
	splits := make([]models.SplitSpec, len(pcts))
	for i, p := range pcts {
		splits[i] = models.SplitSpec{Method: models.SplitPercentage, Percentage: d(p)}
	}
	return splits
}

func TestComputeSplits(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		splits     []models.SplitSpec
		want       []string
		wantReason string
	}{
		{
			name:   "equal two-way split",
			amount: "100",
			splits: equal(2),
			want:   []string{"50", "50"},
		},
		{
			name:   "equal split of cents",
			amount: "10.50",
			splits: equal(3),
			want:   []string{"3.5", "3.5", "3.5"},
		},
		{
			name:       "empty splits fall back to equal and fail",
			amount:     "100",
			splits:     nil,
			wantReason: "no participants",
		},
		{
			name:   "exact amounts returned verbatim",
			amount: "100",
			splits: exact("60", "40"),
			want:   []string{"60", "40"},
		},
		{
			name:   "exact amounts with cents",
			amount: "100",
			splits: exact("33.33", "33.33", "33.34"),
			want:   []string{"33.33", "33.33", "33.34"},
		},
		{
			name:       "exact sum over total",
			amount:     "100",
			splits:     exact("60", "41"),
			wantReason: "sum mismatch",
		},
		{
			name:       "exact sum off by the smallest fraction",
			amount:     "100",
			splits:     exact("60", "40.0000001"),
			wantReason: "sum mismatch",
		},
		{
			name:       "exact negative share",
			amount:     "100",
			splits:     exact("120", "-20"),
			wantReason: "negative amount",
		},
		{
			name:   "percentage split",
			amount: "200",
			splits: percentage("25", "75"),
			want:   []string{"50", "150"},
		},
		{
			name:   "fractional percentages",
			amount: "80",
			splits: percentage("12.5", "87.5"),
			want:   []string{"10", "70"},
		},
		{
			name:       "percentages under 100",
			amount:     "100",
			splits:     percentage("50", "49.99"),
			wantReason: "percentage mismatch",
		},
		{
			name:       "percentage above 100",
			amount:     "100",
			splits:     percentage("150", "-50"),
			wantReason: "percentage out of range",
		},
		{
			name:       "unknown method",
			amount:     "100",
			splits:     []models.SplitSpec{{Method: "shares"}},
			wantReason: "unknown method",
		},
		{
			name:   "first entry decides the method",
			amount: "90",
			splits: []models.SplitSpec{{Method: models.SplitEqual}, {Method: models.SplitExact, Amount: d("1")}, {Method: "bogus"}},
			want:   []string{"30", "30", "30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeSplits(d(tt.amount), tt.splits)
			if tt.wantReason != "" {
				var splitErr *models.InvalidSplitError
				if !errors.As(err, &splitErr) {
					t.Fatalf("ComputeSplits() error = %v, want InvalidSplitError", err)
				}
				if splitErr.Reason != tt.wantReason {
					t.Errorf("reason = %q, want %q", splitErr.Reason, tt.wantReason)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSplits() unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d amounts, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !got[i].Equal(d(tt.want[i])) {
					t.Errorf("amount[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestComputeSplits_EqualSumsWithinTolerance(t *testing.T) {
	for _, amount := range []string{"100", "0.01", "1", "99.99", "12345.67"} {
		for n := 1; n <= 9; n++ {
			got, err := ComputeSplits(d(amount), equal(n))
			if err != nil {
				t.Fatalf("amount %s over %d: %v", amount, n, err)
			}
			want := d(amount).Div(decimal.NewFromInt(int64(n)))
			sum := decimal.Zero
			for _, a := range got {
				if !a.Equal(want) {
					t.Errorf("amount %s over %d: share %s, want %s", amount, n, a, want)
				}
				sum = sum.Add(a)
			}
			if sum.Sub(d(amount)).Abs().GreaterThan(Tolerance) {
				t.Errorf("amount %s over %d: sum %s drifts beyond tolerance", amount, n, sum)
			}
		}
	}
}

func TestComputeSplits_PercentageSumsToAmount(t *testing.T) {
	tests := [][]string{
		{"100"},
		{"50", "50"},
		{"33.33", "33.33", "33.34"},
		{"10", "20", "30", "40"},
		{"0", "100"},
	}
	for _, pcts := range tests {
		got, err := ComputeSplits(d("123.45"), percentage(pcts...))
		if err != nil {
			t.Fatalf("percentages %v: %v", pcts, err)
		}
		sum := decimal.Zero
		for _, a := range got {
			sum = sum.Add(a)
		}
		if sum.Sub(d("123.45")).Abs().GreaterThan(Tolerance) {
			t.Errorf("percentages %v: sum %s, want 123.45", pcts, sum)
		}
	}
}
