package textutil

import "testing"

func TestTokenSetRatioIdentical(t *testing.T) {
	if got := TokenSetRatio("One More Time", "one  more time"); got != 100 {
		t.Errorf("TokenSetRatio(identical) = %d, want 100", got)
	}
}

func TestTokenSetRatioEmpty(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"both empty", "", ""},
		{"a empty", "", "hello"},
		{"b empty", "hello", ""},
		{"punctuation only", "!!!", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenSetRatio(tt.a, tt.b); got != 0 {
				t.Errorf("TokenSetRatio(%q, %q) = %d, want 0", tt.a, tt.b, got)
			}
		})
	}
}

func TestTokenSetRatioIgnoresOrderAndDuplicates(t *testing.T) {
	if got := TokenSetRatio("time more one one", "One More Time"); got != 100 {
		t.Errorf("TokenSetRatio(reordered) = %d, want 100", got)
	}
}

func TestTokenSetRatioDisjoint(t *testing.T) {
	got := TokenSetRatio("apple banana", "dog frog")
	if got >= 50 {
		t.Errorf("TokenSetRatio(disjoint) = %d, want < 50", got)
	}
}

func TestTokenSetRatioPartialOverlap(t *testing.T) {
	got := TokenSetRatio("harder better faster stronger", "harder better faster")
	if got != 100 {
		t.Errorf("TokenSetRatio(subset) = %d, want 100", got)
	}
	got = TokenSetRatio("digital love", "digital lover")
	if got <= 50 || got >= 100 {
		t.Errorf("TokenSetRatio(near) = %d, want between 50 and 100", got)
	}
}

func TestTokenSetRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"something about us", "something about you"},
		{"veridis quo", "veridis"},
		{"aerodynamic", "aerodynamite"},
	}
	for _, p := range pairs {
		if ab, ba := TokenSetRatio(p[0], p[1]), TokenSetRatio(p[1], p[0]); ab != ba {
			t.Errorf("TokenSetRatio not symmetric for %q/%q: %d vs %d", p[0], p[1], ab, ba)
		}
	}
}
