package nested

import (
	"math"
	"testing"
)

func TestUniformPriorQuantileCDFRoundTrip(t *testing.T) {
	p := NewUniformPrior(-5, 5)
	for _, u := range []float64{0.0, 0.25, 0.5, 0.75, 1.0} {
		x := p.Quantile(u)
		back := p.CDF(x)
		if math.Abs(back-u) > 1e-9 {
			t.Errorf("quantile/cdf round trip failed for u=%v: got back %v", u, back)
		}
	}
	if p.Quantile(0) != -5 || p.Quantile(1) != 5 {
		t.Errorf("uniform prior bounds wrong: got [%v, %v]", p.Quantile(0), p.Quantile(1))
	}
}

func TestNormalPriorQuantileCDFRoundTrip(t *testing.T) {
	p := NewNormalPrior(2, 3)
	for _, u := range []float64{0.1, 0.5, 0.9} {
		x := p.Quantile(u)
		back := p.CDF(x)
		if math.Abs(back-u) > 1e-9 {
			t.Errorf("quantile/cdf round trip failed for u=%v: got back %v", u, back)
		}
	}
}

func TestLogUniformPrior(t *testing.T) {
	p := NewLogUniformPrior(1, 100)
	x := p.Quantile(0.5)
	want := 10.0 // geometric mean of 1 and 100
	if math.Abs(x-want) > 1e-6 {
		t.Errorf("log-uniform median: got %v, want %v", x, want)
	}
	back := p.CDF(x)
	if math.Abs(back-0.5) > 1e-9 {
		t.Errorf("log-uniform cdf round trip failed: got %v", back)
	}
}
