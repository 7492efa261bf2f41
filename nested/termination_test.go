package nested

import "testing"

func TestDlogzConvergedEventuallyTrue(t *testing.T) {
	model := gaussianTestModel(2)
	cfg := Config{NActive: 50, Bound: BoundEllipsoid, Proposal: ProposalUniform, Enlarge: 1.25}
	s, err := NewSampler(model, cfg, 42)
	if err != nil {
		t.Fatalf("NewSampler failed: %v", err)
	}
	converged := false
	for i := 0; i < 3000; i++ {
		if _, err := s.Step(); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
		if s.DlogzConverged(DefaultDlogzTau) {
			converged = true
			break
		}
	}
	if !converged {
		t.Error("sampler never reached dlogz convergence within the iteration budget")
	}
}

func TestDeclineConvergedDefaultIsLax(t *testing.T) {
	model := gaussianTestModel(2)
	cfg := Config{NActive: 50, Bound: BoundEllipsoid, Proposal: ProposalUniform, Enlarge: 1.25}
	s, err := NewSampler(model, cfg, 17)
	if err != nil {
		t.Fatalf("NewSampler failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		if _, err := s.Step(); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
		if s.DeclineConverged(DefaultDeclineFactor) {
			t.Fatalf("step %d: decline convergence fired implausibly early with the default factor", i)
		}
	}
}

func TestDlogzConvergedOnEmptyLiveSet(t *testing.T) {
	s := &Sampler{}
	if !s.DlogzConverged(DefaultDlogzTau) {
		t.Error("expected DlogzConverged to report true for an empty live set")
	}
}
