package pipeline

import "testing"

func TestDefaultTransitions(t *testing.T) {
	tests := []struct {
		from    Node
		outcome Outcome
		want    Node
		ok      bool
	}{
		{NodeAnalyze, OutcomeOK, NodeSearch, true},
		{NodeAnalyze, OutcomeBlocked, NodeBlocked, true},
		{NodeSearch, OutcomeOK, NodeMatch, true},
		{NodeMatch, OutcomeOK, NodeGenerate, true},
		{NodeGenerate, OutcomeOK, NodeValidate, true},
		{NodeValidate, OutcomeOK, NodeFinalize, true},
		{NodeValidate, OutcomeInvalid, NodeInvalid, true},
		{NodeFinalize, OutcomeHalt, NodeError, true},
		{NodeFinalize, OutcomeOK, "", false},
		{NodeError, OutcomeOK, "", false},
		{NodeBlocked, OutcomeOK, "", false},
		{NodeInvalid, OutcomeOK, "", false},
	}
	tr := DefaultTransitions(false)
	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.outcome), func(t *testing.T) {
			got, ok := tr.Next(tt.from, tt.outcome)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Next = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestEveryWorkingNodeHaltsToError(t *testing.T) {
	for _, withReport := range []bool{false, true} {
		tr := DefaultTransitions(withReport)
		for _, n := range []Node{NodeAnalyze, NodeSearch, NodeMatch, NodeGenerate, NodeValidate, NodeFinalize} {
			if got, _ := tr.Next(n, OutcomeHalt); got != NodeError {
				t.Errorf("withReport=%v: %s halt -> %q, want %q", withReport, n, got, NodeError)
			}
		}
	}
}

func TestReportEdge(t *testing.T) {
	got, ok := DefaultTransitions(true).Next(NodeFinalize, OutcomeOK)
	if !ok || got != NodeReport {
		t.Errorf("finalize ok -> (%q, %v), want %q", got, ok, NodeReport)
	}
	if _, ok := DefaultTransitions(true).Next(NodeReport, OutcomeOK); ok {
		t.Error("report must be a dead end")
	}
}

func TestTransitionsValidate(t *testing.T) {
	if err := DefaultTransitions(true).Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}

	broken := DefaultTransitions(false)
	delete(broken, Edge{NodeSearch, OutcomeHalt})
	if err := broken.Validate(); err == nil {
		t.Error("missing halt edge not detected")
	}

	noFinalizeHalt := DefaultTransitions(true)
	delete(noFinalizeHalt, Edge{NodeFinalize, OutcomeHalt})
	if err := noFinalizeHalt.Validate(); err == nil {
		t.Error("missing finalize halt edge not detected")
	}

	looping := DefaultTransitions(false)
	looping[Edge{NodeError, OutcomeOK}] = NodeAnalyze
	if err := looping.Validate(); err == nil {
		t.Error("edge out of error_handling not detected")
	}
}

func TestIsTerminal(t *testing.T) {
	for _, n := range []Node{NodeFinalize, NodeInvalid, NodeError, NodeBlocked} {
		if !n.IsTerminal() {
			t.Errorf("%s should be terminal", n)
		}
	}
	for _, n := range []Node{NodeAnalyze, NodeSearch, NodeMatch, NodeGenerate, NodeValidate, NodeReport} {
		if n.IsTerminal() {
			t.Errorf("%s should not be terminal", n)
		}
	}
}
