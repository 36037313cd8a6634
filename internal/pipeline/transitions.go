package pipeline

import "fmt"

// #region table
// Edge keys the transition table.
type Edge struct {
	From    Node
	Outcome Outcome
}

// Transitions maps (node, outcome) to the next node. A missing edge ends
// the run.
type Transitions map[Edge]Node

// DefaultTransitions returns the production graph. Every non-terminal node
// routes halt to error_handling. withReport chains the similarity report
// after a successful finalize.
func DefaultTransitions(withReport bool) Transitions {
	t := Transitions{
		{NodeAnalyze, OutcomeOK}:      NodeSearch,
		{NodeAnalyze, OutcomeBlocked}: NodeBlocked,
		{NodeAnalyze, OutcomeHalt}:    NodeError,

		{NodeSearch, OutcomeOK}:   NodeMatch,
		{NodeSearch, OutcomeHalt}: NodeError,

		{NodeMatch, OutcomeOK}:   NodeGenerate,
		{NodeMatch, OutcomeHalt}: NodeError,

		{NodeGenerate, OutcomeOK}:   NodeValidate,
		{NodeGenerate, OutcomeHalt}: NodeError,

		{NodeValidate, OutcomeOK}:      NodeFinalize,
		{NodeValidate, OutcomeInvalid}: NodeInvalid,
		{NodeValidate, OutcomeHalt}:    NodeError,

		// Finalizers return an error and run behind the panic boundary, so a
		// failed finalize still ends at error_handling.
		{NodeFinalize, OutcomeHalt}: NodeError,
	}
	if withReport {
		t[Edge{NodeFinalize, OutcomeOK}] = NodeReport
	}
	return t
}

// Next returns the node after from given outcome.
func (t Transitions) Next(from Node, outcome Outcome) (Node, bool) {
	n, ok := t[Edge{from, outcome}]
	return n, ok
}

// #endregion

// #region validate
// Validate checks that every working node, finalize included, routes halt
// to error_handling and that the error node is itself a dead end.
func (t Transitions) Validate() error {
	for _, n := range []Node{NodeAnalyze, NodeSearch, NodeMatch, NodeGenerate, NodeValidate, NodeFinalize} {
		if next, ok := t.Next(n, OutcomeHalt); !ok || next != NodeError {
			return fmt.Errorf("node %s: halt must route to %s", n, NodeError)
		}
	}
	for e := range t {
		if e.From == NodeError {
			return fmt.Errorf("node %s must not have outgoing edges", NodeError)
		}
	}
	return nil
}

// #endregion
