// Copyright 2026 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wizard sequences the setup flow: network, then activation,
// then a summary. The flow is linear with a single branch. A network
// step that does not come back connected skips activation and goes
// straight to the summary with an error.
package wizard

// Step is one stage of the setup flow.
type Step int

const (
	StepNetwork Step = iota
	StepActivation
	StepSummary
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepNetwork:
		return "network"
	case StepActivation:
		return "activation"
	case StepSummary:
		return "summary"
	case StepDone:
		return "done"
	}
	return "unknown"
}

// Result is the ad hoc mapping a step hands to its successor. It is
// consumed once and discarded.
type Result map[string]interface{}

// Bool returns the boolean under key, false when the key is absent or
// holds something else.
func (r Result) Bool(key string) bool {
	v, _ := r[key].(bool)
	return v
}

// Next returns the step after cur given cur's result. Activation is
// reached only when the network step reports connected=true; there are
// no backward transitions.
func Next(cur Step, r Result) Step {
	switch cur {
	case StepNetwork:
		if r.Bool("connected") {
			return StepActivation
		}
		return StepSummary
	case StepActivation:
		return StepSummary
	}
	return StepDone
}

// Screens supplies the interactive part of each step. Network and
// Activation return the result they pass on; Summary only displays what
// it is given.
type Screens struct {
	Network    func() Result
	Activation func() Result
	Summary    func(Result)
}

// Run drives the flow from the network step to completion and returns
// the result the summary displayed, which the caller prints as the
// process's final output.
func Run(s Screens) Result {
	var handoff Result

	cur := StepNetwork
	for cur != StepDone {
		switch cur {
		case StepNetwork:
			r := s.Network()
			cur = Next(cur, r)
			if cur == StepSummary {
				handoff = Result{"error": "Network not connected"}
			}
		case StepActivation:
			handoff = s.Activation()
			cur = Next(cur, handoff)
		case StepSummary:
			if s.Summary != nil {
				s.Summary(handoff)
			}
			cur = StepDone
		}
	}
	return handoff
}
