package automaton

import (
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/renfa/internal/util"
)

// MarshalBinary converts nfa into a slice of bytes that can be decoded with
// UnmarshalBinary. The alphabet is not written; it is rebuilt from the
// transitions on decode.
func (nfa NFA) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncBool(nfa.hasStart)...)
	data = append(data, rezi.EncInt(nfa.start)...)

	ids := util.OrderedKeys(nfa.states)
	data = append(data, rezi.EncInt(len(ids))...)
	for _, id := range ids {
		data = append(data, rezi.EncInt(id)...)
		data = append(data, rezi.EncBool(nfa.states[id].final)...)
	}

	trans := nfa.Transitions()
	data = append(data, rezi.EncInt(len(trans))...)
	for _, t := range trans {
		data = append(data, rezi.EncInt(t.From)...)
		data = append(data, rezi.EncString(t.Input)...)
		data = append(data, rezi.EncInt(t.To)...)
	}

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into nfa.
// All previous contents of nfa are replaced.
func (nfa *NFA) UnmarshalBinary(data []byte) error {
	var decoded NFA
	var n int
	var err error

	var hasStart bool
	hasStart, n, err = rezi.DecBool(data)
	if err != nil {
		return fmt.Errorf("has start: %w", err)
	}
	data = data[n:]

	var start int
	start, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	data = data[n:]

	var stateCount int
	stateCount, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("state count: %w", err)
	}
	data = data[n:]

	for i := 0; i < stateCount; i++ {
		var id int
		var final bool

		id, n, err = rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("state %d: id: %w", i, err)
		}
		data = data[n:]

		final, n, err = rezi.DecBool(data)
		if err != nil {
			return fmt.Errorf("state %d: final: %w", i, err)
		}
		data = data[n:]

		if decoded.HasState(id) {
			return fmt.Errorf("state %d: duplicate state ID %d", i, id)
		}
		decoded.AddState(id, final)
	}

	var transCount int
	transCount, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("transition count: %w", err)
	}
	data = data[n:]

	for i := 0; i < transCount; i++ {
		var from, to int
		var input string

		from, n, err = rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("transition %d: from: %w", i, err)
		}
		data = data[n:]

		input, n, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("transition %d: input: %w", i, err)
		}
		data = data[n:]

		to, n, err = rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("transition %d: to: %w", i, err)
		}
		data = data[n:]

		if !decoded.HasState(from) || !decoded.HasState(to) {
			return fmt.Errorf("transition %d: %s refers to a missing state", i, Transition{From: from, Input: input, To: to})
		}
		decoded.AddTransition(from, input, to)
	}

	if hasStart {
		if !decoded.HasState(start) {
			return fmt.Errorf("start state %d is not in the state set", start)
		}
		decoded.SetStart(start)
	}

	*nfa = decoded
	return nil
}
