// Package utxo tracks the outputs an address owns.
package utxo

import (
	"encoding/json"

	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// Output is an output owned by the wallet, identified by the ID the ledger
// assigned to it.
type Output struct {
	ID        types.OutputID
	Value     types.Currency
	Condition tx.Condition
	// Height is the block height of the transaction that created the output.
	Height types.BlockHeight
}

type outputJSON struct {
	ID        types.OutputID    `json:"id"`
	Value     types.Currency    `json:"value"`
	Condition json.RawMessage   `json:"condition"`
	Height    types.BlockHeight `json:"height"`
}

// MarshalJSON implements json.Marshaler.
func (o Output) MarshalJSON() ([]byte, error) {
	c, err := tx.MarshalCondition(o.Condition)
	if err != nil {
		return nil, err
	}
	return json.Marshal(outputJSON{ID: o.ID, Value: o.Value, Condition: c, Height: o.Height})
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Output) UnmarshalJSON(data []byte) error {
	var j outputJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	c, err := tx.UnmarshalCondition(j.Condition)
	if err != nil {
		return err
	}
	*o = Output{ID: j.ID, Value: j.Value, Condition: c, Height: j.Height}
	return nil
}

// Set is an insertion-ordered set of outputs keyed by ID. A nil *Set is an
// empty set.
type Set struct {
	order   []types.OutputID
	outputs map[types.OutputID]Output
}

// NewSet creates a set holding outputs, keeping the first of any duplicates.
func NewSet(outputs ...Output) *Set {
	s := &Set{outputs: make(map[types.OutputID]Output, len(outputs))}
	for _, o := range outputs {
		s.Add(o)
	}
	return s
}

// Add inserts o unless an output with the same ID is already present.
// It reports whether o was inserted.
func (s *Set) Add(o Output) bool {
	if s.outputs == nil {
		s.outputs = make(map[types.OutputID]Output)
	}
	if _, ok := s.outputs[o.ID]; ok {
		return false
	}
	s.outputs[o.ID] = o
	s.order = append(s.order, o.ID)
	return true
}

// Contains reports whether the set holds an output with the given ID.
func (s *Set) Contains(id types.OutputID) bool {
	if s == nil {
		return false
	}
	_, ok := s.outputs[id]
	return ok
}

// Get returns the output with the given ID.
func (s *Set) Get(id types.OutputID) (Output, bool) {
	if s == nil {
		return Output{}, false
	}
	o, ok := s.outputs[id]
	return o, ok
}

// Len returns the number of outputs in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// IDs returns the output IDs in insertion order.
func (s *Set) IDs() []types.OutputID {
	if s == nil {
		return nil
	}
	ids := make([]types.OutputID, len(s.order))
	copy(ids, s.order)
	return ids
}

// Outputs returns the outputs in insertion order.
func (s *Set) Outputs() []Output {
	if s == nil {
		return nil
	}
	out := make([]Output, len(s.order))
	for i, id := range s.order {
		out[i] = s.outputs[id]
	}
	return out
}

// Total returns the summed value of the set.
func (s *Set) Total() types.Currency {
	total := types.ZeroCurrency
	for _, o := range s.Outputs() {
		total = total.Add(o.Value)
	}
	return total
}

// Filter returns a new set with the outputs for which keep returns true,
// in the same order.
func (s *Set) Filter(keep func(Output) bool) *Set {
	out := NewSet()
	for _, o := range s.Outputs() {
		if keep(o) {
			out.Add(o)
		}
	}
	return out
}
