// Package expreplay implements a replay buffer of the state action
// pairs observed in real experience. Planners replay pairs from the
// buffer to perform simulated updates.
package expreplay

import (
	"fmt"

	"github.com/samuelfneumann/mbrl/agent/tabular"
)

// PairBuffer stores every state action pair observed at least once.
// Pairs are appended to a dense slice on their first observation so
// that sampling a pair uniformly at random needs only a random index.
// Pairs are never removed.
type PairBuffer struct {
	pairs []tabular.Pair

	// inUse[s*actions+a] marks pairs already stored in pairs
	inUse []bool

	sampler Selector

	states  int
	actions int
}

// New returns a new, empty PairBuffer for states states and actions
// actions. The sampler determines how pairs are drawn from the buffer.
func New(sampler Selector, states, actions int) (*PairBuffer, error) {
	if states < 1 || actions < 1 {
		return nil, tabular.InvalidArgument("new", "states and actions "+
			"must be > 0, have %d and %d", states, actions)
	}
	if sampler.BatchSize() < 1 {
		return nil, tabular.InvalidArgument("new", "batch size must be "+
			"> 0, have %d", sampler.BatchSize())
	}

	return &PairBuffer{
		pairs:   make([]tabular.Pair, 0, states*actions),
		inUse:   make([]bool, states*actions),
		sampler: sampler,
		states:  states,
		actions: actions,
	}, nil
}

// String returns the string representation of the PairBuffer
func (p *PairBuffer) String() string {
	return fmt.Sprintf("PairBuffer | Capacity: %d/%d  |  Pairs: %v",
		p.Capacity(), p.MaxCapacity(), p.pairs)
}

// Add adds a pair to the buffer. Adding a pair which is already stored
// is a no-op.
func (p *PairBuffer) Add(pair tabular.Pair) error {
	if err := tabular.CheckPair("add", pair.State, pair.Action, p.states,
		p.actions); err != nil {
		return err
	}

	idx := pair.State*p.actions + pair.Action
	if p.inUse[idx] {
		return nil
	}
	p.inUse[idx] = true
	p.pairs = append(p.pairs, pair)

	return nil
}

// Contains returns whether pair has been added to the buffer
func (p *PairBuffer) Contains(pair tabular.Pair) bool {
	if tabular.CheckPair("contains", pair.State, pair.Action, p.states,
		p.actions) != nil {
		return false
	}
	return p.inUse[pair.State*p.actions+pair.Action]
}

// Sample samples a batch of pairs from the buffer. If the buffer is
// empty, an error satisfying IsEmptyBuffer is returned.
func (p *PairBuffer) Sample() ([]tabular.Pair, error) {
	if p.Capacity() == 0 {
		return nil, &ExpReplayError{Op: "sample", Err: errEmptyCache}
	}

	indices := p.sampler.choose(p)
	batch := make([]tabular.Pair, len(indices))
	for i, index := range indices {
		batch[i] = p.pairs[index]
	}
	return batch, nil
}

// Capacity returns the current number of pairs in the buffer
func (p *PairBuffer) Capacity() int {
	return len(p.pairs)
}

// MaxCapacity returns the number of distinct pairs the buffer can hold
func (p *PairBuffer) MaxCapacity() int {
	return p.states * p.actions
}

// BatchSize returns the number of pairs returned by Sample()
func (p *PairBuffer) BatchSize() int {
	return p.sampler.BatchSize()
}
