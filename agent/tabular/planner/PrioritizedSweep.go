package planner

import (
	"math"

	"github.com/samuelfneumann/mbrl/agent/tabular"
	"github.com/samuelfneumann/mbrl/agent/tabular/model"
	"github.com/samuelfneumann/mbrl/agent/tabular/qtable"
	"github.com/samuelfneumann/mbrl/timestep"
)

// DefaultPriorityCutoff is the default minimum priority a state action
// pair must exceed to be queued for planning
const DefaultPriorityCutoff = 0.01

// PrioritizedSweep implements prioritized sweeping. Pairs are queued
// with priority |target - Q(s, a)| when that priority exceeds a cutoff.
// Each planning update pops the pair of highest priority, updates it
// from a simulated transition, then queues every predecessor of the
// updated state whose priority exceeds the cutoff.
//
// Queue entries are never re-prioritized. An entry pushed before the
// most recent simulated update of its pair is stale and is discarded
// when popped without consuming a planning update.
type PrioritizedSweep struct {
	model  *model.Model
	q      *qtable.QTable
	preds  *model.Predecessors
	queue  *priorityQueue
	params Params
	cutoff float64

	// updatedAt[s*actions+a] is the sequence number after which queue
	// entries for (s, a) are considered current
	updatedAt []uint64
}

// NewPrioritizedSweep returns a new PrioritizedSweep planner which
// samples transitions from m and updates q
func NewPrioritizedSweep(m *model.Model, q *qtable.QTable, params Params,
	cutoff float64) (*PrioritizedSweep, error) {
	if cutoff < 0 || math.IsNaN(cutoff) {
		return nil, tabular.InvalidArgument("newPrioritizedSweep",
			"priority cutoff must be >= 0, have %v", cutoff)
	}

	preds, err := model.NewPredecessors(m.NumStates(), m.NumActions())
	if err != nil {
		return nil, err
	}

	return &PrioritizedSweep{
		model:     m,
		q:         q,
		preds:     preds,
		queue:     newPriorityQueue(),
		params:    params,
		cutoff:    cutoff,
		updatedAt: make([]uint64, m.NumStates()*m.NumActions()),
	}, nil
}

// Observe records t in the predecessor index and queues (t.State,
// t.Action) if |target - previous| exceeds the cutoff
func (p *PrioritizedSweep) Observe(t timestep.Transition, target,
	previous float64) error {
	if err := p.preds.Add(t.State, t.Action, t.NextState); err != nil {
		return err
	}

	p.enqueue(tabular.Pair{State: t.State, Action: t.Action},
		math.Abs(target-previous))
	return nil
}

// Plan performs up to updates planning updates, stopping early if the
// queue empties
func (p *PrioritizedSweep) Plan(updates int) (int, error) {
	if err := checkBudget("plan", updates); err != nil {
		return 0, err
	}

	performed := 0
	for i := 0; i < updates; i++ {
		pair, ok := p.next()
		if !ok {
			break
		}

		updated, err := simulatedUpdate(p.model, p.q, pair, p.params)
		if err != nil {
			return performed, err
		}
		if !updated {
			continue
		}
		performed++
		p.updatedAt[p.index(pair)] = p.queue.lastSeq() + 1

		if err := p.sweep(pair.State); err != nil {
			return performed, err
		}
	}

	return performed, nil
}

// Len returns the number of entries in the queue, stale entries
// included
func (p *PrioritizedSweep) Len() int {
	return p.queue.len()
}

// Cutoff returns the priority cutoff
func (p *PrioritizedSweep) Cutoff() float64 {
	return p.cutoff
}

// sweep queues each predecessor (s̄, ā) of state with priority
// |r̄ + γ max_a Q(state, a) - Q(s̄, ā)|, where r̄ is the mean reward the
// model has recorded for s̄, ā, state
func (p *PrioritizedSweep) sweep(state int) error {
	preds, err := p.preds.Of(state)
	if err != nil {
		return err
	}

	maxQ, err := p.q.Max(state)
	if err != nil {
		return err
	}

	for _, pred := range preds {
		reward, err := p.model.PredictedReward(pred.State, pred.Action, state)
		if model.IsNoData(err) {
			continue
		} else if err != nil {
			return err
		}

		value, err := p.q.At(pred.State, pred.Action)
		if err != nil {
			return err
		}

		p.enqueue(pred, math.Abs(reward+p.params.Gamma*maxQ-value))
	}

	return nil
}

// next pops the highest priority entry which is not stale
func (p *PrioritizedSweep) next() (tabular.Pair, bool) {
	for {
		e, ok := p.queue.pop()
		if !ok {
			return tabular.Pair{}, false
		}
		if e.seq >= p.updatedAt[p.index(e.pair)] {
			return e.pair, true
		}
	}
}

func (p *PrioritizedSweep) enqueue(pair tabular.Pair, priority float64) {
	if priority > p.cutoff {
		p.queue.push(pair, priority)
	}
}

func (p *PrioritizedSweep) index(pair tabular.Pair) int {
	return pair.State*p.model.NumActions() + pair.Action
}
