package schedule

import (
	"fmt"
	"sort"
)

// topoSort orders the network with Kahn's algorithm, breaking ties by
// activity ID so identical snapshots always traverse identically. A cycle
// leaves activities unordered and yields ErrCycle.
func (n *network) topoSort() error {
	inDegree := make([]int, len(n.acts))
	for i := range n.acts {
		inDegree[i] = len(n.preds[i])
	}

	var queue []int
	for i := range n.acts {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	n.sortByID(queue)

	order := make([]int, 0, len(n.acts))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)

		var ready []int
		for _, e := range n.succs[i] {
			inDegree[e.succ]--
			if inDegree[e.succ] == 0 {
				ready = append(ready, e.succ)
			}
		}
		n.sortByID(ready)
		queue = append(queue, ready...)
	}

	if len(order) != len(n.acts) {
		return fmt.Errorf("%w: %d of %d activities ordered", ErrCycle, len(order), len(n.acts))
	}
	n.order = order
	return nil
}

func (n *network) sortByID(idx []int) {
	sort.Slice(idx, func(a, b int) bool {
		return n.acts[idx[a]].ID < n.acts[idx[b]].ID
	})
}
