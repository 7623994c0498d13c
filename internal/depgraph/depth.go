package depgraph

// DepthTable maps a type's full name to the length of the longest
// module-local dependency chain rooted at it. Leaves have depth 1.
type DepthTable map[string]int

const (
	stateUnvisited uint8 = iota
	stateInProgress
	stateDone
)

type depthFrame struct {
	id   TypeID
	next int // следующий индекс в Deps[id]
	best int // максимум по уже обойдённым зависимостям
}

// Depths computes the depth of every graph node. The traversal runs on an
// explicit stack with per-node visit state, so recursion depth is bounded
// and cycles are detected exactly once: a back-edge to an in-progress node
// contributes a depth of 1 instead of recursing. Each node is finished at
// most once.
func (g *Graph) Depths() DepthTable {
	n := len(g.Deps)
	depth := make([]int, n)
	state := make([]uint8, n)

	for root := 0; root < n; root++ {
		if state[root] != stateUnvisited {
			continue
		}
		state[root] = stateInProgress
		stack := []depthFrame{{id: TypeID(root)}}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			deps := g.Deps[f.id]

			if f.next < len(deps) {
				dep := deps[f.next]
				f.next++
				switch state[dep] {
				case stateDone:
					if depth[dep] > f.best {
						f.best = depth[dep]
					}
				case stateInProgress:
					// Цикл: это ребро даёт глубину ровно 1.
					if f.best < 1 {
						f.best = 1
					}
				default:
					state[dep] = stateInProgress
					stack = append(stack, depthFrame{id: dep})
				}
				continue
			}

			finished := *f
			depth[finished.id] = 1 + finished.best
			state[finished.id] = stateDone
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := &stack[len(stack)-1]
				if depth[finished.id] > parent.best {
					parent.best = depth[finished.id]
				}
			}
		}
	}

	table := make(DepthTable, n)
	for id, name := range g.Index.IDToName {
		table[name] = depth[id]
	}
	return table
}
