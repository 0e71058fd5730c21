package dag

// DependencyOrder lists the present modules so that every module comes
// after the modules it requires, which is the order a concatenated bundle
// needs. Ties are broken by module path. A require that closes a cycle is
// ignored for ordering and the cycle is returned, starting at the module
// reached first.
func DependencyOrder(g Graph) (order []ModuleID, cycles [][]ModuleID) {
	const (
		unvisited = iota
		active
		done
	)
	state := make([]uint8, len(g.Edges))
	var stack []ModuleID

	var visit func(id ModuleID)
	visit = func(id ModuleID) {
		state[id] = active
		stack = append(stack, id)
		for _, to := range g.Edges[int(id)] {
			if !g.Present[int(to)] {
				continue
			}
			switch state[to] {
			case unvisited:
				visit(to)
			case active:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == to {
						cycles = append(cycles, append([]ModuleID(nil), stack[i:]...))
						break
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
		order = append(order, id)
	}

	for i := range g.Edges {
		if g.Present[i] && state[i] == unvisited {
			visit(ModuleID(i))
		}
	}
	return order, cycles
}
