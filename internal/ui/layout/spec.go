package layout

type specKind int

const (
	specFixed specKind = iota
	specFill
)

// Spec describes how much of the parent a child box takes along the split axis.
type Spec struct {
	kind  specKind
	value float64
}

// Fixed takes exactly n cells, or whatever is left if the parent is smaller.
func Fixed(n int) Spec {
	return Spec{kind: specFixed, value: float64(n)}
}

// Fill shares the leftover space with the other Fill specs, by weight.
func Fill(weight int) Spec {
	return Spec{kind: specFill, value: float64(weight)}
}

// distribute assigns sizes to specs so that they never exceed total.
// Fixed specs are served first in order; fills split the rest,
// with the last fill absorbing rounding.
func distribute(total int, specs []Spec) []int {
	if total < 0 {
		total = 0
	}
	sizes := make([]int, len(specs))
	remaining := total
	fillWeight := 0.0
	lastFill := -1

	for i, s := range specs {
		switch s.kind {
		case specFixed:
			sizes[i] = min(int(s.value), remaining)
		case specFill:
			fillWeight += s.value
			lastFill = i
			continue
		}
		if sizes[i] < 0 {
			sizes[i] = 0
		}
		remaining -= sizes[i]
	}

	if lastFill < 0 || fillWeight <= 0 {
		return sizes
	}

	pool := remaining
	for i, s := range specs {
		if s.kind != specFill {
			continue
		}
		if i == lastFill {
			sizes[i] = remaining
			break
		}
		size := int(float64(pool) * s.value / fillWeight)
		sizes[i] = size
		remaining -= size
	}
	return sizes
}
