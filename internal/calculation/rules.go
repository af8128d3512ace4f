package calculation

// rule pairs a predicate over calculation facts with the record it emits.
// Rules are evaluated in order and every matching rule contributes.
type rule[F any, R any] struct {
	name  string
	when  func(F) bool
	build func(F) R
}

func evaluate[F any, R any](rules []rule[F, R], facts F) []R {
	out := make([]R, 0, len(rules))
	for _, r := range rules {
		if r.when(facts) {
			out = append(out, r.build(facts))
		}
	}
	return out
}
