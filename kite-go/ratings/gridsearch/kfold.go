package gridsearch

// Span is a half open row range used as a held-out fold.
type Span struct {
	Start int
	End   int
}

// kfold partitions n rows into k contiguous spans in row order. The first
// n mod k spans take one extra row, so sizes differ by at most one and the
// spans cover every row exactly once.
func kfold(n, k int) []Span {
	base := n / k
	extra := n % k
	spans := make([]Span, k)
	var start int
	for i := range spans {
		size := base
		if i < extra {
			size++
		}
		spans[i] = Span{Start: start, End: start + size}
		start += size
	}
	return spans
}
