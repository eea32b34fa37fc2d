package fitscore

// Source is one named provider of a signal value. Get reports false when the
// provider has nothing.
type Source[T any] struct {
	Name string
	Get  func() (T, bool)
}

// FirstOf evaluates sources in order and returns the first value present
// along with the name of the source that supplied it. When none does, it
// returns the zero value, "" and false.
func FirstOf[T any](sources ...Source[T]) (T, string, bool) {
	for _, s := range sources {
		if s.Get == nil {
			continue
		}
		if v, ok := s.Get(); ok {
			return v, s.Name, true
		}
	}
	var zero T
	return zero, "", false
}

// ptrSource adapts an optional pointer into a Source.
func ptrSource[T any](name string, p func() *T) Source[T] {
	return Source[T]{Name: name, Get: func() (T, bool) {
		if v := p(); v != nil {
			return *v, true
		}
		var zero T
		return zero, false
	}}
}
