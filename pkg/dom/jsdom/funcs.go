package jsdom

// releaser is the part of js.Func the registry needs.
type releaser interface {
	Release()
}

// funcRegistry tracks the callbacks bound to each tagged element.
type funcRegistry struct {
	next    int
	byTag   map[int][]releaser
	retired []releaser
}

func newFuncRegistry() *funcRegistry {
	return &funcRegistry{byTag: make(map[int][]releaser)}
}

// newTag returns a fresh element tag.
func (r *funcRegistry) newTag() int {
	r.next++
	return r.next
}

// track records f as bound to the element with the given tag.
func (r *funcRegistry) track(tag int, f releaser) {
	r.byTag[tag] = append(r.byTag[tag], f)
}

// retire moves the callbacks of tag to the release queue. It reports whether
// anything was queued.
func (r *funcRegistry) retire(tag int) bool {
	fs, ok := r.byTag[tag]
	if !ok {
		return false
	}
	delete(r.byTag, tag)
	r.retired = append(r.retired, fs...)
	return len(fs) > 0
}

// sweep releases every retired callback and returns how many it released.
func (r *funcRegistry) sweep() int {
	n := len(r.retired)
	for i, f := range r.retired {
		f.Release()
		r.retired[i] = nil
	}
	r.retired = r.retired[:0]
	return n
}

// live returns the number of callbacks not yet retired.
func (r *funcRegistry) live() int {
	n := 0
	for _, fs := range r.byTag {
		n += len(fs)
	}
	return n
}
