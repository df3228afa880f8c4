package scheduler

// Slice is one continuous interval a process held the CPU.
type Slice struct {
	Name  string `json:"name"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`
}

// Len is the CPU time covered by the slice.
func (s Slice) Len() int64 {
	return s.End - s.Start
}

// trace collects dispatch intervals, merging contiguous steps of the same process.
type trace struct {
	slices []Slice
}

func (t *trace) record(name string, start, end int64) {
	if end <= start {
		return
	}
	if n := len(t.slices); n > 0 {
		last := &t.slices[n-1]
		if last.Name == name && last.End == start {
			last.End = end
			return
		}
	}
	t.slices = append(t.slices, Slice{Name: name, Start: start, End: end})
}
