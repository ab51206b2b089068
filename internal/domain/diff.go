package domain

type SegmentKind int

const (
	SegmentKept SegmentKind = iota
	SegmentRemoved
	SegmentAdded
)

// Segment is a run of characters sharing one kind in a name diff.
type Segment struct {
	Text string
	Kind SegmentKind
}

// Diff returns the character-level diff of an entry's old and new names.
func (e PlanEntry) Diff() (old, new []Segment) {
	return DiffNames(e.OldName, e.NewName)
}

// DiffNames computes a longest-common-subsequence diff between two names.
// The first slice holds kept and removed runs of oldName, the second holds
// kept and added runs of newName.
func DiffNames(oldName, newName string) (old, new []Segment) {
	if oldName == newName {
		if oldName == "" {
			return nil, nil
		}
		return []Segment{{Text: oldName, Kind: SegmentKept}}, []Segment{{Text: newName, Kind: SegmentKept}}
	}

	a, b := []rune(oldName), []rune(newName)
	suffix := suffixLCS(a, b)

	// Walking forward over a suffix table yields runs in reading order.
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			old = push(old, a[i], SegmentKept)
			new = push(new, b[j], SegmentKept)
			i++
			j++
		case i < len(a) && (j == len(b) || suffix[i+1][j] >= suffix[i][j+1]):
			old = push(old, a[i], SegmentRemoved)
			i++
		default:
			new = push(new, b[j], SegmentAdded)
			j++
		}
	}
	return old, new
}

func push(segs []Segment, r rune, kind SegmentKind) []Segment {
	if n := len(segs); n > 0 && segs[n-1].Kind == kind {
		segs[n-1].Text += string(r)
		return segs
	}
	return append(segs, Segment{Text: string(r), Kind: kind})
}

// suffixLCS returns t where t[i][j] is the LCS length of a[i:] and b[j:].
func suffixLCS(a, b []rune) [][]int {
	t := make([][]int, len(a)+1)
	for i := range t {
		t[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				t[i][j] = t[i+1][j+1] + 1
			} else {
				t[i][j] = max(t[i+1][j], t[i][j+1])
			}
		}
	}
	return t
}
