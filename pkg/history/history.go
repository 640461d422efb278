package history

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// History records which commit ids have been applied. Commit ids start at
// 1. Ids 1 through Base are all applied; Tail holds applied ids above
// Base+1 in ascending order, left behind when commits arrive out of order.
type History struct {
	Base uint32   `json:"base"`
	Tail []uint32 `json:"tail,omitempty"`
}

// BodyCount returns the number of commits applied without a gap.
func (h *History) BodyCount() uint32 { return h.Base }

// Applied returns the total number of applied commits.
func (h *History) Applied() uint32 { return h.Base + uint32(len(h.Tail)) }

// TailTip returns the highest applied id above the body, or 0.
func (h *History) TailTip() uint32 {
	if len(h.Tail) == 0 {
		return 0
	}
	return h.Tail[len(h.Tail)-1]
}

// Has reports whether commit id has been applied.
func (h *History) Has(id uint32) bool {
	if id == 0 {
		return false
	}
	if id <= h.Base {
		return true
	}
	_, ok := slices.BinarySearch(h.Tail, id)
	return ok
}

// SetBodyCount marks commits 1 through n as applied. Tail ids absorbed by
// the body are dropped, and a tail that continues the body extends it.
func (h *History) SetBodyCount(n uint32) error {
	if n <= h.Base {
		return fmt.Errorf("history: body count %d does not grow %d", n, h.Base)
	}
	i := 0
	for ; i < len(h.Tail) && h.Tail[i] <= n+1; i++ {
		if h.Tail[i] == n+1 {
			n++
		}
	}
	h.Tail = h.Tail[i:]
	h.Base = n
	return nil
}

// AddTail records commit id as applied. The next id after the body grows
// the body; anything else must be above every recorded id.
func (h *History) AddTail(id uint32) error {
	if len(h.Tail) == 0 {
		switch {
		case id == h.Base+1:
			h.Base++
			return nil
		case id <= h.Base:
			return fmt.Errorf("history: commit %d already in body of %d", id, h.Base)
		}
	} else if id <= h.TailTip() {
		return fmt.Errorf("history: commit %d not above tail tip %d", id, h.TailTip())
	}
	h.Tail = append(h.Tail, id)
	return nil
}

// Save writes h as JSON.
func (h *History) Save(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(h); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return nil
}

// Load replaces h with the JSON read from r.
func (h *History) Load(r io.Reader) error {
	var v History
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return fmt.Errorf("decode history: %w", err)
	}
	if !slices.IsSorted(v.Tail) {
		return fmt.Errorf("history: tail not sorted")
	}
	if len(v.Tail) > 0 && v.Tail[0] <= v.Base+1 {
		return fmt.Errorf("history: tail %d overlaps body %d", v.Tail[0], v.Base)
	}
	*h = v
	return nil
}
