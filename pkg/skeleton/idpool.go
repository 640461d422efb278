package skeleton

import "github.com/Aishwarya3011/gapr-sub000/pkg/model"

// idPool allocates edge ids. Freed ids become available again only after
// the commit that freed them, so a staged batch never reuses an id it
// deleted. Ids handed out since the last commit are tracked so a discarded
// batch returns them.
type idPool struct {
	next   model.EdgeID
	avail  []model.EdgeID
	free   []model.EdgeID
	mark   model.EdgeID
	popped []model.EdgeID
}

func (p *idPool) alloc() model.EdgeID {
	if n := len(p.avail); n > 0 {
		id := p.avail[n-1]
		p.avail = p.avail[:n-1]
		p.popped = append(p.popped, id)
		return id
	}
	p.next++
	return p.next
}

func (p *idPool) release(id model.EdgeID) {
	p.free = append(p.free, id)
}

// commit makes ids freed by the batch available.
func (p *idPool) commit() {
	p.avail = append(p.avail, p.free...)
	p.free = p.free[:0]
	p.popped = p.popped[:0]
	p.mark = p.next
}

// rollback undoes every alloc and release since the last commit.
func (p *idPool) rollback() {
	for i := len(p.popped) - 1; i >= 0; i-- {
		p.avail = append(p.avail, p.popped[i])
	}
	p.popped = p.popped[:0]
	p.free = p.free[:0]
	p.next = p.mark
}
