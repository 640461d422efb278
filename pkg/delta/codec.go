package delta

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// Magic starts every commit file.
const Magic = "SKC1"

var (
	// ErrBadMagic is returned by [Decode] when the input is not a commit file.
	ErrBadMagic = errors.New("delta: bad magic")

	// ErrTruncated is returned by [Decode] when the input ends inside a field.
	ErrTruncated = errors.New("delta: truncated commit")

	// ErrUnknownKind is returned by [Decode] and [Encode] for a kind tag that
	// names no payload type.
	ErrUnknownKind = errors.New("delta: unknown kind")
)

// Encode writes the commit header followed by d. info.Kind is taken from d.
func Encode(w io.Writer, info CommitInfo, d Delta) error {
	if d == nil || !d.Kind().Valid() {
		return ErrUnknownKind
	}
	info.Kind = d.Kind()
	var e encoder
	e.buf = append(e.buf, Magic...)
	e.uint(uint64(info.ID))
	e.str(info.Who)
	e.uint(info.When)
	e.uint(uint64(info.Nid0))
	e.uint(uint64(info.Kind))
	e.payload(d)
	_, err := w.Write(e.buf)
	return err
}

// Marshal is [Encode] into a byte slice.
func Marshal(info CommitInfo, d Delta) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, info, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one commit. Legacy reset_proofread_0 payloads are returned
// upgraded, with info.Kind updated to match.
func Decode(r io.Reader) (CommitInfo, Delta, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return CommitInfo{}, nil, fmt.Errorf("read commit: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal is [Decode] from a byte slice.
func Unmarshal(data []byte) (CommitInfo, Delta, error) {
	var info CommitInfo
	if !bytes.HasPrefix(data, []byte(Magic)) {
		return info, nil, ErrBadMagic
	}
	dec := decoder{buf: data[len(Magic):]}
	info.ID = uint32(dec.uint())
	info.Who = dec.str()
	info.When = dec.uint()
	info.Nid0 = model.NodeID(dec.uint())
	info.Kind = Kind(dec.uint())
	if dec.err != nil {
		return info, nil, dec.err
	}
	d := New(info.Kind)
	if d == nil {
		return info, nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint16(info.Kind))
	}
	dec.payload(d)
	if dec.err != nil {
		return info, nil, dec.err
	}
	if len(dec.buf) != 0 {
		return info, nil, fmt.Errorf("delta: %d trailing bytes", len(dec.buf))
	}
	d = Upgrade(d)
	info.Kind = d.Kind()
	return info, d, nil
}

type encoder struct {
	buf []byte
}

func (e *encoder) uint(v uint64) { e.buf = binary.AppendUvarint(e.buf, v) }
func (e *encoder) int(v int64)   { e.buf = binary.AppendVarint(e.buf, v) }

func (e *encoder) str(s string) {
	e.uint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

func (e *encoder) link(l model.Link) {
	e.uint(uint64(l[0]))
	e.uint(uint64(l[1]))
}

func (e *encoder) attr(a model.Attr) {
	for _, p := range a.Pos {
		e.int(int64(p))
	}
	e.uint(uint64(a.Misc))
}

// attrs stores coordinates as differences from the previous sample.
func (e *encoder) attrs(as []model.Attr) {
	e.uint(uint64(len(as)))
	var prev [3]int32
	for _, a := range as {
		for i, p := range a.Pos {
			e.int(int64(p) - int64(prev[i]))
		}
		e.uint(uint64(a.Misc))
		prev = a.Pos
	}
}

func (e *encoder) nodes(ns []model.NodeID) {
	e.uint(uint64(len(ns)))
	for _, n := range ns {
		e.uint(uint64(n))
	}
}

func (e *encoder) props(ps []NodeProp) {
	e.uint(uint64(len(ps)))
	for _, p := range ps {
		e.uint(uint64(p.Node))
		e.str(p.Prop)
	}
}

func (e *encoder) payload(d Delta) {
	switch d := d.(type) {
	case *AddEdge:
		e.link(d.Left)
		e.link(d.Right)
		e.attrs(d.Nodes)
	case *AddProp:
		e.link(d.Link)
		e.attr(d.Node)
		e.str(d.Prop)
	case *ChgProp:
		e.uint(uint64(d.Node))
		e.str(d.Prop)
	case *AddPatch:
		e.uint(uint64(len(d.Links)))
		for _, l := range d.Links {
			e.uint(uint64(l.Index))
			e.link(l.Link)
		}
		e.props(d.Props)
		attrs := make([]model.Attr, len(d.Nodes))
		for i, n := range d.Nodes {
			attrs[i] = n.Attr
		}
		e.attrs(attrs)
		for _, n := range d.Nodes {
			e.uint(uint64(n.Parent))
		}
	case *DelPatch:
		e.props(d.Props)
		e.nodes(d.Nodes)
	case *Proofread:
		e.nodes(d.Nodes)
	case *ResetProofread0:
		e.nodes(d.Nodes)
		e.props(d.Props)
	case *ResetProofread:
		e.uint(uint64(len(d.Nodes)))
		for _, w := range d.Nodes {
			e.uint(uint64(w))
		}
		e.props(d.Props)
	}
}

type decoder struct {
	buf []byte
	err error
}

func (d *decoder) uint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.buf)
	if n <= 0 {
		d.err = ErrTruncated
		return 0
	}
	d.buf = d.buf[n:]
	return v
}

func (d *decoder) int() int64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Varint(d.buf)
	if n <= 0 {
		d.err = ErrTruncated
		return 0
	}
	d.buf = d.buf[n:]
	return v
}

// count reads a length prefix, bounding it by the remaining input so a
// corrupt prefix cannot force a huge allocation.
func (d *decoder) count() int {
	n := d.uint()
	if d.err == nil && n > uint64(len(d.buf)) {
		d.err = ErrTruncated
	}
	if d.err != nil {
		return 0
	}
	return int(n)
}

func (d *decoder) str() string {
	n := d.count()
	if d.err != nil {
		return ""
	}
	s := string(d.buf[:n])
	d.buf = d.buf[n:]
	return s
}

func (d *decoder) link() model.Link {
	return model.Link{model.NodeID(d.uint()), model.NodeID(d.uint())}
}

func (d *decoder) attr() model.Attr {
	var a model.Attr
	for i := range a.Pos {
		a.Pos[i] = int32(d.int())
	}
	a.Misc = model.Misc(d.uint())
	return a
}

func (d *decoder) attrs() []model.Attr {
	n := d.count()
	if n == 0 {
		return nil
	}
	out := make([]model.Attr, n)
	var prev [3]int32
	for k := range out {
		for i := range prev {
			prev[i] += int32(d.int())
		}
		out[k] = model.Attr{Pos: prev, Misc: model.Misc(d.uint())}
	}
	return out
}

func (d *decoder) nodes() []model.NodeID {
	n := d.count()
	if n == 0 {
		return nil
	}
	out := make([]model.NodeID, n)
	for i := range out {
		out[i] = model.NodeID(d.uint())
	}
	return out
}

func (d *decoder) props() []NodeProp {
	n := d.count()
	if n == 0 {
		return nil
	}
	out := make([]NodeProp, n)
	for i := range out {
		out[i].Node = model.NodeID(d.uint())
		out[i].Prop = d.str()
	}
	return out
}

func (d *decoder) payload(v Delta) {
	switch v := v.(type) {
	case *AddEdge:
		v.Left = d.link()
		v.Right = d.link()
		v.Nodes = d.attrs()
	case *AddProp:
		v.Link = d.link()
		v.Node = d.attr()
		v.Prop = d.str()
	case *ChgProp:
		v.Node = model.NodeID(d.uint())
		v.Prop = d.str()
	case *AddPatch:
		if n := d.count(); n > 0 {
			v.Links = make([]PatchLink, n)
			for i := range v.Links {
				v.Links[i].Index = uint32(d.uint())
				v.Links[i].Link = d.link()
			}
		}
		v.Props = d.props()
		attrs := d.attrs()
		if len(attrs) > 0 {
			v.Nodes = make([]PatchNode, len(attrs))
			for i, a := range attrs {
				v.Nodes[i] = PatchNode{Attr: a, Parent: uint32(d.uint())}
			}
		}
	case *DelPatch:
		v.Props = d.props()
		v.Nodes = d.nodes()
	case *Proofread:
		v.Nodes = d.nodes()
	case *ResetProofread0:
		v.Nodes = d.nodes()
		v.Props = d.props()
	case *ResetProofread:
		if n := d.count(); n > 0 {
			v.Nodes = make([]uint32, n)
			for i := range v.Nodes {
				v.Nodes[i] = uint32(d.uint())
			}
		}
		v.Props = d.props()
	}
}
