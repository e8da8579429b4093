package h264

import (
	"github.com/pkg/errors"

	"github.com/nareix/h264bits/av"
	"github.com/nareix/h264bits/utils/bits"
)

// State tracks which form the payload of a NALU is in.
type State int

const (
	StateEmpty State = iota
	StatePopulated
	StateRBSP
	StateEBSP
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StatePopulated:
		return "Populated"
	case StateRBSP:
		return "RBSP"
	case StateEBSP:
		return "EBSP"
	}
	return "Unknown"
}

// MVCExtension is nal_unit_header_mvc_extension. The fields are carried
// through untouched; nothing in this module interprets them.
type MVCExtension struct {
	SVCExtensionFlag bool
	NonIDRFlag       bool
	PriorityID       uint8
	ViewID           uint16
	TemporalID       uint8
	AnchorPicFlag    bool
	InterViewFlag    bool
	ReservedOneBit   uint8

	// remaining 23 bits of an SVC extension, kept verbatim
	SVCBits uint32
}

const mvcHeaderLen = 3

func flag(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func parseMVCExtension(b []byte) (e MVCExtension, err error) {
	r := bits.NewReader(b[:mvcHeaderLen])
	var v uint32
	if v, err = r.ReadBits(1); err != nil {
		return
	}
	e.SVCExtensionFlag = v == 1
	if e.SVCExtensionFlag {
		e.SVCBits, err = r.ReadBits(23)
		return
	}
	// 1+6+10+3+1+1+1 bits
	if v, err = r.ReadBits(23); err != nil {
		return
	}
	e.NonIDRFlag = v>>22&1 == 1
	e.PriorityID = uint8(v >> 16 & 0x3f)
	e.ViewID = uint16(v >> 6 & 0x3ff)
	e.TemporalID = uint8(v >> 3 & 0x7)
	e.AnchorPicFlag = v>>2&1 == 1
	e.InterViewFlag = v>>1&1 == 1
	e.ReservedOneBit = uint8(v & 1)
	return
}

func (e MVCExtension) check() error {
	if e.SVCExtensionFlag {
		if e.SVCBits >= 1<<23 {
			return errors.Errorf("h264: svc extension bits 0x%x exceed 23 bits", e.SVCBits)
		}
		return nil
	}
	switch {
	case e.PriorityID >= 1<<6:
		return errors.Errorf("h264: priority_id %d exceeds 6 bits", e.PriorityID)
	case e.ViewID >= 1<<10:
		return errors.Errorf("h264: view_id %d exceeds 10 bits", e.ViewID)
	case e.TemporalID >= 1<<3:
		return errors.Errorf("h264: temporal_id %d exceeds 3 bits", e.TemporalID)
	case e.ReservedOneBit > 1:
		return errors.Errorf("h264: reserved_one_bit %d", e.ReservedOneBit)
	}
	return nil
}

func (e MVCExtension) marshal(b []byte) (err error) {
	if err = e.check(); err != nil {
		return
	}
	w := bits.NewWriter(mvcHeaderLen)
	if err = w.WriteBits(flag(e.SVCExtensionFlag), 1); err != nil {
		return
	}
	if e.SVCExtensionFlag {
		if err = w.WriteBits(e.SVCBits, 23); err != nil {
			return
		}
	} else {
		fields := []struct {
			v uint32
			n int
		}{
			{flag(e.NonIDRFlag), 1},
			{uint32(e.PriorityID), 6},
			{uint32(e.ViewID), 10},
			{uint32(e.TemporalID), 3},
			{flag(e.AnchorPicFlag), 1},
			{flag(e.InterViewFlag), 1},
			{uint32(e.ReservedOneBit), 1},
		}
		for _, f := range fields {
			if err = w.WriteBits(f.v, f.n); err != nil {
				return
			}
		}
	}
	copy(b, w.Bytes())
	return
}

// NALU holds one NAL unit: the header byte(s) followed by the RBSP or EBSP.
// Buf has a fixed capacity chosen at allocation and never grows past it.
type NALU struct {
	// 4 for parameter sets and the first unit of a picture, 3 otherwise
	StartCodeLen int

	ForbiddenBit bool
	RefIdc       Priority
	Type         NALUType
	MVC          *MVCExtension

	Buf []byte

	// Escapes holds, relative to Buf[1:], the positions of the RBSP bytes
	// that followed each removed emulation prevention byte. Only
	// meaningful in StateRBSP.
	Escapes []int

	// byte offset of the first payload byte in the source stream
	Offset int64

	state State
}

func NewNALU(maxSize int) *NALU {
	return &NALU{
		Buf: make([]byte, 0, maxSize),
	}
}

func (n *NALU) Len() int {
	return len(n.Buf)
}

func (n *NALU) MaxSize() int {
	return cap(n.Buf)
}

func (n *NALU) State() State {
	return n.state
}

// Reset returns the unit to StateEmpty keeping its buffer.
func (n *NALU) Reset() {
	*n = NALU{Buf: n.Buf[:0]}
}

// SetPayload copies b (header byte plus payload) into the unit.
func (n *NALU) SetPayload(b []byte) error {
	if len(b) > cap(n.Buf) {
		return errors.Wrapf(av.ErrCapacityExceeded, "h264: %d byte NAL unit exceeds %d", len(b), cap(n.Buf))
	}
	n.Buf = append(n.Buf[:0], b...)
	n.Escapes = n.Escapes[:0]
	n.state = StatePopulated
	return nil
}

// Append adds b to the payload; used while the unit is being assembled.
func (n *NALU) Append(b ...byte) error {
	if len(n.Buf)+len(b) > cap(n.Buf) {
		return errors.Wrapf(av.ErrCapacityExceeded, "h264: %d byte NAL unit exceeds %d", len(n.Buf)+len(b), cap(n.Buf))
	}
	n.Buf = append(n.Buf, b...)
	n.state = StatePopulated
	return nil
}

func (n *NALU) HeaderLen() int {
	if n.Type.HasMVCHeader() {
		return 1 + mvcHeaderLen
	}
	return 1
}

// ParseHeader decodes forbidden_zero_bit, nal_ref_idc, nal_unit_type and,
// for prefix and slice extension units, the MVC header extension.
func (n *NALU) ParseHeader() (err error) {
	if len(n.Buf) == 0 {
		return av.Malformed(0, "h264: empty NAL unit")
	}
	h := n.Buf[0]
	n.ForbiddenBit = h&0x80 != 0
	n.RefIdc = Priority(h >> 5 & 0x3)
	n.Type = NALUType(h & 0x1f)
	n.MVC = nil
	if n.ForbiddenBit {
		return av.Malformed(0, "h264: forbidden_zero_bit set in header 0x%02x", h)
	}
	if n.Type.HasMVCHeader() {
		if len(n.Buf) < 1+mvcHeaderLen {
			return av.Malformed(len(n.Buf), "h264: %v unit too short for MVC header", n.Type)
		}
		var e MVCExtension
		if e, err = parseMVCExtension(n.Buf[1:]); err != nil {
			return
		}
		n.MVC = &e
	}
	return
}

// MarshalHeader writes the header fields into the front of Buf, growing it
// to the header length if needed.
func (n *NALU) MarshalHeader() error {
	hl := n.HeaderLen()
	if len(n.Buf) < hl {
		if hl > cap(n.Buf) {
			return errors.Wrapf(av.ErrCapacityExceeded, "h264: header of %d bytes exceeds %d", hl, cap(n.Buf))
		}
		n.Buf = n.Buf[:hl]
	}
	h := byte(n.RefIdc&0x3)<<5 | byte(n.Type&0x1f)
	if n.ForbiddenBit {
		h |= 0x80
	}
	n.Buf[0] = h
	if hl > 1 {
		e := MVCExtension{ReservedOneBit: 1}
		if n.MVC != nil {
			e = *n.MVC
		}
		if err := e.marshal(n.Buf[1:hl]); err != nil {
			return err
		}
	}
	if n.state == StateEmpty {
		n.state = StatePopulated
	}
	return nil
}

// Payload returns the bytes after the header.
func (n *NALU) Payload() []byte {
	hl := n.HeaderLen()
	if len(n.Buf) < hl {
		return nil
	}
	return n.Buf[hl:]
}

// Unescape converts the payload from EBSP to RBSP in place.
func (n *NALU) Unescape() (err error) {
	if n.state == StateRBSP {
		return nil
	}
	var l int
	var escapes []int
	if l, escapes, err = EBSPToRBSP(n.Buf, 1); err != nil {
		return err
	}
	if l-1 > MaxRBSPSize {
		return errors.Wrapf(av.ErrCapacityExceeded, "h264: RBSP of %d bytes exceeds %d", l-1, MaxRBSPSize)
	}
	n.Buf = n.Buf[:l]
	n.Escapes = escapes
	n.state = StateRBSP
	return nil
}

// Escape converts the payload from RBSP to EBSP in place. The bytes to
// insert are derived from the content alone.
func (n *NALU) Escape() error {
	if n.state == StateEBSP {
		return nil
	}
	if len(n.Buf) == 0 {
		return av.Malformed(0, "h264: empty NAL unit")
	}
	l := 1 + EBSPLen(n.Buf[1:])
	if l > cap(n.Buf) {
		return errors.Wrapf(av.ErrCapacityExceeded, "h264: escaped NAL unit of %d bytes exceeds %d", l, cap(n.Buf))
	}
	ebsp := RBSPToEBSP(make([]byte, 0, l-1), n.Buf[1:])
	n.Buf = append(n.Buf[:1], ebsp...)
	n.Escapes = n.Escapes[:0]
	n.state = StateEBSP
	return nil
}

// SODBLen returns the RBSP length up to and including the stop bit byte.
func (n *NALU) SODBLen() (int, error) {
	if len(n.Buf) <= 1 {
		return 0, av.Malformed(0, "h264: NAL unit without RBSP")
	}
	l, err := RBSPToSODB(n.Buf[1:])
	if err != nil {
		return 0, err
	}
	return l + 1, nil
}
