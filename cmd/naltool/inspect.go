package main

import (
	"io"

	"github.com/nareix/joy4/codec/h264parser"
	"github.com/pkg/errors"

	"github.com/nareix/h264bits/codec/h264"
	"github.com/nareix/h264bits/codec/h264/vlc"
	"github.com/nareix/h264bits/format"
	"github.com/nareix/h264bits/utils/bits"
)

var spsElements = []vlc.SyntaxElement{
	{Mode: vlc.ModeFixed, Value2: 8, Label: "SPS: profile_idc"},
	{Mode: vlc.ModeFixed, Value2: 8, Label: "SPS: constrained_set_flags"},
	{Mode: vlc.ModeFixed, Value2: 8, Label: "SPS: level_idc"},
	{Mode: vlc.ModeUE, Label: "SPS: seq_parameter_set_id"},
}

var ppsElements = []vlc.SyntaxElement{
	{Mode: vlc.ModeUE, Label: "PPS: pic_parameter_set_id"},
	{Mode: vlc.ModeUE, Label: "PPS: seq_parameter_set_id"},
	{Mode: vlc.ModeFlag, Label: "PPS: entropy_coding_mode_flag"},
}

var sliceElements = []vlc.SyntaxElement{
	{Mode: vlc.ModeUE, Label: "SH: first_mb_in_slice"},
	{Mode: vlc.ModeUE, Label: "SH: slice_type"},
	{Mode: vlc.ModeUE, Label: "SH: pic_parameter_set_id"},
}

// readElements decodes a fixed prefix of a header. The values are only
// reported through the decoder's tracer.
func readElements(d *vlc.Decoder, n *h264.NALU, elems []vlc.SyntaxElement) error {
	r := bits.NewReader(n.Payload())
	for _, e := range elems {
		se := e
		if err := d.Read(r, &se); err != nil {
			return errors.Wrap(err, e.Label)
		}
	}
	return nil
}

// nextUnit fills n from fr. Annex B input keeps the start code length and
// stream offset; AVCC input only has the unit itself.
func nextUnit(fr *format.Reader, n *h264.NALU) error {
	if fr.AnnexB != nil {
		return fr.AnnexB.Next(n)
	}
	b, err := fr.ReadNALU()
	if err != nil {
		return err
	}
	n.Reset()
	if err = n.SetPayload(b); err != nil {
		return err
	}
	return n.ParseHeader()
}

func (t *tool) inspect(src string) (err error) {
	var fr *format.Reader
	if fr, err = t.cfg.Opener().Open(src); err != nil {
		return
	}
	defer fr.Close()

	d := &vlc.Decoder{}
	if t.cfg.Trace {
		d.Tracer = vlc.TextTracer{W: t.out}
	}

	n := h264.NewNALU(t.cfg.MaxNALUSize)
	count := 0
	for {
		if err = nextUnit(fr, n); err != nil {
			if err == io.EOF {
				err = nil
				break
			}
			return errors.Wrapf(err, "unit %d", count)
		}
		size := n.Len()
		if err = n.Unescape(); err != nil {
			return errors.Wrapf(err, "unit %d", count)
		}
		t.log.Infow("nalu",
			"offset", n.Offset,
			"type", n.Type.String(),
			"ref_idc", n.RefIdc.String(),
			"len", size,
			"escapes", len(n.Escapes),
			"start_code", n.StartCodeLen,
		)
		t.inspectUnit(d, n)
		count++
	}

	t.log.Infow("done", "src", src, "units", count)
	return
}

// inspectUnit reports header details. A unit that does not parse is logged
// and skipped; it does not stop the listing.
func (t *tool) inspectUnit(d *vlc.Decoder, n *h264.NALU) {
	var elems []vlc.SyntaxElement

	switch n.Type {
	case h264.NALU_SPS:
		info, err := h264parser.ParseSPS(n.Buf)
		if err != nil {
			t.log.Warnw("sps", "offset", n.Offset, "error", err)
			return
		}
		d.ProfileIDC = int(info.ProfileIdc)
		t.log.Infow("sps",
			"profile", info.ProfileIdc,
			"level", info.LevelIdc,
			"width", info.Width,
			"height", info.Height,
		)
		elems = spsElements

	case h264.NALU_PPS:
		elems = ppsElements

	case h264.NALU_SLICE, h264.NALU_IDR:
		typ, err := h264parser.ParseSliceHeaderFromNALU(n.Buf)
		if err != nil {
			t.log.Warnw("slice", "offset", n.Offset, "error", err)
			return
		}
		t.log.Infow("slice", "slice_type", typ.String())
		elems = sliceElements
	}

	if d.Tracer == nil || elems == nil {
		return
	}
	if err := readElements(d, n, elems); err != nil {
		t.log.Warnw("trace", "offset", n.Offset, "type", n.Type.String(), "error", err)
	}
}
