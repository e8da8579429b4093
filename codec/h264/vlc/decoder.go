package vlc

import (
	"github.com/nareix/h264bits/utils/bits"
)

// Decoder reads syntax elements back from an RBSP. Mode, Context and Intra
// of the element select the code; Value1 and Value2 receive the result.
type Decoder struct {
	ChromaFormat ChromaFormat
	ProfileIDC   int
	Tracer       Tracer
}

func (d *Decoder) Read(r *bits.Reader, se *SyntaxElement) (err error) {
	off := r.Offset()
	v2 := 0
	var v1 int
	switch se.Mode {
	case ModeNone:
	case ModeUE:
		v1, err = ReadUE(r)
	case ModeSE:
		v1, err = ReadSE(r)
	case ModeFixed, ModeVLC:
		if se.Value2 < 0 || se.Value2 > 32 {
			return undefined("%v length %d", se.Mode, se.Value2)
		}
		var v uint32
		v, err = r.ReadBits(se.Value2)
		v1, v2 = int(v), se.Value2
	case ModeFlag, ModeInvFlag:
		var b uint
		b, err = r.ReadBit()
		v1 = int(b)
		if se.Mode == ModeInvFlag {
			v1 = 1 - v1
		}
	case ModeCBP:
		v1, err = ReadCBP(r, se.Intra, d.ChromaFormat)
	case ModeIntraPredMode:
		v1, err = ReadIntraPredMode(r)
	case ModeCoeffToken:
		v1, v2, err = ReadCoeffToken(r, se.Context)
	case ModeCoeffTokenChromaDC:
		v1, v2, err = ReadCoeffTokenChromaDC(r, d.ChromaFormat)
	case ModeTotalZeros:
		v1, err = ReadTotalZeros(r, se.Context)
	case ModeTotalZerosChromaDC:
		v1, err = ReadTotalZerosChromaDC(r, d.ChromaFormat, se.Context)
	case ModeRunBefore:
		v1, err = ReadRunBefore(r, se.Context)
	case ModeLevelVLC1:
		v1, err = ReadLevel(r, 0, d.ProfileIDC)
	case ModeLevelVLCN:
		if se.Context < 1 {
			return undefined("level suffix length %d", se.Context)
		}
		v1, err = ReadLevel(r, se.Context, d.ProfileIDC)
	default:
		return undefined("coding mode %v", se.Mode)
	}
	if err != nil {
		return
	}
	se.Value1, se.Value2 = v1, v2

	// the consumed bits are the code
	se.Len = r.Offset() - off
	se.Bits = 0
	if se.Len > 0 {
		if se.Bits, err = r.BitsAt(off, se.Len); err != nil {
			return
		}
	}
	if d.Tracer != nil {
		d.Tracer.Trace(off, se)
	}
	return
}
