package vlc

// Encoder codes syntax elements into partitions. The zero value codes
// 4:0:0 baseline streams without tracing.
type Encoder struct {
	ChromaFormat ChromaFormat
	ProfileIDC   int
	Tracer       Tracer
}

// Code computes se.Len and se.Bits without writing anything.
func (e *Encoder) Code(se *SyntaxElement) (err error) {
	var c Code
	switch se.Mode {
	case ModeNone:
	case ModeUE:
		c, err = UE(se.Value1)
	case ModeSE:
		c, err = SE(se.Value1)
	case ModeFixed, ModeVLC:
		if se.Value2 < 0 || se.Value2 > 32 {
			return undefined("%v length %d", se.Mode, se.Value2)
		}
		c = Code{Len: se.Value2, Bits: uint64(uint32(se.Value1)) & (1<<uint(se.Value2) - 1)}
	case ModeFlag:
		c = Code{Len: 1, Bits: uint64(se.Value1 & 1)}
	case ModeInvFlag:
		c = Code{Len: 1, Bits: uint64(1 - se.Value1&1)}
	case ModeCBP:
		c, err = CBP(se.Value1, se.Intra, e.ChromaFormat)
	case ModeIntraPredMode:
		c, err = IntraPredMode(se.Value1)
	case ModeCoeffToken:
		c, err = CoeffToken(se.Context, se.Value1, se.Value2)
	case ModeCoeffTokenChromaDC:
		c, err = CoeffTokenChromaDC(e.ChromaFormat, se.Value1, se.Value2)
	case ModeTotalZeros:
		c, err = TotalZeros(se.Context, se.Value1)
	case ModeTotalZerosChromaDC:
		c, err = TotalZerosChromaDC(e.ChromaFormat, se.Context, se.Value1)
	case ModeRunBefore:
		c, err = RunBefore(se.Context, se.Value1)
	case ModeLevelVLC1:
		c, err = LevelVLC1(se.Value1, e.ProfileIDC)
	case ModeLevelVLCN:
		c, err = LevelVLCN(se.Value1, se.Context, e.ProfileIDC)
	default:
		return undefined("coding mode %v", se.Mode)
	}
	if err != nil {
		return
	}
	se.Len, se.Bits = c.Len, c.Bits
	return
}

// Write codes se into dp and returns the number of bits written. Nothing is
// written when coding fails.
func (e *Encoder) Write(dp *Partition, se *SyntaxElement) (n int, err error) {
	if err = e.Code(se); err != nil {
		return
	}
	off := dp.Stream.BitLen()
	if err = dp.Stream.WriteBits64(se.Bits, se.Len); err != nil {
		return
	}
	if !se.Header && se.Mode != ModeNone {
		dp.Dirty = true
	}
	if e.Tracer != nil {
		e.Tracer.Trace(off, se)
	}
	return se.Len, nil
}

func (e *Encoder) write(dp *Partition, mode Mode, label string, v1, v2 int) (int, error) {
	se := SyntaxElement{Mode: mode, Value1: v1, Value2: v2, Header: true, Label: label}
	return e.Write(dp, &se)
}

// WriteUE writes a header ue(v) element.
func (e *Encoder) WriteUE(dp *Partition, label string, v int) (int, error) {
	return e.write(dp, ModeUE, label, v, 0)
}

func (e *Encoder) WriteSE(dp *Partition, label string, v int) (int, error) {
	return e.write(dp, ModeSE, label, v, 0)
}

func (e *Encoder) WriteFlag(dp *Partition, label string, v bool) (int, error) {
	b := 0
	if v {
		b = 1
	}
	return e.write(dp, ModeFlag, label, b, 0)
}

// WriteBits writes v as u(n).
func (e *Encoder) WriteBits(dp *Partition, label string, n int, v int) (int, error) {
	return e.write(dp, ModeFixed, label, v, n)
}
