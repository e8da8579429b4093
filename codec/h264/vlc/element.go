package vlc

import (
	"fmt"
)

// Mode selects how a SyntaxElement is coded.
type Mode int

const (
	// ModeNone writes nothing, for elements a slice does not carry.
	ModeNone Mode = iota
	ModeUE
	ModeSE
	// ModeFixed writes Value1 in Value2 bits, u(n).
	ModeFixed
	ModeFlag
	// ModeInvFlag writes the inverted low bit of Value1, as ref_idx does
	// with two reference pictures.
	ModeInvFlag
	// ModeVLC writes the Value2 low bits of the pattern Value1.
	ModeVLC
	// ModeCBP maps coded_block_pattern through the Intra or inter column.
	ModeCBP
	ModeIntraPredMode
	// ModeCoeffToken codes (Value1 TotalCoeff, Value2 TrailingOnes) with
	// the nC table Context.
	ModeCoeffToken
	ModeCoeffTokenChromaDC
	// ModeTotalZeros codes Value1 with the table Context, TotalCoeff-1.
	ModeTotalZeros
	ModeTotalZerosChromaDC
	// ModeRunBefore codes Value1 with the table Context, min(zerosLeft,7)-1.
	ModeRunBefore
	ModeLevelVLC1
	// ModeLevelVLCN codes Value1 with suffixLength Context.
	ModeLevelVLCN
)

var modeString = map[Mode]string{
	ModeNone:               "none",
	ModeUE:                 "ue",
	ModeSE:                 "se",
	ModeFixed:              "u",
	ModeFlag:               "flag",
	ModeInvFlag:            "invflag",
	ModeVLC:                "vlc",
	ModeCBP:                "cbp",
	ModeIntraPredMode:      "intrapred",
	ModeCoeffToken:         "coeff_token",
	ModeCoeffTokenChromaDC: "coeff_token_dc",
	ModeTotalZeros:         "total_zeros",
	ModeTotalZerosChromaDC: "total_zeros_dc",
	ModeRunBefore:          "run_before",
	ModeLevelVLC1:          "level_vlc1",
	ModeLevelVLCN:          "level_vlcn",
}

func (m Mode) String() string {
	if s, ok := modeString[m]; ok {
		return s
	}
	return fmt.Sprint(int(m))
}

// SyntaxElement is one value in flight. Value1, Value2, Context and Intra
// are inputs to the encoder and outputs of the decoder; Len and Bits hold
// the code.
type SyntaxElement struct {
	Mode    Mode
	Value1  int
	Value2  int
	Context int
	Intra   bool

	// Header elements do not mark the partition as holding data.
	Header bool

	Len  int
	Bits uint64

	Label string
}

func (se *SyntaxElement) Code() Code {
	return Code{Len: se.Len, Bits: se.Bits}
}
