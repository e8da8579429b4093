package h264

import (
	"fmt"
)

type NALUType byte

const (
	NALU_SLICE    NALUType = 1
	NALU_DPA      NALUType = 2
	NALU_DPB      NALUType = 3
	NALU_DPC      NALUType = 4
	NALU_IDR      NALUType = 5
	NALU_SEI      NALUType = 6
	NALU_SPS      NALUType = 7
	NALU_PPS      NALUType = 8
	NALU_AUD      NALUType = 9
	NALU_EOSEQ    NALUType = 10
	NALU_EOSTREAM NALUType = 11
	NALU_FILL     NALUType = 12

	// multiview extension
	NALU_PREFIX  NALUType = 14
	NALU_SUB_SPS NALUType = 15
	NALU_SLC_EXT NALUType = 20
	NALU_VDRD    NALUType = 24
)

var naluTypeString = map[NALUType]string{
	NALU_SLICE:    "SLICE",
	NALU_DPA:      "DPA",
	NALU_DPB:      "DPB",
	NALU_DPC:      "DPC",
	NALU_IDR:      "IDR",
	NALU_SEI:      "SEI",
	NALU_SPS:      "SPS",
	NALU_PPS:      "PPS",
	NALU_AUD:      "AUD",
	NALU_EOSEQ:    "EOSEQ",
	NALU_EOSTREAM: "EOSTREAM",
	NALU_FILL:     "FILL",
	NALU_PREFIX:   "PREFIX",
	NALU_SUB_SPS:  "SUB_SPS",
	NALU_SLC_EXT:  "SLC_EXT",
	NALU_VDRD:     "VDRD",
}

func (t NALUType) String() string {
	if s, ok := naluTypeString[t]; ok {
		return s
	}
	return fmt.Sprint(byte(t))
}

// HasMVCHeader reports whether units of this type carry the 3 byte
// nal_unit_header_mvc_extension after the first header byte.
func (t NALUType) HasMVCHeader() bool {
	return t == NALU_PREFIX || t == NALU_SLC_EXT
}

// IsParameterSet reports the types the muxer frames with a 4 byte start code.
func (t NALUType) IsParameterSet() bool {
	return t == NALU_SPS || t == NALU_PPS || t == NALU_SUB_SPS
}

// Priority is nal_ref_idc.
type Priority byte

const (
	PRIORITY_DISPOSABLE Priority = 0
	PRIORITY_LOW        Priority = 1
	PRIORITY_HIGH       Priority = 2
	PRIORITY_HIGHEST    Priority = 3
)

func (p Priority) String() string {
	switch p {
	case PRIORITY_DISPOSABLE:
		return "DISPOSABLE"
	case PRIORITY_LOW:
		return "LOW"
	case PRIORITY_HIGH:
		return "HIGH"
	case PRIORITY_HIGHEST:
		return "HIGHEST"
	}
	return fmt.Sprint(byte(p))
}

func TypeOf(b []byte) NALUType {
	if len(b) > 0 {
		return NALUType(b[0] & 0x1f)
	}
	return 0
}

func IsDataNALU(b []byte) bool {
	typ := TypeOf(b)
	return typ >= NALU_SLICE && typ <= NALU_IDR
}

const (
	MaxNALUSize = 64000
	MaxRBSPSize = 64000
)

var StartCodeBytes = []byte{0, 0, 1}
var LongStartCodeBytes = []byte{0, 0, 0, 1}
