package vlc

import (
	"github.com/nareix/h264bits/codec/h264"
	"github.com/nareix/h264bits/utils/bits"
)

// Partition is the bit buffer of one slice data partition.
type Partition struct {
	Stream *bits.Writer

	// set once a non header element has been written
	Dirty bool
}

func NewPartition(capacity int) *Partition {
	return &Partition{Stream: bits.NewWriter(capacity)}
}

func (dp *Partition) Reset() {
	dp.Stream.Reset()
	dp.Dirty = false
}

// Close appends rbsp_trailing_bits and builds a NAL unit of the given type
// from the partition, ready for Escape.
func (dp *Partition) Close(typ h264.NALUType, refIdc h264.Priority) (n *h264.NALU, err error) {
	if err = dp.Stream.TrailingBits(); err != nil {
		return
	}
	n = h264.NewNALU(h264.MaxNALUSize)
	n.Type = typ
	n.RefIdc = refIdc
	if err = n.MarshalHeader(); err != nil {
		return
	}
	if err = n.Append(dp.Stream.Bytes()...); err != nil {
		return
	}
	return
}
