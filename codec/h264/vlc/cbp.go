package vlc

import (
	"github.com/nareix/h264bits/av"
	"github.com/nareix/h264bits/utils/bits"
)

// cbpGroup selects the ncbp half: monochrome and 4:4:4 carry no chroma
// bits in coded_block_pattern.
func cbpGroup(cf ChromaFormat) int {
	if cf == Chroma400 || cf == Chroma444 {
		return 0
	}
	return 1
}

func cbpRange(group int) int {
	if group == 0 {
		return 16
	}
	return 48
}

func cbpColumn(intra bool) int {
	if intra {
		return 0
	}
	return 1
}

// CBP maps coded_block_pattern through the intra or inter column and codes
// the result as ue(v).
func CBP(cbp int, intra bool, cf ChromaFormat) (Code, error) {
	g := cbpGroup(cf)
	if cbp < 0 || cbp >= cbpRange(g) {
		return Code{}, undefined("coded_block_pattern %d out of range for %v", cbp, cf)
	}
	return UE(int(ncbp[g][cbp][cbpColumn(intra)]))
}

func ReadCBP(r *bits.Reader, intra bool, cf ChromaFormat) (cbp int, err error) {
	var k int
	if k, err = ReadUE(r); err != nil {
		return
	}
	g := cbpGroup(cf)
	if k >= cbpRange(g) {
		return 0, av.Malformed(r.Offset()>>3, "vlc: coded_block_pattern code number %d", k)
	}
	return int(cbpOf[g][cbpColumn(intra)][k]), nil
}
