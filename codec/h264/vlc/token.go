package vlc

import (
	"github.com/nareix/h264bits/av"
	"github.com/nareix/h264bits/utils/bits"
)

// CoeffTokenFLC is the nC table index that selects the 6 bit fixed length
// coeff_token (nC >= 8).
const CoeffTokenFLC = 3

// CoeffToken codes (TotalCoeff, TrailingOnes) with the table chosen by
// vlcnum 0..3.
func CoeffToken(vlcnum, numCoeff, trailingOnes int) (Code, error) {
	if vlcnum < 0 || vlcnum > CoeffTokenFLC || numCoeff < 0 || numCoeff > 16 ||
		trailingOnes < 0 || trailingOnes > 3 {
		return Code{}, undefined("coeff_token out of range: vlc=%d (%d, %d)", vlcnum, numCoeff, trailingOnes)
	}
	if vlcnum == CoeffTokenFLC {
		if trailingOnes > numCoeff {
			return Code{}, undefined("coeff_token not valid: vlc=%d (%d, %d)", vlcnum, numCoeff, trailingOnes)
		}
		if numCoeff == 0 {
			return Code{Len: 6, Bits: 3}, nil
		}
		return Code{Len: 6, Bits: uint64((numCoeff-1)<<2 | trailingOnes)}, nil
	}
	return tableCode(coeffTokenLen[vlcnum][trailingOnes][numCoeff], coeffTokenCode[vlcnum][trailingOnes][numCoeff],
		"coeff_token not valid: vlc=%d (%d, %d)", vlcnum, numCoeff, trailingOnes)
}

func chromaDCIndex(cf ChromaFormat) (int, error) {
	if cf < Chroma420 || cf > Chroma444 {
		return 0, undefined("no chroma DC tables for chroma format %v", cf)
	}
	return int(cf) - 1, nil
}

func CoeffTokenChromaDC(cf ChromaFormat, numCoeff, trailingOnes int) (Code, error) {
	yuv, err := chromaDCIndex(cf)
	if err != nil {
		return Code{}, err
	}
	if numCoeff < 0 || numCoeff > 16 || trailingOnes < 0 || trailingOnes > 3 {
		return Code{}, undefined("chroma DC coeff_token out of range: (%d, %d)", numCoeff, trailingOnes)
	}
	return tableCode(coeffTokenChromaDCLen[yuv][trailingOnes][numCoeff], coeffTokenChromaDCCode[yuv][trailingOnes][numCoeff],
		"chroma DC coeff_token not valid: (%d, %d)", numCoeff, trailingOnes)
}

// TotalZeros codes total_zeros; tzVlc is TotalCoeff-1.
func TotalZeros(tzVlc, totalZeros int) (Code, error) {
	if tzVlc < 0 || tzVlc >= len(totalZerosLen) || totalZeros < 0 || totalZeros >= 16 {
		return Code{}, undefined("total_zeros out of range: vlc=%d (%d)", tzVlc, totalZeros)
	}
	return tableCode(totalZerosLen[tzVlc][totalZeros], totalZerosCode[tzVlc][totalZeros],
		"total_zeros not valid: vlc=%d (%d)", tzVlc, totalZeros)
}

func TotalZerosChromaDC(cf ChromaFormat, tzVlc, totalZeros int) (Code, error) {
	yuv, err := chromaDCIndex(cf)
	if err != nil {
		return Code{}, err
	}
	if tzVlc < 0 || tzVlc >= 15 || totalZeros < 0 || totalZeros >= 16 {
		return Code{}, undefined("chroma DC total_zeros out of range: vlc=%d (%d)", tzVlc, totalZeros)
	}
	return tableCode(totalZerosChromaDCLen[yuv][tzVlc][totalZeros], totalZerosChromaDCCode[yuv][tzVlc][totalZeros],
		"chroma DC total_zeros not valid: vlc=%d (%d)", tzVlc, totalZeros)
}

// RunBefore codes run_before; vlcnum is min(zerosLeft, 7)-1.
func RunBefore(vlcnum, run int) (Code, error) {
	if vlcnum < 0 || vlcnum >= len(runBeforeLen) || run < 0 || run >= 16 {
		return Code{}, undefined("run_before out of range: vlc=%d (%d)", vlcnum, run)
	}
	return tableCode(runBeforeLen[vlcnum][run], runBeforeCode[vlcnum][run],
		"run_before not valid: vlc=%d (%d)", vlcnum, run)
}

// IntraPredMode codes prev_intra4x4_pred_mode_flag and
// rem_intra4x4_pred_mode together: -1 is the predicted mode.
func IntraPredMode(mode int) (Code, error) {
	if mode == -1 {
		return Code{Len: 1, Bits: 1}, nil
	}
	if mode < 0 || mode > 7 {
		return Code{}, undefined("intra prediction mode out of range: %d", mode)
	}
	return Code{Len: 4, Bits: uint64(mode)}, nil
}

func ReadIntraPredMode(r *bits.Reader) (mode int, err error) {
	var flag bool
	if flag, err = r.ReadFlag(); err != nil {
		return
	}
	if flag {
		return -1, nil
	}
	var v uint32
	v, err = r.ReadBits(3)
	return int(v), err
}

// matchCode consumes the code among lens/codes that prefixes the next bits
// and returns its index. The tables are prefix free so the shortest match
// is the only one.
func matchCode(r *bits.Reader, lens, codes []uint8) (int, error) {
	for l := 1; l <= 16 && l <= r.Available(); l++ {
		v, err := r.Peek(l)
		if err != nil {
			return 0, err
		}
		for i := range lens {
			if int(lens[i]) == l && uint32(codes[i]) == v {
				return i, r.Skip(l)
			}
		}
	}
	return 0, av.Malformed(r.Offset()>>3, "vlc: no code matches at bit %d", r.Offset())
}

func flatten(lens, codes *[4][17]uint8) (l, c []uint8) {
	for t1s := range lens {
		l = append(l, lens[t1s][:]...)
		c = append(c, codes[t1s][:]...)
	}
	return
}

type flatTable struct {
	lens, codes []uint8
}

var coeffTokenFlat, coeffTokenChromaDCFlat = func() (a [3]flatTable, b [3]flatTable) {
	for i := range a {
		a[i].lens, a[i].codes = flatten(&coeffTokenLen[i], &coeffTokenCode[i])
		b[i].lens, b[i].codes = flatten(&coeffTokenChromaDCLen[i], &coeffTokenChromaDCCode[i])
	}
	return
}()

func ReadCoeffToken(r *bits.Reader, vlcnum int) (numCoeff, trailingOnes int, err error) {
	if vlcnum < 0 || vlcnum > CoeffTokenFLC {
		return 0, 0, undefined("coeff_token table %d", vlcnum)
	}
	if vlcnum == CoeffTokenFLC {
		var v uint32
		if v, err = r.ReadBits(6); err != nil {
			return
		}
		if v == 3 {
			return 0, 0, nil
		}
		numCoeff, trailingOnes = int(v>>2)+1, int(v&3)
		if trailingOnes > numCoeff {
			err = av.Malformed(r.Offset()>>3, "vlc: coeff_token 0x%02x", v)
		}
		return
	}
	var i int
	if i, err = matchCode(r, coeffTokenFlat[vlcnum].lens, coeffTokenFlat[vlcnum].codes); err != nil {
		return
	}
	return i % 17, i / 17, nil
}

func ReadCoeffTokenChromaDC(r *bits.Reader, cf ChromaFormat) (numCoeff, trailingOnes int, err error) {
	var yuv, i int
	if yuv, err = chromaDCIndex(cf); err != nil {
		return
	}
	if i, err = matchCode(r, coeffTokenChromaDCFlat[yuv].lens, coeffTokenChromaDCFlat[yuv].codes); err != nil {
		return
	}
	return i % 17, i / 17, nil
}

func ReadTotalZeros(r *bits.Reader, tzVlc int) (int, error) {
	if tzVlc < 0 || tzVlc >= len(totalZerosLen) {
		return 0, undefined("total_zeros table %d", tzVlc)
	}
	return matchCode(r, totalZerosLen[tzVlc][:], totalZerosCode[tzVlc][:])
}

func ReadTotalZerosChromaDC(r *bits.Reader, cf ChromaFormat, tzVlc int) (int, error) {
	yuv, err := chromaDCIndex(cf)
	if err != nil {
		return 0, err
	}
	if tzVlc < 0 || tzVlc >= 15 {
		return 0, undefined("chroma DC total_zeros table %d", tzVlc)
	}
	return matchCode(r, totalZerosChromaDCLen[yuv][tzVlc][:], totalZerosChromaDCCode[yuv][tzVlc][:])
}

func ReadRunBefore(r *bits.Reader, vlcnum int) (int, error) {
	if vlcnum < 0 || vlcnum >= len(runBeforeLen) {
		return 0, undefined("run_before table %d", vlcnum)
	}
	return matchCode(r, runBeforeLen[vlcnum][:], runBeforeCode[vlcnum][:])
}
