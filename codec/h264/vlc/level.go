package vlc

import (
	"github.com/pkg/errors"

	"github.com/nareix/h264bits/utils/bits"
)

const (
	escapePrefix = 15
	// level_prefix may grow to escapePrefix+maxExtraPrefix in high
	// profiles, keeping every code within 64 bits
	maxExtraPrefix = 16
)

func levelSign(level int) (sign, abs int) {
	if level < 0 {
		return 1, -level
	}
	return 0, level
}

// levelEscape builds the level_prefix >= 15 code for an escaped value
// v >= 2048. Each extra prefix bit doubles the range.
func levelEscape(level, v, sign, profileIDC int) (Code, error) {
	np := 0
	if v >= 4096 {
		np++
		for v >= 4096<<uint(np) {
			np++
			if np > maxExtraPrefix {
				return Code{}, undefined("level %d too large", level)
			}
		}
	}
	if np > 0 && !IsFRExtProfile(profileIDC) {
		return Code{}, errors.Wrapf(ErrLevelPrefix, "level %d profile %d", level, profileIDC)
	}
	mask := uint64(4096) << uint(np)
	return Code{
		Len:  28 + np<<1,
		Bits: mask | (uint64(v)<<1 - mask) | uint64(sign),
	}, nil
}

// LevelVLC1 codes a non zero coefficient level with suffixLength 0.
func LevelVLC1(level, profileIDC int) (Code, error) {
	sign, levabs := levelSign(level)
	switch {
	case levabs == 0:
		return Code{}, undefined("zero coefficient level")
	case levabs < 8:
		return Code{Len: levabs*2 + sign - 1, Bits: 1}, nil
	case levabs < 16:
		// level_prefix 14 with a 4 bit suffix
		return Code{Len: 19, Bits: uint64(16 | (levabs<<1 - 16) | sign)}, nil
	}
	return levelEscape(level, levabs+2032, sign, profileIDC)
}

// LevelVLCN codes a non zero coefficient level with suffixLength vlc, 1..6.
func LevelVLCN(level, vlc, profileIDC int) (Code, error) {
	if vlc < 1 || vlc > 6 {
		return Code{}, undefined("level suffix length %d", vlc)
	}
	sign, levabs := levelSign(level)
	if levabs == 0 {
		return Code{}, undefined("zero coefficient level")
	}
	levabs--
	shift := uint(vlc - 1)
	escape := 15 << shift
	if levabs < escape {
		suffix := levabs & (1<<shift - 1)
		return Code{
			Len:  levabs>>shift + 1 + vlc,
			Bits: uint64(2<<shift | suffix<<1 | sign),
		}, nil
	}
	return levelEscape(level, levabs-escape+2048, sign, profileIDC)
}

// ReadLevel decodes a coefficient level coded with suffixLength 0 (VLC1) or
// 1..6 (VLCN).
func ReadLevel(r *bits.Reader, suffixLength, profileIDC int) (level int, err error) {
	if suffixLength < 0 || suffixLength > 6 {
		return 0, undefined("level suffix length %d", suffixLength)
	}
	var prefix int
	if prefix, err = r.CountLeadingZeros(escapePrefix + maxExtraPrefix); err != nil {
		return
	}
	if prefix > escapePrefix && !IsFRExtProfile(profileIDC) {
		return 0, errors.Wrapf(ErrLevelPrefix, "level_prefix %d profile %d", prefix, profileIDC)
	}

	size := suffixLength
	switch {
	case prefix == 14 && suffixLength == 0:
		size = 4
	case prefix >= escapePrefix:
		size = prefix - 3
	}
	var suffix uint32
	if suffix, err = r.ReadBits(size); err != nil {
		return
	}

	p := prefix
	if p > escapePrefix {
		p = escapePrefix
	}
	code := p<<uint(suffixLength) + int(suffix)
	if prefix >= escapePrefix && suffixLength == 0 {
		code += 15
	}
	if prefix >= escapePrefix+1 {
		code += 1<<uint(prefix-3) - 4096
	}

	level = code>>1 + 1
	if code&1 == 1 {
		level = -level
	}
	return
}
