package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/nareix/h264bits/codec/h264/vlc"
	"github.com/nareix/h264bits/utils/bits"
)

func (t *tool) golombEncode(args []string, signed bool) error {
	for _, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return errors.Wrapf(err, "value %q", a)
		}
		var c vlc.Code
		if signed {
			c, err = vlc.SE(v)
		} else {
			c, err = vlc.UE(v)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(t.out, "%d\t%s\n", v, c)
	}
	return nil
}

// parseBitString packs a string of '0' and '1' characters.
func parseBitString(s string) (*bits.Reader, error) {
	w := bits.NewWriter((len(s) + 7) / 8)
	for i, c := range s {
		switch c {
		case '0', '1':
			if err := w.WriteBit(uint(c - '0')); err != nil {
				return nil, err
			}
		default:
			return nil, errors.Errorf("bit string %q: bad character at %d", s, i)
		}
	}
	n := w.BitLen()
	if _, err := w.AlignOnes(); err != nil {
		return nil, err
	}
	return bits.NewReaderBits(w.Bytes(), n), nil
}

// golombDecode prints every code found in each bit string.
func (t *tool) golombDecode(args []string, signed bool) error {
	for _, a := range args {
		r, err := parseBitString(a)
		if err != nil {
			return err
		}
		for r.Available() > 0 {
			off := r.Offset()
			var v int
			if signed {
				v, err = vlc.ReadSE(r)
			} else {
				v, err = vlc.ReadUE(r)
			}
			if err != nil {
				return errors.Wrapf(err, "bit string %q at bit %d", a, off)
			}
			fmt.Fprintf(t.out, "%s\t%d\n", a[off:r.Offset()], v)
		}
	}
	return nil
}
