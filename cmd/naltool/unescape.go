package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/nareix/h264bits/codec/h264"
)

func decodeHex(s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", ":", "", "0x", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "hex payload")
	}
	return b, nil
}

// unescape treats the whole argument as EBSP, without a NAL header.
func (t *tool) unescape(s string) error {
	b, err := decodeHex(s)
	if err != nil {
		return err
	}
	n, escapes, err := h264.EBSPToRBSP(b, 0)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "%s\n", hex.EncodeToString(b[:n]))
	fmt.Fprintf(t.out, "escapes %v\n", escapes)
	return nil
}

func (t *tool) escape(s string) error {
	b, err := decodeHex(s)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "%s\n", hex.EncodeToString(h264.RBSPToEBSP(nil, b)))
	return nil
}
