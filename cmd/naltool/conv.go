package main

import (
	"io"
	"os"

	"github.com/nareix/h264bits/format"
)

func (t *tool) openAs(src string, kind format.Kind) (*format.Reader, error) {
	o := t.cfg.Opener()
	if src == "-" {
		return o.NewReader(kind, os.Stdin, io.NopCloser(nil))
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	return o.NewReader(kind, f, f)
}

func (t *tool) createAs(dst string, kind format.Kind) (*format.Writer, error) {
	o := t.cfg.Opener()
	if dst == "-" {
		return o.NewWriter(kind, t.out, io.NopCloser(nil))
	}
	f, err := os.Create(dst)
	if err != nil {
		return nil, err
	}
	return o.NewWriter(kind, f, f)
}

// conv copies units between containers. The kinds are given explicitly so
// file extensions do not matter.
func (t *tool) conv(src, dst string, from, to format.Kind) (err error) {
	var fr *format.Reader
	if fr, err = t.openAs(src, from); err != nil {
		return
	}
	defer fr.Close()

	var fw *format.Writer
	if fw, err = t.createAs(dst, to); err != nil {
		return
	}
	defer func() {
		if cerr := fw.Close(); err == nil {
			err = cerr
		}
	}()

	n := 0
	size := 0
	for {
		var b []byte
		if b, err = fr.ReadNALU(); err != nil {
			if err == io.EOF {
				err = nil
				break
			}
			return
		}
		if err = fw.WriteNALU(b); err != nil {
			return
		}
		n++
		size += len(b)
	}

	t.log.Infow("converted", "src", src, "dst", dst, "from", from.String(), "to", to.String(), "units", n, "bytes", size)
	return
}
