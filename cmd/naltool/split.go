package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/nareix/h264bits/codec/h264"
	"github.com/nareix/h264bits/format"
)

func unitFileName(i int, typ h264.NALUType) string {
	return fmt.Sprintf("%05d_%s.nal", i, typ)
}

// split writes each unit, header included and still escaped, to dir.
func (t *tool) split(src, dir string) (err error) {
	var fr *format.Reader
	if fr, err = t.cfg.Opener().Open(src); err != nil {
		return
	}
	defer fr.Close()

	if err = os.MkdirAll(dir, 0755); err != nil {
		return
	}

	i := 0
	for {
		var b []byte
		if b, err = fr.ReadNALU(); err != nil {
			if err == io.EOF {
				err = nil
				break
			}
			return errors.Wrapf(err, "unit %d", i)
		}
		name := filepath.Join(dir, unitFileName(i, h264.TypeOf(b)))
		if err = os.WriteFile(name, b, 0644); err != nil {
			return
		}
		t.log.Debugw("unit written", "file", name, "len", len(b))
		i++
	}

	t.log.Infow("split", "src", src, "dir", dir, "units", i)
	return
}
