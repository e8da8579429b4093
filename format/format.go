package format

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/nareix/h264bits/av"
	"github.com/nareix/h264bits/codec/h264"
	"github.com/nareix/h264bits/codec/h264/annexb"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindAnnexB
	KindAVCC
)

func (k Kind) String() string {
	switch k {
	case KindAnnexB:
		return "annexb"
	case KindAVCC:
		return "avcc"
	}
	return "unknown"
}

// KindOf picks the container from the file extension of a path or URL.
func KindOf(name string) Kind {
	switch strings.ToLower(path.Ext(name)) {
	case ".264", ".h264", ".annexb", ".jsv", ".26l":
		return KindAnnexB
	case ".avcc":
		return KindAVCC
	}
	return KindUnknown
}

type dummyCloser struct{}

func (c dummyCloser) Close() error {
	return nil
}

type Reader struct {
	av.NALUReader
	io.Closer
	Kind   Kind
	AnnexB *annexb.Reader
	AVCC   *h264.AVCCReader
}

type Writer struct {
	av.NALUWriter
	io.Closer
	Kind   Kind
	AnnexB *annexb.Writer
	AVCC   *h264.AVCCWriter
}

// Opener carries the settings shared by every reader and writer it creates.
// "-" names stdin or stdout and is read or written as Annex-B.
type Opener struct {
	MaxNALUSize int
	BufferSize  int
	LengthSize  int

	OnNewAnnexBReader func(r *annexb.Reader)
	OnNewAVCCReader   func(r *h264.AVCCReader)
}

func NewOpener() *Opener {
	return &Opener{
		MaxNALUSize: h264.MaxNALUSize,
		BufferSize:  annexb.DefaultBufferSize,
		LengthSize:  4,
	}
}

func Open(url_ string) (*Reader, error) {
	return NewOpener().Open(url_)
}

func Create(url_ string) (*Writer, error) {
	return NewOpener().Create(url_)
}

func errUnsupported(op, url_ string) error {
	return errors.Errorf("%s `%s` failed: unsupported format", op, url_)
}

func (o *Opener) NewReader(kind Kind, r io.Reader, c io.Closer) (fr *Reader, err error) {
	fr = &Reader{Closer: c, Kind: kind}
	switch kind {
	case KindAnnexB:
		size := o.BufferSize
		if size <= 0 {
			size = annexb.DefaultBufferSize
		}
		ar := annexb.NewReaderSize(r, size)
		if o.MaxNALUSize > 0 {
			ar.MaxSize = o.MaxNALUSize
		}
		if o.OnNewAnnexBReader != nil {
			o.OnNewAnnexBReader(ar)
		}
		fr.NALUReader = ar
		fr.AnnexB = ar
	case KindAVCC:
		vr := h264.NewAVCCReader(r, o.LengthSize)
		if o.MaxNALUSize > 0 {
			vr.MaxSize = o.MaxNALUSize
		}
		if o.OnNewAVCCReader != nil {
			o.OnNewAVCCReader(vr)
		}
		fr.NALUReader = vr
		fr.AVCC = vr
	default:
		return nil, errors.Errorf("unsupported format %v", kind)
	}
	return
}

func (o *Opener) NewWriter(kind Kind, w io.Writer, c io.Closer) (fw *Writer, err error) {
	fw = &Writer{Closer: c, Kind: kind}
	switch kind {
	case KindAnnexB:
		aw := annexb.NewWriter(w)
		fw.NALUWriter = aw
		fw.AnnexB = aw
	case KindAVCC:
		vw := h264.NewAVCCWriter(w, o.LengthSize)
		fw.NALUWriter = vw
		fw.AVCC = vw
	default:
		return nil, errors.Errorf("unsupported format %v", kind)
	}
	return
}

func (o *Opener) Open(url_ string) (r *Reader, err error) {
	if url_ == "-" {
		return o.NewReader(KindAnnexB, os.Stdin, dummyCloser{})
	}

	var u *url.URL
	if u, err = url.Parse(url_); err != nil {
		return
	}

	kind := KindOf(u.Path)
	if kind == KindUnknown {
		err = errUnsupported("open", url_)
		return
	}

	switch u.Scheme {
	case "http", "https":
		var hr *http.Response
		if hr, err = http.Get(url_); err != nil {
			return
		}
		if hr.StatusCode != http.StatusOK {
			hr.Body.Close()
			err = errors.Errorf("open `%s` failed: %s", url_, hr.Status)
			return
		}
		return o.NewReader(kind, hr.Body, hr.Body)

	case "", "file":
		var f *os.File
		if f, err = os.Open(u.Path); err != nil {
			return
		}
		return o.NewReader(kind, f, f)

	default:
		err = errUnsupported("open", url_)
		return
	}
}

func (o *Opener) Create(url_ string) (w *Writer, err error) {
	if url_ == "-" {
		return o.NewWriter(KindAnnexB, os.Stdout, dummyCloser{})
	}

	var u *url.URL
	if u, err = url.Parse(url_); err != nil {
		return
	}
	if u.Scheme != "" && u.Scheme != "file" {
		err = errUnsupported("create", url_)
		return
	}

	kind := KindOf(u.Path)
	if kind == KindUnknown {
		err = errUnsupported("create", url_)
		return
	}

	var f *os.File
	if f, err = os.Create(u.Path); err != nil {
		return
	}
	return o.NewWriter(kind, f, f)
}
