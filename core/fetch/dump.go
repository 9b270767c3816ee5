package fetch

import (
	"compress/bzip2"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/gaurav-prasanna/wikicorpus/core"
)

// ErrShortDump is returned when a dump holds fewer usable pages than requested.
var ErrShortDump = errors.New("dump has too few articles")

// dumpPage is the subset of a MediaWiki export <page> element we need.
type dumpPage struct {
	Title    string `xml:"title"`
	ID       int64  `xml:"id"`
	Ns       int    `xml:"ns"`
	Redirect *struct {
		Title string `xml:"title,attr"`
	} `xml:"redirect"`
	Revision struct {
		Text string `xml:"text"`
	} `xml:"revision"`
}

// DumpSource reads articles from a MediaWiki XML export on disk.
// Files ending in .bz2 are decompressed on the fly.
type DumpSource struct {
	Path string
	fs   afero.Fs
}

// NewDumpSource creates a DumpSource for path on fs. A nil fs means the OS
// filesystem.
func NewDumpSource(fs afero.Fs, path string) *DumpSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &DumpSource{Path: path, fs: fs}
}

// FetchRandom returns the first count main-namespace, non-redirect pages of
// the dump. The locale is ignored; a dump belongs to one wiki.
func (d *DumpSource) FetchRandom(ctx context.Context, _ string, count int) ([]core.Article, error) {
	f, err := d.fs.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(d.Path, ".bz2") {
		r = bzip2.NewReader(f)
	}
	return ReadDump(ctx, r, count)
}

// ReadDump decodes pages from an XML export stream.
func ReadDump(ctx context.Context, r io.Reader, count int) ([]core.Article, error) {
	dec := xml.NewDecoder(r)
	articles := make([]core.Article, 0, count)

	for len(articles) < count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dump: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "page" {
			continue
		}
		var p dumpPage
		if err := dec.DecodeElement(&p, &start); err != nil {
			return nil, fmt.Errorf("decoding page: %w", err)
		}
		if p.Ns != 0 || p.Redirect != nil {
			continue
		}
		articles = append(articles, core.Article{
			ID:    p.ID,
			Title: p.Title,
			Text:  p.Revision.Text,
		})
	}

	if len(articles) < count {
		return nil, fmt.Errorf("%w: wanted %d, found %d", ErrShortDump, count, len(articles))
	}
	return articles, nil
}
