package vault

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Archive collects package entries into an in-memory zip container.
type Archive struct {
	buf bytes.Buffer
	zw  *zip.Writer
}

func NewArchive() *Archive {
	a := &Archive{}
	a.zw = zip.NewWriter(&a.buf)
	return a
}

// AddEntry writes one named entry. Entry names use forward slashes and
// no leading slash, as produced by ContentEntry and BinaryEntry.
func (a *Archive) AddEntry(name string, data []byte) error {
	w, err := a.zw.Create(name)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}

// Finalize closes the container and returns its bytes. The archive
// must not be written to afterwards.
func (a *Archive) Finalize() ([]byte, error) {
	if err := a.zw.Close(); err != nil {
		return nil, err
	}
	return a.buf.Bytes(), nil
}
