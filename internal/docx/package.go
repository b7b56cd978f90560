package docx

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"os"
)

// Package is an OPC archive held in memory. Part order is preserved on save.
type Package struct {
	names []string
	parts map[string][]byte
}

// OpenPackage reads every part of a zip archive.
func OpenPackage(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	p := &Package{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read part %s: %w", f.Name, err)
		}
		p.SetPart(f.Name, content)
	}
	return p, nil
}

// OpenPackageFile reads a package from disk.
func OpenPackageFile(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return OpenPackage(data)
}

// Part returns the content of a part.
func (p *Package) Part(name string) ([]byte, bool) {
	data, ok := p.parts[name]
	return data, ok
}

// SetPart adds or overwrites a part.
func (p *Package) SetPart(name string, data []byte) {
	if p.parts == nil {
		p.parts = map[string][]byte{}
	}
	if _, ok := p.parts[name]; !ok {
		p.names = append(p.names, name)
	}
	p.parts[name] = data
}

// Names lists the parts in archive order.
func (p *Package) Names() []string {
	return append([]string(nil), p.names...)
}

// Bytes writes the package as a deflated zip archive.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, 6)
	})
	for _, name := range p.names {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("failed to add part %s: %w", name, err)
		}
		if _, err := w.Write(p.parts[name]); err != nil {
			return nil, fmt.Errorf("failed to write part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	return buf.Bytes(), nil
}
