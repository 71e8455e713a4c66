package latex

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"

	"github.com/rgould/proofdesk/internal/domain/document"
)

// Bundle renders the document and packages the fragments into a single
// zip archive named "<id>_bundle.zip". Entries are written in sorted name
// order with zeroed timestamps, so identical input yields identical bytes.
func Bundle(p *document.Project, opts Options) (string, []byte, error) {
	fragments, err := Render(p, opts)
	if err != nil {
		return "", nil, err
	}

	names := make([]string, 0, len(fragments))
	for name := range fragments {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		header := &zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		}
		f, err := w.CreateHeader(header)
		if err != nil {
			return "", nil, fmt.Errorf("adding %s to archive: %w", name, err)
		}
		if _, err := f.Write([]byte(fragments[name])); err != nil {
			return "", nil, fmt.Errorf("writing %s to archive: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("finalizing archive: %w", err)
	}

	return fmt.Sprintf("%s_bundle.zip", p.ID), buf.Bytes(), nil
}
