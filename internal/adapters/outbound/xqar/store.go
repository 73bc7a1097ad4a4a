package xqar

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/abdidvp/qcresult/internal/domain"
)

// Extension is the file extension of result documents.
const Extension = ".xqar"

// Store implements domain.ResultStore on .xqar files.
type Store struct{}

// New creates a file-based result store.
func New() *Store {
	return &Store{}
}

// Load reads and parses the result document at path.
func (s *Store) Load(path string, opts domain.ParseOptions) (*domain.ResultContainer, *domain.ParseReport, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	rc, report, err := domain.ParseResults(doc, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rc, report, nil
}

// Save writes rc to path, creating parent directories as needed. Issues
// without an id are numbered first.
func (s *Store) Save(path string, rc *domain.ResultContainer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	doc := etree.NewDocument()
	if _, err := rc.WriteXML(doc); err != nil {
		return fmt.Errorf("numbering %s: %w", path, err)
	}
	doc.Indent(2)

	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
