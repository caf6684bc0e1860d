package vissim

import (
	"io"
	"log/slog"
	"os"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

const xmlHeader = `version="1.0" encoding="UTF-8"`

// Document is a parsed VISSIM network file.
//
// The in-memory tree is the single source of truth until Export is called:
// every view created on top of the same Document observes and mutates the same tree.
type Document struct {
	filename string
	tree     *etree.Document
	catalogs *Catalogs
	logger   *slog.Logger
	indent   int
}

// Load reads and parses VISSIM network file, then scans catalogs
func Load(filename string, options ...func(*Document)) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open file '%s'", filename)
	}
	defer file.Close()
	doc, err := LoadFrom(file, options...)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't load file '%s'", filename)
	}
	doc.filename = filename
	return doc, nil
}

// LoadFrom parses VISSIM network from reader, then scans catalogs
func LoadFrom(r io.Reader, options ...func(*Document)) (*Document, error) {
	doc := &Document{
		tree:   etree.NewDocument(),
		logger: discardLogger(),
	}
	for _, option := range options {
		option(doc)
	}
	if _, err := doc.tree.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "Can't parse XML")
	}
	if doc.tree.Root() == nil {
		return nil, ErrNoRoot
	}
	doc.catalogs = scanCatalogs(doc.tree.Root(), doc.logger)
	return doc, nil
}

// Filename returns name of the file document has been loaded from. Empty for readers.
func (doc *Document) Filename() string {
	return doc.filename
}

// Catalogs returns identifiers snapshot taken at load time (or at last Refresh)
func (doc *Document) Catalogs() *Catalogs {
	return doc.catalogs
}

// Refresh rescans every catalog from the current state of the tree
func (doc *Document) Refresh() {
	doc.catalogs = scanCatalogs(doc.tree.Root(), doc.logger)
}

// Export writes the tree to file using UTF-8 without standalone declaration
func (doc *Document) Export(filename string) error {
	doc.prepareOutput()
	err := doc.tree.WriteToFile(filename)
	if err != nil {
		return errors.Wrapf(err, "Can't write file '%s'", filename)
	}
	doc.logger.Debug("Document exported", "file", filename)
	return nil
}

// WriteTo writes the same output as Export does, but to the given writer
func (doc *Document) WriteTo(w io.Writer) (int64, error) {
	doc.prepareOutput()
	n, err := doc.tree.WriteTo(w)
	if err != nil {
		return n, errors.Wrap(err, "Can't write document")
	}
	return n, nil
}

func (doc *Document) prepareOutput() {
	found := false
	for _, token := range doc.tree.Child {
		if inst, ok := token.(*etree.ProcInst); ok && inst.Target == "xml" {
			inst.Inst = xmlHeader
			found = true
			break
		}
	}
	if !found {
		inst := etree.NewProcInst("xml", xmlHeader)
		doc.tree.InsertChildAt(0, inst)
	}
	if doc.indent > 0 {
		doc.tree.Indent(doc.indent)
	}
}

func (doc *Document) root() *etree.Element {
	return doc.tree.Root()
}
