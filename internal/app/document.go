package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/kestrel/internal/engine/rope"
	"github.com/dshills/kestrel/internal/input/action"
	"github.com/dshills/kestrel/internal/renderer"
)

// ErrNoPath is returned when saving a document that was never given a path.
var ErrNoPath = errors.New("document has no path")

// Document is a rope-backed buffer with a single cursor.
// It is owned by the poll loop and is not safe for concurrent use.
type Document struct {
	id   string
	path string
	text *rope.Rope

	cursor rope.Position

	// want is the column vertical moves try to return to.
	want int

	dirty bool
}

// NewDocument creates an empty scratch document.
func NewDocument() *Document {
	return &Document{
		id:   uuid.New().String(),
		text: rope.New(),
	}
}

// OpenDocument loads path. A missing file yields an empty document that
// will be created on save.
func OpenDocument(path string) (*Document, error) {
	doc := NewDocument()
	doc.path = path

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, docError("open", path, "", err)
	}
	defer f.Close()

	text, err := rope.FromReader(f)
	if err != nil {
		return nil, docError("open", path, "read", err)
	}
	doc.text.Destroy()
	doc.text = text
	return doc, nil
}

// ID returns the document's session-unique identifier.
func (d *Document) ID() string { return d.id }

// Path returns the file path, empty for scratch documents.
func (d *Document) Path() string { return d.path }

// Name returns the display name.
func (d *Document) Name() string {
	if d.path == "" {
		return renderer.NoName
	}
	return filepath.Base(d.path)
}

// Text returns the current text. The rope stays owned by the document and
// is replaced by the next edit.
func (d *Document) Text() *rope.Rope { return d.text }

// Cursor returns the cursor position.
func (d *Document) Cursor() rope.Position { return d.cursor }

// Dirty reports whether the text changed since it was loaded or saved.
func (d *Document) Dirty() bool { return d.dirty }

// Apply performs one editing action at the cursor.
// Quit returns ErrQuit; mode changes are tracked by the resolver and leave
// the document untouched.
func (d *Document) Apply(c action.Contextual) error {
	switch c.Action.Kind {
	case action.KindUp:
		d.moveVertical(-1)
	case action.KindDown:
		d.moveVertical(1)
	case action.KindLeft:
		d.cursor, _ = d.before(d.cursor)
		d.want = d.cursor.Col
	case action.KindRight:
		d.cursor, _ = d.after(d.cursor)
		d.want = d.cursor.Col
	case action.KindTab:
		d.insert("\t")
	case action.KindInsertBytes:
		d.insert(string(c.Action.Bytes()))
	case action.KindBackspace:
		if prev, ok := d.before(d.cursor); ok {
			d.remove(prev, d.cursor)
		}
	case action.KindDelete:
		if next, ok := d.after(d.cursor); ok {
			d.remove(d.cursor, next)
		}
	case action.KindQuit:
		return ErrQuit
	case action.KindChangeMode:
	default:
		return fmt.Errorf("%w: %s", action.ErrUnknownAction, c.Action)
	}
	return nil
}

// Save writes the text to the document's path through a temporary file in
// the same directory, then renames it into place.
func (d *Document) Save() error {
	if d.path == "" {
		return docError("save", d.Name(), "", ErrNoPath)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), "."+filepath.Base(d.path)+".*")
	if err != nil {
		return docError("save", d.path, "create", err)
	}
	if _, err := d.text.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return docError("save", d.path, "write", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return docError("save", d.path, "close", err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		os.Remove(tmp.Name())
		return docError("save", d.path, "rename", err)
	}
	d.dirty = false
	return nil
}

// Close releases the text. The document must not be used afterwards.
func (d *Document) Close() {
	if d.text != nil {
		d.text.Destroy()
		d.text = nil
	}
}

// lineLen returns the characters on row, excluding its newline.
func (d *Document) lineLen(row int) int {
	n, ok := d.text.LineLength(row)
	if !ok {
		return 0
	}
	if row < d.text.LineCount()-1 {
		n--
	}
	return n
}

func (d *Document) moveVertical(delta int) {
	row := d.cursor.Row + delta
	if row < 0 || row >= d.text.LineCount() {
		return
	}
	d.cursor = rope.Position{Row: row, Col: min(d.want, d.lineLen(row))}
}

// before returns the position one character before p, joining lines.
func (d *Document) before(p rope.Position) (rope.Position, bool) {
	switch {
	case p.Col > 0:
		return rope.Position{Row: p.Row, Col: p.Col - 1}, true
	case p.Row > 0:
		return rope.Position{Row: p.Row - 1, Col: d.lineLen(p.Row - 1)}, true
	}
	return p, false
}

// after returns the position one character after p, joining lines.
func (d *Document) after(p rope.Position) (rope.Position, bool) {
	switch {
	case p.Col < d.lineLen(p.Row):
		return rope.Position{Row: p.Row, Col: p.Col + 1}, true
	case p.Row < d.text.LineCount()-1:
		return rope.Position{Row: p.Row + 1}, true
	}
	return p, false
}

func (d *Document) insert(s string) {
	index := d.index(d.cursor)
	d.replace(d.text.Insert(index, s))
	d.cursor = d.text.PositionFromIndex(index + len(s))
	d.want = d.cursor.Col
}

// remove deletes the text between from and to and leaves the cursor at from.
func (d *Document) remove(from, to rope.Position) {
	d.replace(d.text.Delete(d.index(from), d.index(to)))
	d.cursor = from
	d.want = from.Col
}

func (d *Document) replace(text *rope.Rope) {
	if text.NeedsBalance() {
		text = text.Balance()
	}
	d.text = text
	d.dirty = true
}

func (d *Document) index(p rope.Position) int {
	index, ok := d.text.IndexFromPosition(p)
	if !ok {
		panic(fmt.Sprintf("app: cursor %d:%d outside the document", p.Row, p.Col))
	}
	return index
}
