package fsmodel

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"
)

var (
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrNegativeSize = errors.New("size cannot be negative")
	ErrNotFound     = errors.New("entry not found")
)

// Entry is implemented by every concrete filesystem item.
type Entry interface {
	Path() string
	Kind() string
}

// 1. Item holds what every entry has. It is not an Entry by itself.
type Item struct {
	Name    string    `json:"name"`
	Parent  *Folder   `json:"-"`
	Created time.Time `json:"created"`
}

// Rename changes the name of the item in place.
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	i.Name = name

	return nil
}

// Path returns the slash separated path from the root folder.
func (i *Item) Path() string {
	if i.Parent == nil {
		return "/" + i.Name
	}

	return path.Join(i.Parent.Path(), i.Name)
}

func (i *Item) String() string {
	return i.Path()
}

// 2. Document is a text item.
type Document struct {
	Item

	Content  string   `json:"content"`
	Tags     []string `json:"tags,omitempty"`
	Priority int8     `json:"priority"`
}

func (d *Document) Kind() string { return "document" }

// Append adds text to the content and returns the new length.
func (d *Document) Append(text string) int {
	d.Content += text
	return len(d.Content)
}

// Words counts whitespace separated words of the content.
func (d *Document) Words() int {
	return len(strings.Fields(d.Content))
}

// Tag adds labels that are not present yet and returns how many were added.
func (d *Document) Tag(labels []string) int {
	added := 0
	for _, l := range labels {
		if l == "" || slices.Contains(d.Tags, l) {
			continue
		}

		d.Tags = append(d.Tags, l)
		added++
	}

	return added
}

func (d *Document) Prioritize(level int8) {
	d.Priority = level
}

// 3. Folder contains other entries.
type Folder struct {
	Item

	Children []Entry `json:"children,omitempty"`
	Hidden   bool    `json:"hidden"`
}

func NewFolder(name string, parent *Folder) *Folder {
	f := &Folder{Item: Item{Name: name, Created: time.Now()}}
	if parent != nil {
		parent.attach(f, &f.Item)
	}

	return f
}

func (f *Folder) Kind() string { return "folder" }

// Add creates an empty document in the folder.
func (f *Folder) Add(name string) (*Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	d := &Document{Item: Item{Name: name, Created: time.Now()}}
	f.attach(d, &d.Item)

	return d, nil
}

// Count returns the number of direct children.
func (f *Folder) Count() int {
	return len(f.Children)
}

// Find returns the path of the direct child with the given name.
func (f *Folder) Find(name string) (string, error) {
	for _, c := range f.Children {
		if path.Base(c.Path()) == name {
			return c.Path(), nil
		}
	}

	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Move reattaches the folder below parent.
func (f *Folder) Move(parent *Folder) string {
	if f.Parent != nil {
		f.Parent.detach(f)
	}

	parent.attach(f, &f.Item)

	return f.Path()
}

func (f *Folder) Hide(hidden bool) {
	f.Hidden = hidden
}

func (f *Folder) attach(e Entry, item *Item) {
	item.Parent = f
	f.Children = append(f.Children, e)
}

func (f *Folder) detach(e Entry) {
	for i, c := range f.Children {
		if c == e {
			f.Children = append(f.Children[:i], f.Children[i+1:]...)
			return
		}
	}
}

// 4. File is a sized binary item.
type File struct {
	Item

	Size     int64       `json:"size"`
	Mode     fs.FileMode `json:"mode"`
	Modified time.Time   `json:"modified"`
	Ratio    float64     `json:"ratio"`
}

func NewFile(name string, parent *Folder, size int64) *File {
	now := time.Now()
	f := &File{Item: Item{Name: name, Created: now}, Size: size, Mode: 0o644, Modified: now, Ratio: 1}
	if parent != nil {
		parent.attach(f, &f.Item)
	}

	return f
}

func (f *File) Kind() string { return "file" }

// Resize sets a new size; negative sizes are rejected.
func (f *File) Resize(size int64) error {
	if size < 0 {
		return fmt.Errorf("resize %s to %d: %w", f.Name, size, ErrNegativeSize)
	}

	f.Size = size

	return nil
}

// Extension returns the extension of the name without the dot.
func (f *File) Extension() string {
	return strings.TrimPrefix(path.Ext(f.Name), ".")
}

func (f *File) Chmod(mode fs.FileMode) {
	f.Mode = mode
}

// Touch sets the modification time and returns the previous one.
func (f *File) Touch(at time.Time) time.Time {
	prev := f.Modified
	f.Modified = at

	return prev
}

// Compress scales the size by ratio and returns the new size.
func (f *File) Compress(ratio float64) (int64, error) {
	if ratio <= 0 || ratio > 1 {
		return f.Size, fmt.Errorf("ratio %v out of range (0, 1]", ratio)
	}

	f.Ratio = ratio
	f.Size = int64(float64(f.Size) * ratio)

	return f.Size, nil
}

// Split returns the sizes of the two halves.
func (f *File) Split() (int64, int64) {
	half := f.Size / 2
	return half, f.Size - half
}

// 5. Archive bundles files. Its zero value has no backing index and is
// not a usable archive.
type Archive struct {
	Item

	Files      []*File `json:"files,omitempty"`
	Compressed bool    `json:"compressed"`

	index map[string]int
}

func NewArchive(name string) *Archive {
	return &Archive{Item: Item{Name: name, Created: time.Now()}, index: make(map[string]int)}
}

func (a *Archive) Kind() string { return "archive" }

// Pack adds an empty file entry with the given name.
func (a *Archive) Pack(name string) int {
	a.index[name] = len(a.Files)
	a.Files = append(a.Files, &File{Item: Item{Name: name}})

	return len(a.Files)
}

// 6. Shortcut points at another entry.
type Shortcut struct {
	Item

	Target Entry         `json:"-"`
	Expiry time.Duration `json:"expiry"`
}

func (s *Shortcut) Kind() string { return "shortcut" }

// Follow returns the path of the target. It panics when there is no target.
func (s *Shortcut) Follow() string {
	return s.Target.Path()
}

// Expire sets how long the shortcut stays valid.
func (s *Shortcut) Expire(after time.Duration) time.Duration {
	prev := s.Expiry
	s.Expiry = after

	return prev
}
