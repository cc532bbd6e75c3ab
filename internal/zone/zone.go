package zone

import (
	"path/filepath"
	"strings"
)

// Zone directory names under the mirror root.
const (
	IgnoreDir   = "ignore"
	MetadataDir = "metadata"
	ReuploadDir = "reUpload"
	StateDir    = ".assetsync"
)

// Intent is the operation a file's location asks for.
type Intent int

const (
	Unclassified Intent = iota
	Ignored
	Reupload
	MetadataUpdate
)

func (i Intent) String() string {
	switch i {
	case Ignored:
		return "ignored"
	case Reupload:
		return "reupload"
	case MetadataUpdate:
		return "metadata"
	default:
		return "unclassified"
	}
}

// Layout holds the absolute zone roots for one mirror.
type Layout struct {
	Root     string
	Ignore   string
	Metadata string
	Reupload string
	State    string
}

// NewLayout derives zone roots from the mirror root.
func NewLayout(root string) Layout {
	root = filepath.Clean(root)
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return Layout{
		Root:     root,
		Ignore:   filepath.Join(root, IgnoreDir),
		Metadata: filepath.Join(root, MetadataDir),
		Reupload: filepath.Join(root, ReuploadDir),
		State:    filepath.Join(root, StateDir),
	}
}

// Dirs lists the directories a mirror needs on disk.
func (l Layout) Dirs() []string {
	return []string{l.Root, l.Ignore, l.Metadata, l.Reupload}
}

// Classify returns the intent for path. ignore/ is tested first and
// short-circuits; reUpload/ and metadata/ are disjoint.
func (l Layout) Classify(path string) Intent {
	path = filepath.Clean(path)
	switch {
	case within(l.Ignore, path):
		return Ignored
	case within(l.Reupload, path):
		return Reupload
	case within(l.Metadata, path):
		return MetadataUpdate
	default:
		return Unclassified
	}
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
