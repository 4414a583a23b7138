package deploy

// =============================================================================
// Path
// =============================================================================

// Path is a bare project-relative path. It is wrapped into a SharedFolder or a
// SharedFile when passed to AddSharedFolder or AddSharedFile.
type Path string

// AsSharedFolder wraps the path into a new SharedFolder.
func (p Path) AsSharedFolder() *SharedFolder {
	return NewSharedFolder(string(p))
}

// AsSharedFile wraps the path into a new SharedFile.
func (p Path) AsSharedFile() *SharedFile {
	return NewSharedFile(string(p))
}

// SharedFolderSource is anything AddSharedFolder accepts: a Path or a *SharedFolder.
type SharedFolderSource interface {
	AsSharedFolder() *SharedFolder
}

// SharedFileSource is anything AddSharedFile accepts: a Path or a *SharedFile.
type SharedFileSource interface {
	AsSharedFile() *SharedFile
}

// =============================================================================
// SharedFolder
// =============================================================================

// SharedFolder is a folder kept between releases, e.g. "pub/media" or "var/import".
// The deploy engine symlinks shared folders in the order they were added.
type SharedFolder struct {
	path string
}

// NewSharedFolder creates a SharedFolder for path.
func NewSharedFolder(path string) *SharedFolder {
	return &SharedFolder{path: path}
}

// Path returns the folder path.
func (f *SharedFolder) Path() string {
	return f.path
}

// AsSharedFolder returns f itself, so a pre-built folder is stored unchanged.
// A nil folder stays nil and is skipped by AddSharedFolder.
func (f *SharedFolder) AsSharedFolder() *SharedFolder {
	return f
}

// Equal reports whether both folders have the same path.
func (f *SharedFolder) Equal(other *SharedFolder) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.path == other.path
}

// =============================================================================
// SharedFile
// =============================================================================

// SharedFile is a file kept between releases, e.g. "app/etc/env.php".
type SharedFile struct {
	path string
}

// NewSharedFile creates a SharedFile for path.
func NewSharedFile(path string) *SharedFile {
	return &SharedFile{path: path}
}

// Path returns the file path.
func (f *SharedFile) Path() string {
	return f.path
}

// AsSharedFile returns f itself. A nil file is skipped by AddSharedFile.
func (f *SharedFile) AsSharedFile() *SharedFile {
	return f
}

// Equal reports whether both files have the same path.
func (f *SharedFile) Equal(other *SharedFile) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.path == other.path
}
