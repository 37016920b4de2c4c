package vsfs

import "fmt"

type ErrNotADirectory struct {
	Name string
}

func (err ErrNotADirectory) Error() string {
	return fmt.Sprintf("not a directory: `%s`", err.Name)
}

type ErrNoSpace struct {
	Resource string
}

func (err ErrNoSpace) Error() string {
	return fmt.Sprintf("no space: out of free %s", err.Resource)
}

type ErrDirectoryFull struct {
	Capacity int
}

func (err ErrDirectoryFull) Error() string {
	return fmt.Sprintf(
		"directory full: block holds at most `%d` entries",
		err.Capacity,
	)
}

type ErrUnsupportedPath struct {
	Path   string
	Reason string
}

func (err ErrUnsupportedPath) Error() string {
	return fmt.Sprintf("unsupported path `%s`: %s", err.Path, err.Reason)
}

type ErrPathNotFound struct {
	Path      string
	Component string
}

func (err ErrPathNotFound) Error() string {
	return fmt.Sprintf(
		"path `%s` not found: no entry named `%s`",
		err.Path,
		err.Component,
	)
}

type ErrIndexOutOfRange struct {
	What     string
	Index    int
	Capacity int
}

func (err ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf(
		"%s index `%d` out of range: capacity is `%d`",
		err.What,
		err.Index,
		err.Capacity,
	)
}
