package vsfs

import (
	"fmt"
	"io"
	"strings"
)

// WriteTree renders the directory tree rooted at inode 0: pre-order, one
// name per line, indented by one space per depth level, entries in creation
// order. The root prints as "/".
func (fs *FileSystem) WriteTree(w io.Writer) error {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if err := fs.writeInodeTree(w, "/", Ino(fs.Superblock.RootInode), 0); err != nil {
		return fmt.Errorf("writing tree: %w", err)
	}
	return nil
}

// Tree renders the tree as a string.
func (fs *FileSystem) Tree() (string, error) {
	var sb strings.Builder
	if err := fs.WriteTree(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (fs *FileSystem) writeInodeTree(
	w io.Writer,
	name string,
	ino Ino,
	depth int,
) error {
	if _, err := fmt.Fprintf(
		w,
		"%s%s\n",
		strings.Repeat(" ", depth),
		name,
	); err != nil {
		return err
	}

	// `.` and `..` are structurally children pointing back into the tree;
	// print them but never recurse into them.
	if name == "." || name == ".." {
		return nil
	}

	inode, err := fs.readInode(ino)
	if err != nil {
		return err
	}
	if inode.Type != FileTypeDir {
		return nil
	}

	entries, err := fs.readDirectory(ino, name)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := fs.writeInodeTree(w, entry.Name, entry.Ino, depth+1); err != nil {
			return err
		}
	}
	return nil
}
