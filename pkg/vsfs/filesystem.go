package vsfs

import (
	"fmt"
	"strings"
	"sync"
)

// FileSystem owns one disk arena and its superblock. All state lives behind
// this struct; there is no package-level disk. Mutating operations take the
// write lock, readers the read lock — the simulator itself is
// single-threaded, the lock just makes the ownership discipline explicit.
type FileSystem struct {
	mu         sync.RWMutex
	Superblock Superblock
	Disk       *Disk
}

// Format creates a fresh zeroed disk for the given geometry and establishes
// the root invariant: inode 0 is a directory owning data block 0, seeded
// with the `.` and `..` entries.
func Format(geo Geometry) (*FileSystem, error) {
	if err := geo.Validate(); err != nil {
		return nil, fmt.Errorf("formatting disk: %w", err)
	}

	sb := NewSuperblock(geo)
	fs := &FileSystem{
		Superblock: sb,
		Disk:       NewDisk(sb),
	}
	fs.Superblock.Encode(fs.Disk.SuperblockBuf())

	// Root directory: inode 0, data block 0.
	if err := fs.Disk.InodeBitmap().Set(0); err != nil {
		return nil, fmt.Errorf("formatting disk: %w", err)
	}
	if err := fs.Disk.DataBitmap().Set(0); err != nil {
		return nil, fmt.Errorf("formatting disk: %w", err)
	}

	root := Inode{Ino: Ino(sb.RootInode), Type: FileTypeDir}
	rootBuf, err := fs.Disk.InodeBuf(sb.RootInode)
	if err != nil {
		return nil, fmt.Errorf("formatting disk: %w", err)
	}
	root.Encode(rootBuf)

	rootBlock, err := fs.Disk.DataBlock(root.Block[0])
	if err != nil {
		return nil, fmt.Errorf("formatting disk: %w", err)
	}
	InitDirBlock(&fs.Superblock.Geometry, rootBlock)

	return fs, nil
}

// CreateFile creates a regular file at an absolute path. Every intermediate
// component must already exist and be a directory. On failure the disk is
// left exactly as it was.
func (fs *FileSystem) CreateFile(path string) error {
	if err := fs.create(path, FileTypeRegular); err != nil {
		return fmt.Errorf("creating file `%s`: %w", path, err)
	}
	return nil
}

// CreateDir creates a directory at an absolute path, seeded with `.` and
// `..` entries. On failure the disk is left exactly as it was.
func (fs *FileSystem) CreateDir(path string) error {
	if err := fs.create(path, FileTypeDir); err != nil {
		return fmt.Errorf("creating directory `%s`: %w", path, err)
	}
	return nil
}

func (fs *FileSystem) create(path string, fileType FileType) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	components, err := splitPath(path)
	if err != nil {
		return err
	}

	dir := Ino(fs.Superblock.RootInode)
	dirName := "/"
	for _, component := range components[:len(components)-1] {
		child, err := fs.lookup(path, dir, dirName, component)
		if err != nil {
			return err
		}
		dir = child
		dirName = component
	}

	return fs.createInode(dir, dirName, components[len(components)-1], fileType)
}

// splitPath rejects anything but a clean absolute path: a leading slash,
// no empty components.
func splitPath(path string) ([]string, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, ErrUnsupportedPath{Path: path, Reason: "not absolute"}
	}
	components := strings.Split(path[1:], "/")
	for _, component := range components {
		if component == "" {
			return nil, ErrUnsupportedPath{
				Path:   path,
				Reason: "empty path component",
			}
		}
	}
	return components, nil
}

// lookup resolves one path component within directory `dir`: a linear,
// case-sensitive scan in insertion order, first match wins. `dirName` names
// `dir` in errors.
func (fs *FileSystem) lookup(
	path string,
	dir Ino,
	dirName string,
	name string,
) (Ino, error) {
	entries, err := fs.readDirectory(dir, dirName)
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		if entry.Name == name {
			return entry.Ino, nil
		}
	}
	return 0, ErrPathNotFound{Path: path, Component: name}
}

// readDirectory decodes the entry array of directory `dir` from its sole
// data block. `name` is the directory's own name and labels the
// ErrNotADirectory when `dir` turns out not to be one.
func (fs *FileSystem) readDirectory(dir Ino, name string) ([]DirEntry, error) {
	inode, err := fs.readInode(dir)
	if err != nil {
		return nil, err
	}
	if inode.Type != FileTypeDir {
		return nil, ErrNotADirectory{Name: name}
	}
	block, err := fs.Disk.DataBlock(inode.Block[0])
	if err != nil {
		return nil, err
	}
	return DecodeDirBlock(&fs.Superblock.Geometry, block), nil
}

func (fs *FileSystem) readInode(ino Ino) (Inode, error) {
	buf, err := fs.Disk.InodeBuf(uint32(ino))
	if err != nil {
		return Inode{}, err
	}
	return DecodeInode(ino, buf), nil
}

// createInode allocates one inode and one data block first-fit, writes the
// new inode, and links it into the parent directory. Every failure is
// detected before the first bitmap mutation, so a failed create leaves the
// disk untouched.
func (fs *FileSystem) createInode(
	parent Ino,
	parentName string,
	name string,
	fileType FileType,
) error {
	geo := &fs.Superblock.Geometry

	parentInode, err := fs.readInode(parent)
	if err != nil {
		return err
	}
	if parentInode.Type != FileTypeDir {
		return ErrNotADirectory{Name: parentName}
	}

	parentBlock, err := fs.Disk.DataBlock(parentInode.Block[0])
	if err != nil {
		return err
	}
	count := int(DecodeUint32(
		parentBlock[0],
		parentBlock[1],
		parentBlock[2],
		parentBlock[3],
	))
	if count >= geo.DirEntryCapacity() {
		return ErrDirectoryFull{Capacity: geo.DirEntryCapacity()}
	}

	inodeBitmap := fs.Disk.InodeBitmap()
	ino, ok := inodeBitmap.FirstClear()
	if !ok || ino >= int(geo.InodeCapacity()) {
		return ErrNoSpace{Resource: "inodes"}
	}

	dataBitmap := fs.Disk.DataBitmap()
	blk, ok := dataBitmap.FirstClear()
	if !ok || blk >= int(geo.DataRegionBlocks) {
		return ErrNoSpace{Resource: "data blocks"}
	}

	// Names longer than MaxNameLength are silently truncated, as in the
	// original simulator.
	if len(name) > int(geo.MaxNameLength) {
		name = name[:geo.MaxNameLength]
	}

	// Past this point nothing can fail: commit both allocations.
	if err := inodeBitmap.Set(ino); err != nil {
		return err
	}
	if err := dataBitmap.Set(blk); err != nil {
		return err
	}

	inode := Inode{Ino: Ino(ino), Type: fileType}
	inode.Block[0] = uint32(blk)
	buf, err := fs.Disk.InodeBuf(uint32(ino))
	if err != nil {
		return err
	}
	inode.Encode(buf)

	if fileType == FileTypeDir {
		block, err := fs.Disk.DataBlock(uint32(blk))
		if err != nil {
			return err
		}
		InitDirBlock(geo, block)
	}

	return AppendDirEntry(geo, parentBlock, DirEntry{
		Ino:  Ino(ino),
		Name: name,
	})
}
