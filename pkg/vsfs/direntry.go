package vsfs

import "bytes"

// dirCountSize is the size of the entry count at the head of a directory
// block. The count replaces the original empty-name sentinel so that entry
// scans don't depend on a string-emptiness convention.
const dirCountSize uint32 = 4

// DirEntry is one named child link inside a directory block. Entries keep
// their insertion order; names are unique only by construction, duplicates
// are not rejected.
type DirEntry struct {
	Ino  Ino
	Name string
}

// DecodeDirBlock reads the count-prefixed entry array from a directory's
// data block.
func DecodeDirBlock(geo *Geometry, b []byte) []DirEntry {
	count := int(DecodeUint32(b[0], b[1], b[2], b[3]))
	if capacity := geo.DirEntryCapacity(); count > capacity {
		count = capacity
	}

	stride := geo.DirEntrySize()
	entries := make([]DirEntry, count)
	for i := range entries {
		base := dirCountSize + uint32(i)*stride
		name := b[base+4 : base+4+geo.MaxNameLength+1]
		if end := bytes.IndexByte(name, 0); end >= 0 {
			name = name[:end]
		}
		entries[i] = DirEntry{
			Ino:  Ino(DecodeUint32(b[base], b[base+1], b[base+2], b[base+3])),
			Name: string(name),
		}
	}
	return entries
}

// AppendDirEntry writes one entry into the next free slot of a directory
// block and bumps the count. The caller is responsible for truncating the
// name to MaxNameLength beforehand.
func AppendDirEntry(geo *Geometry, b []byte, entry DirEntry) error {
	count := int(DecodeUint32(b[0], b[1], b[2], b[3]))
	if count >= geo.DirEntryCapacity() {
		return ErrDirectoryFull{Capacity: geo.DirEntryCapacity()}
	}

	base := dirCountSize + uint32(count)*geo.DirEntrySize()
	EncodeUint32(uint32(entry.Ino), b[base:])
	name := b[base+4 : base+4+geo.MaxNameLength+1]
	for i := range name {
		name[i] = 0
	}
	copy(name, entry.Name)

	EncodeUint32(uint32(count)+1, b[0:])
	return nil
}

// InitDirBlock seeds a fresh directory block with the fixed `.` and `..`
// entries. Both point at the root inode, matching the simulator this
// reimplements; real parent linking is structurally present only.
func InitDirBlock(geo *Geometry, b []byte) {
	EncodeUint32(0, b[0:])
	AppendDirEntry(geo, b, DirEntry{Ino: 0, Name: "."})
	AppendDirEntry(geo, b, DirEntry{Ino: 0, Name: ".."})
}
