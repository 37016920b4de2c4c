package vsfs

import "fmt"

const (
	// SuperblockBlock is the block holding the superblock. The two bitmap
	// blocks and the inode table follow it in a fixed order.
	SuperblockBlock  uint32 = 0
	InodeBitmapBlock uint32 = 1
	DataBitmapBlock  uint32 = 2
	InodeTableStart  uint32 = 3

	DefaultBlockSize        uint32 = 4096
	DefaultDiskBlocks       uint32 = 64
	DefaultInodeTableBlocks uint32 = 5
	DefaultDataRegionBlocks uint32 = 56
	DefaultInodeSize        uint32 = 256
	DefaultMaxNameLength    uint32 = 30
)

// Geometry is the layout contract for a disk image. The defaults match the
// canonical 64-block/4096-byte layout; every field is configurable but the
// regions must still fit the disk.
type Geometry struct {
	BlockSize        uint32
	DiskBlocks       uint32
	InodeTableBlocks uint32
	DataRegionBlocks uint32
	InodeSize        uint32
	MaxNameLength    uint32
}

func DefaultGeometry() Geometry {
	return Geometry{
		BlockSize:        DefaultBlockSize,
		DiskBlocks:       DefaultDiskBlocks,
		InodeTableBlocks: DefaultInodeTableBlocks,
		DataRegionBlocks: DefaultDataRegionBlocks,
		InodeSize:        DefaultInodeSize,
		MaxNameLength:    DefaultMaxNameLength,
	}
}

// DataRegionStart is the first block of the data region: the data region
// begins immediately after the inode table.
func (geo *Geometry) DataRegionStart() uint32 {
	return InodeTableStart + geo.InodeTableBlocks
}

// InodeCapacity is the number of inode slots in the inode table.
func (geo *Geometry) InodeCapacity() uint32 {
	return geo.InodeTableBlocks * geo.BlockSize / geo.InodeSize
}

// BitmapBits is the number of bits in one block-sized bitmap.
func (geo *Geometry) BitmapBits() int {
	return int(geo.BlockSize) * 8
}

// DirEntrySize is the on-disk stride of one directory entry: a 4-byte child
// ino followed by the NUL-padded name field, rounded up to 4-byte alignment.
func (geo *Geometry) DirEntrySize() uint32 {
	size := 4 + geo.MaxNameLength + 1
	if rem := size % 4; rem != 0 {
		size += 4 - rem
	}
	return size
}

// DirEntryCapacity is the number of entries one directory block can hold
// after its 4-byte entry count.
func (geo *Geometry) DirEntryCapacity() int {
	return int((geo.BlockSize - dirCountSize) / geo.DirEntrySize())
}

type ErrBadGeometry struct {
	Reason string
}

func (err ErrBadGeometry) Error() string {
	return fmt.Sprintf("bad geometry: %s", err.Reason)
}

func (geo *Geometry) Validate() error {
	if geo.BlockSize == 0 || geo.BlockSize%8 != 0 {
		return ErrBadGeometry{"block size must be a positive multiple of 8"}
	}
	if geo.InodeSize == 0 || geo.BlockSize%geo.InodeSize != 0 {
		return ErrBadGeometry{"inode size must evenly divide block size"}
	}
	if geo.InodeSize < inodeEncodedSize {
		return ErrBadGeometry{fmt.Sprintf(
			"inode size must be at least %d bytes",
			inodeEncodedSize,
		)}
	}
	if geo.BlockSize < superblockEncodedSize {
		return ErrBadGeometry{fmt.Sprintf(
			"block size must be at least %d bytes",
			superblockEncodedSize,
		)}
	}
	if geo.MaxNameLength == 0 {
		return ErrBadGeometry{"max name length must be positive"}
	}
	if geo.DirEntryCapacity() < 2 {
		return ErrBadGeometry{
			"directory block too small for the `.` and `..` entries",
		}
	}
	if geo.InodeTableBlocks == 0 || geo.DataRegionBlocks == 0 {
		return ErrBadGeometry{"inode table and data region must be nonempty"}
	}
	end := InodeTableStart + geo.InodeTableBlocks + geo.DataRegionBlocks
	if end > geo.DiskBlocks {
		return ErrBadGeometry{fmt.Sprintf(
			"regions end at block `%d` but the disk has `%d` blocks",
			end,
			geo.DiskBlocks,
		)}
	}
	return nil
}
