package vsfs

// Disk is the byte arena backing one simulated volume: a contiguous,
// zero-initialized region of DiskBlocks × BlockSize bytes. Accessors hand
// out subslices at offsets computed from the superblock layout; callers
// never hold raw offsets.
type Disk struct {
	layout Superblock
	buf    []byte
}

func NewDisk(layout Superblock) *Disk {
	geo := layout.Geometry
	return &Disk{
		layout: layout,
		buf:    make([]byte, geo.DiskBlocks*geo.BlockSize),
	}
}

func (disk *Disk) block(index uint32) []byte {
	start := index * disk.layout.Geometry.BlockSize
	return disk.buf[start : start+disk.layout.Geometry.BlockSize]
}

// SuperblockBuf is the encoded-superblock region at the head of block 0.
func (disk *Disk) SuperblockBuf() []byte {
	return disk.block(SuperblockBlock)[:superblockEncodedSize]
}

func (disk *Disk) InodeBitmap() Bitmap {
	return Bitmap(disk.block(disk.layout.InodeBitmapBlock))
}

func (disk *Disk) DataBitmap() Bitmap {
	return Bitmap(disk.block(disk.layout.DataBitmapBlock))
}

// InodeBuf is the InodeSize-byte slot for inode `index` within the inode
// table.
func (disk *Disk) InodeBuf(index uint32) ([]byte, error) {
	geo := &disk.layout.Geometry
	if index >= geo.InodeCapacity() {
		return nil, ErrIndexOutOfRange{
			What:     "inode",
			Index:    int(index),
			Capacity: int(geo.InodeCapacity()),
		}
	}
	start := disk.layout.InodeTableStart*geo.BlockSize + index*geo.InodeSize
	return disk.buf[start : start+geo.InodeSize], nil
}

// DataBlock is the block at data-region index `index`. Data-region indices
// are relative to DataRegionStart, not absolute block numbers.
func (disk *Disk) DataBlock(index uint32) ([]byte, error) {
	geo := &disk.layout.Geometry
	if index >= geo.DataRegionBlocks {
		return nil, ErrIndexOutOfRange{
			What:     "data block",
			Index:    int(index),
			Capacity: int(geo.DataRegionBlocks),
		}
	}
	return disk.block(disk.layout.DataRegionStart + index), nil
}
