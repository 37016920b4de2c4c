package vsfs

import "fmt"

type Ino uint32

type FileType uint16

const (
	FileTypeRegular FileType = iota
	FileTypeDir

	// InodeBlockSlots is the number of block-address slots per inode. Only
	// slot 0 is ever populated: multi-block storage is out of scope.
	InodeBlockSlots = 12

	// inodeEncodedSize is the number of bytes an inode occupies at the head
	// of its InodeSize-byte table slot.
	inodeEncodedSize uint32 = 8 + 4*InodeBlockSlots
)

func (fileType FileType) String() string {
	switch fileType {
	case FileTypeRegular:
		return "Regular"
	case FileTypeDir:
		return "Dir"
	default:
		panic(fmt.Sprintf("unknown file type: %d", fileType))
	}
}

// Inode describes one file or directory. Size stays 0 (content storage is
// out of scope) and only Block[0] is ever assigned; Block entries are
// data-region indices, not absolute block numbers.
type Inode struct {
	Ino   Ino
	Type  FileType
	Size  uint32
	Block [InodeBlockSlots]uint32
}

func DecodeInode(ino Ino, b []byte) Inode {
	var block [InodeBlockSlots]uint32
	for i := range block {
		base := 8 + 4*i
		block[i] = DecodeUint32(b[base], b[base+1], b[base+2], b[base+3])
	}

	return Inode{
		Ino:   ino,
		Type:  FileType(DecodeUint16(b[0], b[1])),
		Size:  DecodeUint32(b[4], b[5], b[6], b[7]),
		Block: block,
	}
}

func (inode *Inode) Encode(b []byte) {
	EncodeUint16(uint16(inode.Type), b[0:])
	EncodeUint16(0, b[2:])
	EncodeUint32(inode.Size, b[4:])
	for i := range inode.Block {
		EncodeUint32(inode.Block[i], b[8+4*i:])
	}
}
