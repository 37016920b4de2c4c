package vsfs

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

const (
	SuperblockMagic uint16 = 0x5653

	// superblockEncodedSize is the number of bytes the superblock actually
	// occupies at the head of block 0; the rest of the block stays zero.
	superblockEncodedSize uint32 = 64
)

// Superblock describes the disk's region layout. It is written once by
// Format and immutable afterwards; every accessor computes offsets from it.
type Superblock struct {
	InodeBitmapBlock uint32
	DataBitmapBlock  uint32
	InodeTableStart  uint32
	DataRegionStart  uint32
	RootInode        uint32
	Geometry         Geometry
	VolumeID         [16]byte
}

// NewSuperblock lays out a fresh volume for the given geometry and stamps
// it with a random volume ID.
func NewSuperblock(geo Geometry) Superblock {
	return Superblock{
		InodeBitmapBlock: InodeBitmapBlock,
		DataBitmapBlock:  DataBitmapBlock,
		InodeTableStart:  InodeTableStart,
		DataRegionStart:  geo.DataRegionStart(),
		RootInode:        0,
		Geometry:         geo,
		VolumeID:         [16]byte(uuid.New()),
	}
}

// VolumeIDString renders the volume ID in the canonical UUID form.
func (sb *Superblock) VolumeIDString() string {
	return uuid.UUID(sb.VolumeID).String()
}

type ErrBadMagic struct {
	Found uint16
}

func (err ErrBadMagic) Error() string {
	return fmt.Sprintf(
		"bad magic: wanted `%#04x`; found `%#04x`",
		SuperblockMagic,
		err.Found,
	)
}

func (sb *Superblock) Encode(b []byte) {
	EncodeUint16(SuperblockMagic, b[0:])
	EncodeUint32(sb.InodeBitmapBlock, b[4:])
	EncodeUint32(sb.DataBitmapBlock, b[8:])
	EncodeUint32(sb.InodeTableStart, b[12:])
	EncodeUint32(sb.DataRegionStart, b[16:])
	EncodeUint32(sb.RootInode, b[20:])
	EncodeUint32(sb.Geometry.BlockSize, b[24:])
	EncodeUint32(sb.Geometry.DiskBlocks, b[28:])
	EncodeUint32(sb.Geometry.InodeTableBlocks, b[32:])
	EncodeUint32(sb.Geometry.DataRegionBlocks, b[36:])
	EncodeUint32(sb.Geometry.InodeSize, b[40:])
	EncodeUint32(sb.Geometry.MaxNameLength, b[44:])
	copy(b[48:64], sb.VolumeID[:])
}

func DecodeSuperblock(b []byte) (Superblock, error) {
	var sb Superblock
	err := sb.Decode(b)
	return sb, err
}

func (sb *Superblock) Decode(b []byte) error {
	magic := DecodeUint16(b[0], b[1])
	if magic != SuperblockMagic {
		return fmt.Errorf("decoding superblock: %w", ErrBadMagic{magic})
	}

	sb.InodeBitmapBlock = DecodeUint32(b[4], b[5], b[6], b[7])
	sb.DataBitmapBlock = DecodeUint32(b[8], b[9], b[10], b[11])
	sb.InodeTableStart = DecodeUint32(b[12], b[13], b[14], b[15])
	sb.DataRegionStart = DecodeUint32(b[16], b[17], b[18], b[19])
	sb.RootInode = DecodeUint32(b[20], b[21], b[22], b[23])
	sb.Geometry.BlockSize = DecodeUint32(b[24], b[25], b[26], b[27])
	sb.Geometry.DiskBlocks = DecodeUint32(b[28], b[29], b[30], b[31])
	sb.Geometry.InodeTableBlocks = DecodeUint32(b[32], b[33], b[34], b[35])
	sb.Geometry.DataRegionBlocks = DecodeUint32(b[36], b[37], b[38], b[39])
	sb.Geometry.InodeSize = DecodeUint32(b[40], b[41], b[42], b[43])
	sb.Geometry.MaxNameLength = DecodeUint32(b[44], b[45], b[46], b[47])
	copy(sb.VolumeID[:], b[48:64])

	return nil
}

func DecodeUint16(b0, b1 byte) uint16 {
	// Little endian: first byte is least significant
	return uint16(b0) + (uint16(b1) << 8)
}

func DecodeUint32(b0, b1, b2, b3 byte) uint32 {
	// Little endian: first byte is least significant
	return uint32(b0) +
		(uint32(b1) << 8) +
		(uint32(b2) << 16) +
		(uint32(b3) << 24)
}

func EncodeUint16(x uint16, b []byte) {
	binary.LittleEndian.PutUint16(b, x)
}

func EncodeUint32(x uint32, b []byte) {
	binary.LittleEndian.PutUint32(b, x)
}
