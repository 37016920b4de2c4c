package vsfs

// Bitmap is a bit-vector over a block-sized slice of the disk arena. Bit i
// tracks the allocation state of inode or data block i: 0 is free, 1 is
// allocated. Mutations write straight through to the arena.
type Bitmap []byte

func (bitmap Bitmap) bounds(n int) error {
	if n < 0 || n >= len(bitmap)*8 {
		return ErrIndexOutOfRange{
			What:     "bit",
			Index:    n,
			Capacity: len(bitmap) * 8,
		}
	}
	return nil
}

func (bitmap Bitmap) Set(n int) error {
	if err := bitmap.bounds(n); err != nil {
		return err
	}
	bitmap[n/8] |= 1 << (n % 8)
	return nil
}

func (bitmap Bitmap) Clear(n int) error {
	if err := bitmap.bounds(n); err != nil {
		return err
	}
	bitmap[n/8] &^= 1 << (n % 8)
	return nil
}

func (bitmap Bitmap) Get(n int) (bool, error) {
	if err := bitmap.bounds(n); err != nil {
		return false, err
	}
	return bitmap[n/8]&(1<<(n%8)) != 0, nil
}

// FirstClear returns the index of the lowest zero bit, scanning from bit 0
// on every call (first-fit). The second return is false if every bit is set.
func (bitmap Bitmap) FirstClear() (int, bool) {
	for byt := 0; byt < len(bitmap); byt++ {
		if bitmap[byt] == 0xff {
			continue
		}
		for bit := 0; bit < 8; bit++ {
			if (bitmap[byt] & (1 << bit)) == 0 {
				return byt*8 + bit, true
			}
		}
	}
	return 0, false
}
