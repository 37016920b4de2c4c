package vsfs

import (
	"errors"
	"fmt"
	"testing"
)

func TestDirBlockInit(t *testing.T) {
	geo := DefaultGeometry()
	block := make([]byte, geo.BlockSize)
	InitDirBlock(&geo, block)

	entries := DecodeDirBlock(&geo, block)
	if len(entries) != 2 {
		t.Fatalf("entry count: wanted `2`; found `%d`", len(entries))
	}
	if entries[0].Name != "." || entries[0].Ino != 0 {
		t.Fatalf("entry 0: wanted `.` -> 0; found `%s` -> %d", entries[0].Name, entries[0].Ino)
	}
	if entries[1].Name != ".." || entries[1].Ino != 0 {
		t.Fatalf("entry 1: wanted `..` -> 0; found `%s` -> %d", entries[1].Name, entries[1].Ino)
	}
}

func TestDirBlockAppendPreservesOrder(t *testing.T) {
	geo := DefaultGeometry()
	block := make([]byte, geo.BlockSize)
	InitDirBlock(&geo, block)

	names := []string{"a", "b.txt", "zzz", "a"} // duplicates are not rejected
	for i, name := range names {
		err := AppendDirEntry(&geo, block, DirEntry{Ino: Ino(i + 1), Name: name})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	entries := DecodeDirBlock(&geo, block)
	if len(entries) != 2+len(names) {
		t.Fatalf("entry count: wanted `%d`; found `%d`", 2+len(names), len(entries))
	}
	for i, name := range names {
		entry := entries[2+i]
		if entry.Name != name || entry.Ino != Ino(i+1) {
			t.Fatalf(
				"entry %d: wanted `%s` -> %d; found `%s` -> %d",
				2+i,
				name,
				i+1,
				entry.Name,
				entry.Ino,
			)
		}
	}
}

func TestDirBlockFull(t *testing.T) {
	geo := DefaultGeometry()
	block := make([]byte, geo.BlockSize)
	InitDirBlock(&geo, block)

	capacity := geo.DirEntryCapacity()
	for i := 2; i < capacity; i++ {
		name := fmt.Sprintf("f%d", i)
		if err := AppendDirEntry(&geo, block, DirEntry{Ino: Ino(i), Name: name}); err != nil {
			t.Fatalf("append %d: unexpected err: %v", i, err)
		}
	}

	var full ErrDirectoryFull
	err := AppendDirEntry(&geo, block, DirEntry{Ino: 1, Name: "overflow"})
	if !errors.As(err, &full) {
		t.Fatalf("wanted ErrDirectoryFull; found %v", err)
	}
	if full.Capacity != capacity {
		t.Fatalf("capacity: wanted `%d`; found `%d`", capacity, full.Capacity)
	}
	if count := len(DecodeDirBlock(&geo, block)); count != capacity {
		t.Fatalf("entry count after overflow: wanted `%d`; found `%d`", capacity, count)
	}
}
