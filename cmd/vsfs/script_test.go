package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/weberc2/vsfs/pkg/vsfs"
)

func TestRunScript(t *testing.T) {
	fs, err := vsfs.Format(vsfs.DefaultGeometry())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	script := `# build a small tree
mkdir /a
touch /a/b.txt
touch relative.txt
tree
`
	var out strings.Builder
	if err := runScript(fs, strings.NewReader(script), &out); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	wanted := `line 4: creating file ` + "`relative.txt`" + `: unsupported path ` +
		"`relative.txt`" + `: not absolute
/
 .
 ..
 a
  .
  ..
  b.txt
`
	if out.String() != wanted {
		t.Fatalf("output:\nwanted:\n%s\nfound:\n%s", wanted, out.String())
	}
}

func TestRunDemo(t *testing.T) {
	fs, err := vsfs.Format(vsfs.DefaultGeometry())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var out strings.Builder
	if err := runDemo(fs, &out); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	wanted := `/
 .
 ..


/
 .
 ..
 test.txt
 testdir
  .
  ..
  test1.txt
  test2.txt
`
	if out.String() != wanted {
		t.Fatalf("output:\nwanted:\n%s\nfound:\n%s", wanted, out.String())
	}
}

func TestConfigGeometryDefaults(t *testing.T) {
	var c Config
	geo := c.Geometry()
	if geo != vsfs.DefaultGeometry() {
		t.Fatalf(
			"geometry: wanted `%+v`; found `%+v`",
			vsfs.DefaultGeometry(),
			geo,
		)
	}
}

func TestLoadConfigYAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "vsfs.yaml")
	if err := os.WriteFile(
		configFile,
		[]byte("blockSize: 8192\ndiskBlocks: 128\n"),
		0o600,
	); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	t.Setenv("VSFS_CONFIG_FILE", configFile)

	c, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	geo := c.Geometry()

	// File values survive the env pass; everything else falls back to the
	// canonical layout.
	if geo.BlockSize != 8192 {
		t.Fatalf("block size: wanted `8192`; found `%d`", geo.BlockSize)
	}
	if geo.DiskBlocks != 128 {
		t.Fatalf("disk blocks: wanted `128`; found `%d`", geo.DiskBlocks)
	}
	if geo.InodeSize != vsfs.DefaultInodeSize {
		t.Fatalf(
			"inode size: wanted `%d`; found `%d`",
			vsfs.DefaultInodeSize,
			geo.InodeSize,
		)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "vsfs.yaml")
	if err := os.WriteFile(
		configFile,
		[]byte("blockSize: 8192\n"),
		0o600,
	); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	t.Setenv("VSFS_CONFIG_FILE", configFile)
	t.Setenv("VSFS_BLOCK_SIZE", "16384")

	c, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.BlockSize != 16384 {
		t.Fatalf("block size: wanted `16384`; found `%d`", c.BlockSize)
	}
}
