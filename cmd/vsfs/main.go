package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/weberc2/vsfs/pkg/vsfs"
)

func main() {
	app := cli.App{
		Name:        "vsfs",
		Description: "an in-memory vsfs filesystem-layout simulator",
		Commands: []*cli.Command{{
			Name: "demo",
			Description: "format a disk, create a few files and " +
				"directories, and print the tree",
			Action: withFileSystem(func(fs *vsfs.FileSystem, ctx *cli.Context) error {
				return runDemo(fs, os.Stdout)
			}),
		}, {
			Name: "script",
			Description: "apply newline-separated commands (`touch PATH`, " +
				"`mkdir PATH`, `tree`, `info`) from a file or stdin to a " +
				"freshly formatted disk",
			ArgsUsage: "[FILE]",
			Action: withFileSystem(func(fs *vsfs.FileSystem, ctx *cli.Context) error {
				input := os.Stdin
				if ctx.Args().Len() > 0 {
					f, err := os.Open(ctx.Args().Get(0))
					if err != nil {
						return fmt.Errorf("opening script: %w", err)
					}
					defer f.Close()
					input = f
				}
				return runScript(fs, input, os.Stdout)
			}),
		}, {
			Name:        "info",
			Description: "print the formatted disk's layout",
			Action: withFileSystem(func(fs *vsfs.FileSystem, ctx *cli.Context) error {
				printInfo(fs, os.Stdout)
				return nil
			}),
		}},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func withFileSystem(
	f func(*vsfs.FileSystem, *cli.Context) error,
) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		config, err := LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		fs, err := vsfs.Format(config.Geometry())
		if err != nil {
			return err
		}
		return f(fs, ctx)
	}
}

// runDemo replays the original simulator's driver: print the fresh tree,
// create a few files and directories, print again. Two blank lines separate
// the trees, as in the original.
func runDemo(fs *vsfs.FileSystem, w io.Writer) error {
	if err := fs.WriteTree(w); err != nil {
		return err
	}
	fmt.Fprint(w, "\n\n")

	for _, step := range []struct {
		create func(string) error
		path   string
	}{
		{fs.CreateFile, "/test.txt"},
		{fs.CreateDir, "/testdir"},
		{fs.CreateFile, "/testdir/test1.txt"},
		{fs.CreateFile, "/testdir/test2.txt"},
	} {
		if err := step.create(step.path); err != nil {
			return err
		}
	}

	return fs.WriteTree(w)
}

// runScript applies commands line by line; a failing line is reported and
// the script keeps going.
func runScript(fs *vsfs.FileSystem, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if err := runCommand(fs, w, fields); err != nil {
			fmt.Fprintf(w, "line %d: %v\n", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return nil
}

func runCommand(fs *vsfs.FileSystem, w io.Writer, fields []string) error {
	switch fields[0] {
	case "touch":
		if len(fields) != 2 {
			return fmt.Errorf("touch: wanted 1 argument; found %d", len(fields)-1)
		}
		return fs.CreateFile(fields[1])
	case "mkdir":
		if len(fields) != 2 {
			return fmt.Errorf("mkdir: wanted 1 argument; found %d", len(fields)-1)
		}
		return fs.CreateDir(fields[1])
	case "tree":
		return fs.WriteTree(w)
	case "info":
		printInfo(fs, w)
		return nil
	default:
		return fmt.Errorf("unknown command: `%s`", fields[0])
	}
}

func printInfo(fs *vsfs.FileSystem, w io.Writer) {
	sb := &fs.Superblock
	geo := &sb.Geometry
	fmt.Fprintf(w, "volume id:          %s\n", sb.VolumeIDString())
	fmt.Fprintf(w, "block size:         %d bytes\n", geo.BlockSize)
	fmt.Fprintf(w, "disk size:          %d blocks\n", geo.DiskBlocks)
	fmt.Fprintf(w, "inode bitmap:       block %d\n", sb.InodeBitmapBlock)
	fmt.Fprintf(w, "data bitmap:        block %d\n", sb.DataBitmapBlock)
	fmt.Fprintf(w, "inode table:        blocks %d-%d (%d inodes)\n",
		sb.InodeTableStart,
		sb.InodeTableStart+geo.InodeTableBlocks-1,
		geo.InodeCapacity(),
	)
	fmt.Fprintf(w, "data region:        blocks %d-%d\n",
		sb.DataRegionStart,
		sb.DataRegionStart+geo.DataRegionBlocks-1,
	)
	fmt.Fprintf(w, "root inode:         %d\n", sb.RootInode)
	fmt.Fprintf(w, "max name length:    %d bytes\n", geo.MaxNameLength)
	fmt.Fprintf(w, "dir entry capacity: %d per block\n", geo.DirEntryCapacity())
}
