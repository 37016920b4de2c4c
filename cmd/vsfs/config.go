package main

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/weberc2/vsfs/pkg/vsfs"
	"gopkg.in/yaml.v2"
)

const envVarPrefix = "VSFS"

// Config carries the layout geometry. Values come from an optional YAML
// file overridden by VSFS_* environment variables; fields left zero fall
// back to the canonical vsfs layout in Geometry().
type Config struct {
	BlockSize        uint32 `envconfig:"VSFS_BLOCK_SIZE"         yaml:"blockSize"`
	DiskBlocks       uint32 `envconfig:"VSFS_DISK_BLOCKS"        yaml:"diskBlocks"`
	InodeTableBlocks uint32 `envconfig:"VSFS_INODE_TABLE_BLOCKS" yaml:"inodeTableBlocks"`
	DataRegionBlocks uint32 `envconfig:"VSFS_DATA_REGION_BLOCKS" yaml:"dataRegionBlocks"`
	InodeSize        uint32 `envconfig:"VSFS_INODE_SIZE"         yaml:"inodeSize"`
	MaxNameLength    uint32 `envconfig:"VSFS_MAX_NAME_LENGTH"    yaml:"maxNameLength"`
}

func LoadConfig() (*Config, error) {
	var c Config

	if configFile := os.Getenv(envVarPrefix + "_CONFIG_FILE"); configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, &c); err != nil {
			return nil, fmt.Errorf("unmarshaling config file: %w", err)
		}
	}

	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	return &c, nil
}

func (c *Config) Geometry() vsfs.Geometry {
	geo := vsfs.DefaultGeometry()
	if c.BlockSize != 0 {
		geo.BlockSize = c.BlockSize
	}
	if c.DiskBlocks != 0 {
		geo.DiskBlocks = c.DiskBlocks
	}
	if c.InodeTableBlocks != 0 {
		geo.InodeTableBlocks = c.InodeTableBlocks
	}
	if c.DataRegionBlocks != 0 {
		geo.DataRegionBlocks = c.DataRegionBlocks
	}
	if c.InodeSize != 0 {
		geo.InodeSize = c.InodeSize
	}
	if c.MaxNameLength != 0 {
		geo.MaxNameLength = c.MaxNameLength
	}
	return geo
}
