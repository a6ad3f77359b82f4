package alloc

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/joshuapare/segalloc/internal/buf"
	"github.com/joshuapare/segalloc/internal/format"
)

// Config defines the unit granularity and block capacity of an Allocator.
// Requests of more than BlockUnits units bypass the blocks and go straight to
// the base provider.
type Config struct {
	// Name for this configuration (for stats and map output)
	Name string

	// UnitSize is the allocation granularity in bytes (power of two, >= 16).
	UnitSize int

	// BlockUnits is the capacity of every block in units, which is also the
	// largest request served from a block (2..4095).
	BlockUnits int

	// Logger receives allocator events. Nil means no logging unless
	// SEGALLOC_LOG_ALLOC is set in the environment.
	Logger *zap.Logger
}

// Predefined configurations.
var (
	// ConfigSmall: 4KB blocks, for many tiny short-lived objects.
	ConfigSmall = Config{
		Name:       "Small",
		UnitSize:   format.DefaultUnitSize,
		BlockUnits: 256,
	}

	// ConfigDefault: 32KB blocks of 16-byte units.
	ConfigDefault = Config{
		Name:       "Default",
		UnitSize:   format.DefaultUnitSize,
		BlockUnits: 2048,
	}

	// ConfigLarge: ~256KB blocks of 64-byte units, for bigger payloads.
	ConfigLarge = Config{
		Name:       "Large",
		UnitSize:   64,
		BlockUnits: format.MaxBlockUnits,
	}

	// DefaultConfig is used when New is given a nil config.
	DefaultConfig = ConfigDefault
)

// BlockBytes returns the number of bytes each block requests from the provider.
func (c Config) BlockBytes() int {
	return c.BlockUnits*c.UnitSize + blockHeaderBytes
}

// MaxChunkBytes returns the largest request served from a block.
func (c Config) MaxChunkBytes() int {
	return c.BlockUnits * c.UnitSize
}

func (c Config) validate() error {
	if !format.IsPow2(c.UnitSize) || c.UnitSize < format.MinUnitSize || c.UnitSize > format.MaxUnitSize {
		return errors.Wrapf(ErrBadConfig, "unit size %d: want a power of two in [%d, %d]",
			c.UnitSize, format.MinUnitSize, format.MaxUnitSize)
	}
	if c.BlockUnits < format.MinBlockUnits || c.BlockUnits > format.MaxBlockUnits {
		return errors.Wrapf(ErrBadConfig, "block units %d: want [%d, %d]",
			c.BlockUnits, format.MinBlockUnits, format.MaxBlockUnits)
	}
	if _, ok := buf.RegionSize(c.BlockUnits, c.UnitSize, blockHeaderBytes); !ok {
		return errors.Wrapf(ErrBadConfig, "block of %d x %d bytes overflows", c.BlockUnits, c.UnitSize)
	}
	return nil
}
