package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/rv32iss/rv32iss/memory"
)

// PolicyKind names an InitPolicy variant in a form that can round-trip
// through TOML (memory.InitPolicy itself is not serializable: FixedWord and
// Random carry unexported state).
type PolicyKind string

const (
	PolicyRandom    PolicyKind = "random"
	PolicyZero      PolicyKind = "zero"
	PolicyOnes      PolicyKind = "ones"
	PolicyFixedByte PolicyKind = "fixed_byte"
	PolicyFixedWord PolicyKind = "fixed_word"
	PolicyError     PolicyKind = "error"
)

// PolicyConfig is the TOML-facing description of an InitPolicy.
type PolicyConfig struct {
	Kind      PolicyKind `toml:"kind"`
	FixedByte uint8      `toml:"fixed_byte"`
	FixedWord uint32     `toml:"fixed_word"`
	Seed      int64      `toml:"seed"`
}

// Resolve converts a PolicyConfig into a live memory.InitPolicy.
func (p PolicyConfig) Resolve() (memory.InitPolicy, error) {
	switch p.Kind {
	case PolicyRandom:
		return memory.RandomPolicy(p.Seed), nil
	case PolicyZero:
		return memory.ZeroPolicy(), nil
	case PolicyOnes:
		return memory.OnesPolicy(), nil
	case PolicyFixedByte:
		return memory.FixedBytePolicy(p.FixedByte), nil
	case PolicyFixedWord:
		return memory.FixedWordPolicy(p.FixedWord), nil
	case PolicyError, "":
		return memory.ErrorPolicy(), nil
	default:
		return memory.InitPolicy{}, fmt.Errorf("config: unknown init policy kind %q", p.Kind)
	}
}

// RegionType mirrors memory.RegionType in a TOML-friendly form.
type RegionType string

const (
	RegionRAM RegionType = "ram"
	RegionROM RegionType = "rom"
)

// MemoryRegionConfig describes one entry of the ordered mem_regions list:
// an address range, the type of region it maps, and the policy used to
// synthesize values for bytes that have never been written.
type MemoryRegionConfig struct {
	Start uint32       `toml:"start"`
	End   uint32       `toml:"end"` // exclusive
	Type  RegionType   `toml:"type"`
	Init  PolicyConfig `toml:"init"`
}

// Config is the simulator's frozen configuration record: entry PC, the
// reserved trap/debug vectors, the ordered memory region list, and the
// register init policy. Unlike a host's own preferences
// file, this Config is the simulator's own contract; it can be built
// either in code or decoded from a TOML file with Load, and written back
// out with Save.
type Config struct {
	Entry uint32 `toml:"entry"`
	MTVec uint32 `toml:"mtvec"`
	DVec  uint32 `toml:"dvec"`

	MemRegions []MemoryRegionConfig `toml:"mem_regions"`
	RegInit    PolicyConfig         `toml:"reg_init"`
}

// Load decodes a Config from the TOML file at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save encodes cfg as TOML to path, for producing fixtures or capturing a
// configuration that was built in code.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) // #nosec G304 -- caller-provided fixture path
	if err != nil {
		return fmt.Errorf("config: failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: failed to encode config: %w", err)
	}
	return nil
}

// BuildRegions constructs the live memory.Region set described by
// MemRegions, in order, ready to hand to memory.NewRouter.
func (c *Config) BuildRegions() ([]*memory.Region, error) {
	regions := make([]*memory.Region, 0, len(c.MemRegions))
	for _, rc := range c.MemRegions {
		init, err := rc.Init.Resolve()
		if err != nil {
			return nil, err
		}
		typ := memory.RAM
		if rc.Type == RegionROM {
			typ = memory.ROM
		}
		regions = append(regions, memory.NewRegion(rc.Start, rc.End-rc.Start, typ, init))
	}
	return regions, nil
}
