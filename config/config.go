package config

import "github.com/vc64/core/errors"

// Region selects the base clock frequency the machine runs at.
type Region int

const (
	PAL Region = iota
	NTSC
)

func (r Region) String() string {
	if r == NTSC {
		return "NTSC"
	}
	return "PAL"
}

// Frequency returns the region's CPU clock in Hz.
func (r Region) Frequency() float64 {
	if r == NTSC {
		return 1022700
	}
	return 985248
}

// Config collates every persisted setting a running machine consults,
// following the same one-struct-per-subsystem shape the debugger's own
// Preferences type uses: a *Disk plus one typed Pref field per setting,
// each wired into the disk with Add during New.
type Config struct {
	dsk *Disk

	Region            *Generic
	Warp              *Bool
	DriveSound        *Bool
	VC1541Attached    *Bool
	DatasetteAttached *Bool

	KernalPath   *String
	BasicPath    *String
	ChargenPath  *String
	DriveROMPath *String

	BreakpointsPath *String
}

// DefaultConfigFile is the filename New looks for when no explicit path
// is given by the caller.
const DefaultConfigFile = "vc64.conf"

// New builds a Config wired to path and loads any existing values from
// it. A missing file is not an error — the zero-value defaults stand.
func New(path string) (*Config, error) {
	c := &Config{
		Warp:              &Bool{},
		DriveSound:        &Bool{},
		VC1541Attached:    &Bool{},
		DatasetteAttached: &Bool{},
		KernalPath:        &String{},
		BasicPath:         &String{},
		ChargenPath:       &String{},
		DriveROMPath:      &String{},
		BreakpointsPath:   &String{},
	}

	region := PAL
	c.Region = NewGeneric(
		func(v Value) error {
			switch t := v.(type) {
			case Region:
				region = t
			case string:
				if t == "NTSC" {
					region = NTSC
				} else {
					region = PAL
				}
			default:
				return errors.Errorf(errors.ConfigError, "region: unrecognised value")
			}
			return nil
		},
		func() Value { return region.String() },
	)

	var err error
	c.dsk, err = NewDisk(path)
	if err != nil {
		return nil, err
	}

	adds := []struct {
		key string
		p   Pref
	}{
		{"machine.region", c.Region},
		{"machine.warp", c.Warp},
		{"machine.drivesound", c.DriveSound},
		{"machine.vc1541attached", c.VC1541Attached},
		{"machine.datasetteattached", c.DatasetteAttached},
		{"rom.kernal", c.KernalPath},
		{"rom.basic", c.BasicPath},
		{"rom.chargen", c.ChargenPath},
		{"rom.drive", c.DriveROMPath},
		{"debugger.breakpoints", c.BreakpointsPath},
	}
	for _, a := range adds {
		if err := c.dsk.Add(a.key, a.p); err != nil {
			return nil, err
		}
	}

	if err := c.dsk.Load(); err != nil {
		return nil, err
	}

	return c, nil
}

// Save persists every setting back to the backing file.
func (c *Config) Save() error {
	return c.dsk.Save()
}

// Load re-reads the backing file, overwriting in-memory values.
func (c *Config) Load() error {
	return c.dsk.Load()
}

// GetRegion returns the currently configured region.
func (c *Config) GetRegion() Region {
	if c.Region.String() == "NTSC" {
		return NTSC
	}
	return PAL
}

// Frequency is a convenience forwarding to GetRegion().Frequency().
func (c *Config) Frequency() float64 {
	return c.GetRegion().Frequency()
}
