package errors

// error messages used with Errorf throughout the core. Grouped loosely by
// the category they belong to.
const (
	// machine / scheduler
	PowerOff       = "machine has been powered off"
	SuspendedTwice = "machine already suspended: %v"
	ResumedTooMany = "machine resume called more times than suspend"

	// cpu
	InvalidOperationMidInstruction = "cpu: invalid operation mid-instruction (%v)"
	CPUHalted                      = "cpu: halted at %#04x: %v"
	UnimplementedInstruction       = "cpu: unimplemented instruction (%#02x) at (%#04x)"

	// memory
	UnpokeableAddress = "memory: cannot poke address (%#04x)"
	UnpeekableAddress = "memory: cannot peek address (%#04x)"

	// cartridges
	CartridgeError       = "cartridge: %v"
	CartridgeEjected     = "cartridge: no cartridge attached"
	CartridgeUnsupported = "cartridge: unsupported hardware type (%d)"
	CartridgeFileError   = "cartridge: %v"
	CartridgeNotMappable = "cartridge: bank %d cannot be mapped to address (%#04x)"

	// rom loading
	ROMFileError     = "rom: %v"
	ROMHashUnknown   = "rom: hash not recognised (%s)"
	ROMSizeMismatch  = "rom: unexpected size (got %d bytes)"
	ROMMissing       = "rom: %s not loaded"

	// disk / drive
	DiskFileError          = "disk: %v"
	DiskWriteProtect       = "disk: write protected"
	GCRInvalidCode         = "gcr: invalid codeword (%#02x)"
	D64SectorError         = "d64: bad sector (track %d, sector %d)"
	DiskImageSizeMismatch  = "d64: unexpected image size (got %d bytes)"
	DiskTrackUnformatted   = "d64: track %d has no data"
	DiskSectorNotFound     = "d64: sector not found (track %d, sector %d)"

	// datasette
	TAPFileError = "tap: %v"

	// serial bus
	SerialBusError = "serial bus: %v"

	// snapshot
	SnapshotVersionMismatch = "snapshot: version mismatch (file is %d.%d.%d, core is %d.%d.%d)"
	SnapshotFileError       = "snapshot: %v"

	// config
	ConfigError = "config: %v"
)
