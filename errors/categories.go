package errors

// category is a loose grouping used only for documentation; curated errors
// are otherwise just formatted strings (see Errorf).
type category string

// list of error categories used when choosing a message in messages.go.
const (
	CategoryROM        category = "rom"
	CategoryCartridge  category = "cartridge"
	CategoryDisk       category = "disk"
	CategorySnapshot   category = "snapshot"
	CategoryCPU        category = "cpu"
	CategoryConfig     category = "config"
	CategoryDatasette  category = "datasette"
	CategorySerialBus  category = "serial bus"
)
