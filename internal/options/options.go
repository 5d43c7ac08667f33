// Package options contains the program options.
package options

// Supported user interfaces.
const (
	UIWindow   = "window"
	UITerminal = "terminal"
	UIHeadless = "headless"
)

// UIs lists all supported user interfaces.
var UIs = []string{UIWindow, UITerminal, UIHeadless}

// Parameters contains file path options.
type Parameters struct {
	Input string // ROM file to run
}

// Flags contains behavior options.
type Flags struct {
	UI    string // user interface to run the machine in
	Debug bool   // enable debug logging
	Quiet bool   // only log errors
	Trace bool   // log every executed instruction
}

// Machine contains the emulation settings.
type Machine struct {
	Hz     int    // instructions executed per second
	Cycles int    // instructions to execute in headless mode
	Scale  int    // window pixel scale
	Seed   uint64 // random seed, 0 seeds from the current time
}

// Program options of the virtual machine.
type Program struct {
	Parameters
	Flags
	Machine
}

// Defaults of the machine settings.
const (
	DefaultHz     = 600
	DefaultCycles = 10000
	DefaultScale  = 10
)
