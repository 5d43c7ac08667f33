package cpu

// Args contains the operands decoded from an instruction word.
// Only the fields of the instruction format are set, all others are zero.
type Args struct {
	NNN uint16 // 12 bit address
	X   uint8  // register index in bits 8-11
	Y   uint8  // register index in bits 4-7
	KK  uint8  // immediate byte
	N   uint8  // 4 bit count
}

// Decoder extracts the operands of one instruction format from a word.
type Decoder func(word uint16) Args

func decodeNone(uint16) Args {
	return Args{}
}

func decodeNNN(word uint16) Args {
	return Args{NNN: word & 0x0FFF}
}

func decodeXKK(word uint16) Args {
	return Args{X: registerX(word), KK: uint8(word & 0x00FF)}
}

func decodeXY(word uint16) Args {
	return Args{X: registerX(word), Y: registerY(word)}
}

func decodeX(word uint16) Args {
	return Args{X: registerX(word)}
}

func decodeXYN(word uint16) Args {
	return Args{X: registerX(word), Y: registerY(word), N: uint8(word & 0x000F)}
}

// registerX extracts the X register nibble from an instruction word.
func registerX(word uint16) uint8 {
	return uint8((word & 0x0F00) >> 8)
}

// registerY extracts the Y register nibble from an instruction word.
func registerY(word uint16) uint8 {
	return uint8((word & 0x00F0) >> 4)
}
