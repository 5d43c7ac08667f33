package cpu

// Effect executes an instruction with its decoded arguments.
// Every effect is responsible for advancing the program counter.
type Effect func(c *CPU, args Args) error

// Instruction describes one instruction of the instruction set.
// A word selects the instruction if word&Mask equals Pattern.
type Instruction struct {
	Name    string
	Pattern uint16
	Mask    uint16
	Decode  Decoder
	Execute Effect
}

// Instructions contains all instructions in declaration order, which is the
// order that ties are broken in. No two entries can match the same word.
var Instructions = []*Instruction{
	{Name: "SYS addr", Pattern: 0x0000, Mask: 0xF000, Decode: decodeNNN, Execute: sys},
	{Name: "CLS", Pattern: 0x00E0, Mask: 0xFFFF, Decode: decodeNone, Execute: cls},
	{Name: "RET", Pattern: 0x00EE, Mask: 0xFFFF, Decode: decodeNone, Execute: ret},
	{Name: "JP addr", Pattern: 0x1000, Mask: 0xF000, Decode: decodeNNN, Execute: jp},
	{Name: "CALL addr", Pattern: 0x2000, Mask: 0xF000, Decode: decodeNNN, Execute: call},
	{Name: "SE Vx, byte", Pattern: 0x3000, Mask: 0xF000, Decode: decodeXKK, Execute: seByte},
	{Name: "SNE Vx, byte", Pattern: 0x4000, Mask: 0xF000, Decode: decodeXKK, Execute: sneByte},
	{Name: "SE Vx, Vy", Pattern: 0x5000, Mask: 0xF00F, Decode: decodeXY, Execute: seReg},
	{Name: "LD Vx, byte", Pattern: 0x6000, Mask: 0xF000, Decode: decodeXKK, Execute: ldByte},
	{Name: "ADD Vx, byte", Pattern: 0x7000, Mask: 0xF000, Decode: decodeXKK, Execute: addByte},
	{Name: "LD Vx, Vy", Pattern: 0x8000, Mask: 0xF00F, Decode: decodeXY, Execute: ldReg},
	{Name: "OR Vx, Vy", Pattern: 0x8001, Mask: 0xF00F, Decode: decodeXY, Execute: or},
	{Name: "AND Vx, Vy", Pattern: 0x8002, Mask: 0xF00F, Decode: decodeXY, Execute: and},
	{Name: "XOR Vx, Vy", Pattern: 0x8003, Mask: 0xF00F, Decode: decodeXY, Execute: xor},
	{Name: "ADD Vx, Vy", Pattern: 0x8004, Mask: 0xF00F, Decode: decodeXY, Execute: addReg},
	{Name: "SUB Vx, Vy", Pattern: 0x8005, Mask: 0xF00F, Decode: decodeXY, Execute: sub},
	{Name: "SHR Vx", Pattern: 0x8006, Mask: 0xF00F, Decode: decodeX, Execute: shr},
	{Name: "SUBN Vx, Vy", Pattern: 0x8007, Mask: 0xF00F, Decode: decodeXY, Execute: subn},
	{Name: "SHL Vx", Pattern: 0x800E, Mask: 0xF00F, Decode: decodeX, Execute: shl},
	{Name: "SNE Vx, Vy", Pattern: 0x9000, Mask: 0xF00F, Decode: decodeXY, Execute: sneReg},
	{Name: "LD I, addr", Pattern: 0xA000, Mask: 0xF000, Decode: decodeNNN, Execute: ldI},
	{Name: "JP V0, addr", Pattern: 0xB000, Mask: 0xF000, Decode: decodeNNN, Execute: jpV0},
	{Name: "RND Vx, byte", Pattern: 0xC000, Mask: 0xF000, Decode: decodeXKK, Execute: rnd},
	{Name: "DRW Vx, Vy, nibble", Pattern: 0xD000, Mask: 0xF000, Decode: decodeXYN, Execute: drw},
	{Name: "SKP Vx", Pattern: 0xE09E, Mask: 0xF0FF, Decode: decodeX, Execute: skp},
	{Name: "SKNP Vx", Pattern: 0xE0A1, Mask: 0xF0FF, Decode: decodeX, Execute: sknp},
	{Name: "LD Vx, DT", Pattern: 0xF007, Mask: 0xF0FF, Decode: decodeX, Execute: ldVxDT},
	{Name: "LD Vx, K", Pattern: 0xF00A, Mask: 0xF0FF, Decode: decodeX, Execute: ldVxK},
	{Name: "LD DT, Vx", Pattern: 0xF015, Mask: 0xF0FF, Decode: decodeX, Execute: ldDTVx},
	{Name: "LD ST, Vx", Pattern: 0xF018, Mask: 0xF0FF, Decode: decodeX, Execute: ldSTVx},
	{Name: "ADD I, Vx", Pattern: 0xF01E, Mask: 0xF0FF, Decode: decodeX, Execute: addI},
	{Name: "LD F, Vx", Pattern: 0xF029, Mask: 0xF0FF, Decode: decodeX, Execute: ldF},
	{Name: "LD B, Vx", Pattern: 0xF033, Mask: 0xF0FF, Decode: decodeX, Execute: ldB},
	{Name: "LD [I], Vx", Pattern: 0xF055, Mask: 0xF0FF, Decode: decodeX, Execute: storeRegisters},
	{Name: "LD Vx, [I]", Pattern: 0xF065, Mask: 0xF0FF, Decode: decodeX, Execute: loadRegisters},
}

// Lookup returns the instruction for the word. Instructions without operand
// bits are matched exactly before the masked patterns are checked.
func Lookup(word uint16) (*Instruction, error) {
	for _, ins := range Instructions {
		if ins.Pattern == word {
			return ins, nil
		}
	}
	for _, ins := range Instructions {
		if word&ins.Mask == ins.Pattern {
			return ins, nil
		}
	}
	return nil, ErrUnknownInstruction
}

const opcodeSize = 2

func (c *CPU) next() {
	c.PC += opcodeSize
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.PC += 2 * opcodeSize
		return
	}
	c.PC += opcodeSize
}

func sys(c *CPU, _ Args) error {
	c.next()
	return nil
}

func cls(c *CPU, _ Args) error {
	c.periph.Clear()
	c.next()
	return nil
}

func ret(c *CPU, _ Args) error {
	if c.SP < 0 {
		return ErrStackUnderflow
	}
	c.PC = c.Stack[c.SP]
	c.SP--
	return nil
}

func jp(c *CPU, args Args) error {
	c.PC = args.NNN
	return nil
}

// call pushes the address of the following instruction, so that the
// matching return continues after the call.
func call(c *CPU, args Args) error {
	if c.SP >= len(c.Stack)-1 {
		return ErrStackOverflow
	}
	c.SP++
	c.Stack[c.SP] = c.PC + opcodeSize
	c.PC = args.NNN
	return nil
}

func seByte(c *CPU, args Args) error {
	c.skipIf(c.V[args.X] == args.KK)
	return nil
}

func sneByte(c *CPU, args Args) error {
	c.skipIf(c.V[args.X] != args.KK)
	return nil
}

func seReg(c *CPU, args Args) error {
	c.skipIf(c.V[args.X] == c.V[args.Y])
	return nil
}

func sneReg(c *CPU, args Args) error {
	c.skipIf(c.V[args.X] != c.V[args.Y])
	return nil
}

func ldByte(c *CPU, args Args) error {
	c.V[args.X] = args.KK
	c.next()
	return nil
}

func addByte(c *CPU, args Args) error {
	c.V[args.X] += args.KK
	c.next()
	return nil
}

func ldReg(c *CPU, args Args) error {
	c.V[args.X] = c.V[args.Y]
	c.next()
	return nil
}

func or(c *CPU, args Args) error {
	c.V[args.X] |= c.V[args.Y]
	c.next()
	return nil
}

func and(c *CPU, args Args) error {
	c.V[args.X] &= c.V[args.Y]
	c.next()
	return nil
}

func xor(c *CPU, args Args) error {
	c.V[args.X] ^= c.V[args.Y]
	c.next()
	return nil
}

func addReg(c *CPU, args Args) error {
	sum := uint16(c.V[args.X]) + uint16(c.V[args.Y])
	c.V[args.X] = uint8(sum)
	c.V[0xF] = boolToFlag(sum > 0xFF)
	c.next()
	return nil
}

func sub(c *CPU, args Args) error {
	x, y := c.V[args.X], c.V[args.Y]
	c.V[0xF] = boolToFlag(x > y)
	c.V[args.X] = x - y
	c.next()
	return nil
}

func subn(c *CPU, args Args) error {
	x, y := c.V[args.X], c.V[args.Y]
	c.V[0xF] = boolToFlag(y > x)
	c.V[args.X] = y - x
	c.next()
	return nil
}

func shr(c *CPU, args Args) error {
	x := c.V[args.X]
	c.V[0xF] = x & 0x01
	c.V[args.X] = x >> 1
	c.next()
	return nil
}

func shl(c *CPU, args Args) error {
	x := c.V[args.X]
	c.V[0xF] = x >> 7
	c.V[args.X] = x << 1
	c.next()
	return nil
}

func ldI(c *CPU, args Args) error {
	c.I = args.NNN
	c.next()
	return nil
}

func jpV0(c *CPU, args Args) error {
	c.PC = args.NNN + uint16(c.V[0])
	return nil
}

func rnd(c *CPU, args Args) error {
	c.V[args.X] = uint8(c.random.UintN(256)) & args.KK
	c.next()
	return nil
}

func drw(c *CPU, args Args) error {
	sprite := make([]byte, args.N)
	for i := range sprite {
		sprite[i] = c.read(c.I + uint16(i))
	}
	collision := c.periph.DrawSprite(sprite, int(c.V[args.X]), int(c.V[args.Y]))
	c.V[0xF] = boolToFlag(collision)
	c.next()
	return nil
}

func skp(c *CPU, args Args) error {
	c.skipIf(c.periph.IsKeyDown(c.V[args.X]))
	return nil
}

func sknp(c *CPU, args Args) error {
	c.skipIf(!c.periph.IsKeyDown(c.V[args.X]))
	return nil
}

func ldVxDT(c *CPU, args Args) error {
	c.V[args.X] = c.DelayTimer
	c.next()
	return nil
}

// ldVxK blocks by not advancing the program counter until a key is held.
func ldVxK(c *CPU, args Args) error {
	if !c.periph.AnyKeyDown() {
		return nil
	}
	c.V[args.X] = c.periph.LastKey()
	c.next()
	return nil
}

func ldDTVx(c *CPU, args Args) error {
	c.DelayTimer = c.V[args.X]
	c.next()
	return nil
}

func ldSTVx(c *CPU, args Args) error {
	c.SoundTimer = c.V[args.X]
	c.next()
	return nil
}

func addI(c *CPU, args Args) error {
	c.I += uint16(c.V[args.X])
	c.next()
	return nil
}

func ldF(c *CPU, args Args) error {
	digit := uint16(c.V[args.X] & 0x0F)
	c.I = FontAddress + digit*FontGlyphSize
	c.next()
	return nil
}

func ldB(c *CPU, args Args) error {
	value := c.V[args.X]
	c.write(c.I, value/100)
	c.write(c.I+1, value/10%10)
	c.write(c.I+2, value%10)
	c.next()
	return nil
}

func storeRegisters(c *CPU, args Args) error {
	for i := range uint16(args.X) + 1 {
		c.write(c.I+i, c.V[i])
	}
	c.next()
	return nil
}

func loadRegisters(c *CPU, args Args) error {
	for i := range uint16(args.X) + 1 {
		c.V[i] = c.read(c.I + i)
	}
	c.next()
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
