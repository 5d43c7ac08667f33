// Package disasm converts CHIP-8 instruction words into assembly text.
// The instruction identity and mnemonic are taken from the retrogolib
// CHIP-8 opcode table, the operands are formatted from the word itself.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// sysName is the mnemonic of the machine code routine call 0nnn, which the
// retrogolib opcode table does not list.
const sysName = "sys"

// Disassemble returns the assembly text of the instruction word.
// Words that are not a known instruction are returned as a data word.
func Disassemble(word uint16) string {
	if isSys(word) {
		return fmt.Sprintf("%s %s", sysName, address(word))
	}

	ins, ok := Instruction(word)
	if !ok {
		return fmt.Sprintf(".word $%04X", word)
	}

	if params := formatParams(ins.Name, word); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// Instruction returns the retrogolib instruction that the word encodes.
func Instruction(word uint16) (*chip8.Instruction, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return op.Instruction, op.Instruction != nil
		}
	}
	return nil, false
}

// isSys returns whether the word is a 0nnn routine call. CLS and RET share
// the first nibble and take precedence.
func isSys(word uint16) bool {
	return word&0xF000 == 0x0000 && word != chip8.Opcode00E0.Value && word != chip8.Opcode00EE.Value
}

func formatParams(name string, word uint16) string {
	switch name {
	case chip8.ClsName, chip8.RetName:
		return ""
	case chip8.JpName:
		if word&0xF000 == 0xB000 {
			return fmt.Sprintf("V0, %s", address(word))
		}
		return address(word)
	case chip8.CallName:
		return address(word)
	case chip8.SeName, chip8.SneName:
		return formatCompare(word)
	case chip8.LdName:
		return formatLoad(word)
	case chip8.AddName:
		return formatAdd(word)
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName:
		return fmt.Sprintf("%s, %s", registerX(word), registerY(word))
	case chip8.ShrName, chip8.ShlName, chip8.SkpName, chip8.SknpName:
		return registerX(word)
	case chip8.RndName:
		return fmt.Sprintf("%s, %s", registerX(word), immediate(word))
	case chip8.DrwName:
		return fmt.Sprintf("%s, %s, $%X", registerX(word), registerY(word), word&0x000F)
	}
	return ""
}

func formatCompare(word uint16) string {
	switch word & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("%s, %s", registerX(word), immediate(word))
	default:
		return fmt.Sprintf("%s, %s", registerX(word), registerY(word))
	}
}

func formatLoad(word uint16) string {
	x := registerX(word)
	switch word & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("%s, %s", x, immediate(word))
	case 0x8000:
		return fmt.Sprintf("%s, %s", x, registerY(word))
	case 0xA000:
		return fmt.Sprintf("I, %s", address(word))
	}

	switch word & 0x00FF {
	case 0x07:
		return x + ", DT"
	case 0x0A:
		return x + ", K"
	case 0x15:
		return "DT, " + x
	case 0x18:
		return "ST, " + x
	case 0x29:
		return "F, " + x
	case 0x33:
		return "B, " + x
	case 0x55:
		return "[I], " + x
	case 0x65:
		return x + ", [I]"
	}
	return ""
}

func formatAdd(word uint16) string {
	x := registerX(word)
	switch word & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("%s, %s", x, immediate(word))
	case 0x8000:
		return fmt.Sprintf("%s, %s", x, registerY(word))
	default:
		return "I, " + x
	}
}

func registerX(word uint16) string {
	return fmt.Sprintf("V%X", (word&0x0F00)>>8)
}

func registerY(word uint16) string {
	return fmt.Sprintf("V%X", (word&0x00F0)>>4)
}

func immediate(word uint16) string {
	return fmt.Sprintf("$%02X", word&0x00FF)
}

func address(word uint16) string {
	return fmt.Sprintf("$%03X", word&0x0FFF)
}
