package cpu

import "errors"

var (
	// ErrUnknownInstruction is returned when a fetched word matches no instruction.
	ErrUnknownInstruction = errors.New("unknown instruction")
	// ErrStackUnderflow is returned when a return executes with an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrStackOverflow is returned when a call executes with a full call stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrProgramTooLarge is returned when a program does not fit into the program memory.
	ErrProgramTooLarge = errors.New("program too large")
)
