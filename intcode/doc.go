// Package intcode implements the intcode virtual machine and its assembler.
//
// A Machine executes a Program, a flat sequence of signed 64-bit cells, with
// a growable zero-filled memory, a program counter, a relative base register
// and a FIFO input queue. Run executes until the machine produces an output,
// needs an input it does not have, or halts; each of these returns control to
// the caller, so many machines can be driven cooperatively on one goroutine.
//
// The assembler provides a small assembly language for the intcode
// instruction set, supporting labels, equates, raw data and compile-time
// expression evaluation. Program.Disassemble renders programs back into it.
package intcode
