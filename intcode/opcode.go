package intcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Opcode is an instruction kind, the low two decimal digits of an
// instruction cell.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD = Opcode(1)  // add
	OP_MUL = Opcode(2)  // mul
	OP_IN  = Opcode(3)  // in
	OP_OUT = Opcode(4)  // out
	OP_JT  = Opcode(5)  // jt
	OP_JF  = Opcode(6)  // jf
	OP_LT  = Opcode(7)  // lt
	OP_EQ  = Opcode(8)  // eq
	OP_ARB = Opcode(9)  // arb
	OP_HLT = Opcode(99) // hlt
)

// MAX_OPERANDS is the largest operand count of any opcode.
const MAX_OPERANDS = 3

type opcodeInfo struct {
	operands    int // Number of operand cells following the instruction.
	destination int // Index of the destination operand, or -1.
}

var _opcode_info = map[Opcode]opcodeInfo{
	OP_ADD: {3, 2},
	OP_MUL: {3, 2},
	OP_IN:  {1, 0},
	OP_OUT: {1, -1},
	OP_JT:  {2, -1},
	OP_JF:  {2, -1},
	OP_LT:  {3, 2},
	OP_EQ:  {3, 2},
	OP_ARB: {1, -1},
	OP_HLT: {0, -1},
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() (ok bool) {
	_, ok = _opcode_info[op]
	return
}

// Operands returns the number of operand cells of the opcode.
func (op Opcode) Operands() int {
	return _opcode_info[op].operands
}

// Length returns the number of cells the instruction occupies.
func (op Opcode) Length() int {
	return op.Operands() + 1
}

// Destination returns the index of the operand the opcode writes to.
func (op Opcode) Destination() (index int, ok bool) {
	info, ok := _opcode_info[op]
	if !ok || info.destination < 0 {
		return 0, false
	}

	return info.destination, true
}

// Instruction is a decoded instruction cell.
type Instruction struct {
	Opcode Opcode
	Modes  [MAX_OPERANDS]Mode // Addressing mode of each operand, in operand order.
}

// Decode decodes an instruction cell.
//
// The low two decimal digits are the opcode, each following digit is the
// mode of the next operand. Missing digits are MODE_POSITION. Digits beyond
// the last operand must be zero.
func Decode(cell Cell) (inst Instruction, err error) {
	if cell < 0 {
		err = ErrOpcodeUnknown
		return
	}

	inst.Opcode = Opcode(cell % 100)
	if !inst.Opcode.Valid() {
		err = ErrOpcodeUnknown
		return
	}

	dest, has_dest := inst.Opcode.Destination()

	modes := cell / 100
	for n := range inst.Opcode.Operands() {
		mode := Mode(modes % 10)
		modes /= 10
		if !mode.Valid() {
			err = ErrModeUnknown
			return
		}
		if has_dest && n == dest && !mode.Writable() {
			err = ErrModeDestination
			return
		}
		inst.Modes[n] = mode
	}

	if modes != 0 {
		err = ErrModeExcess
	}

	return
}

// Encode returns the instruction cell for the instruction.
func (inst Instruction) Encode() (cell Cell) {
	cell = Cell(inst.Opcode)
	scale := Cell(100)
	for n := range inst.Opcode.Operands() {
		cell += Cell(inst.Modes[n]) * scale
		scale *= 10
	}

	return
}

// Length returns the number of cells the instruction occupies.
func (inst Instruction) Length() int {
	return inst.Opcode.Length()
}

// String returns the opcode and operand modes, dot separated.
func (inst Instruction) String() string {
	words := []string{inst.Opcode.String()}
	for n := range inst.Opcode.Operands() {
		words = append(words, inst.Modes[n].String())
	}

	return strings.Join(words, ".")
}

// Format returns the assembly language text of the instruction, given the
// raw operand cells that follow it.
func (inst Instruction) Format(operands []Cell) (text string) {
	text = inst.Opcode.String()
	for n, operand := range operands {
		if n == 0 {
			text += " "
		} else {
			text += ", "
		}
		text += formatOperand(inst.Modes[n], operand)
	}

	return
}

// formatOperand returns the assembly language text of one operand.
func formatOperand(mode Mode, value Cell) string {
	switch mode {
	case MODE_POSITION:
		return fmt.Sprintf("[%d]", value)
	case MODE_RELATIVE:
		if value == 0 {
			return "[rb]"
		}
		return fmt.Sprintf("[rb%+d]", value)
	default:
		return strconv.FormatInt(int64(value), 10)
	}
}
