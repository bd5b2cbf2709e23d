package intcode

import (
	"errors"
	"fmt"
	"iter"
	"log"
)

// Machine is the execution context of one intcode program.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Memory Memory // Working memory, seeded from the program on reset.
	Pc     int    // Address of the next instruction.
	Base   Cell   // Relative base register.
	Input  Queue  // Pending inputs.

	State State // State reported by the last Tick.
	Ticks int   // Instructions completed since reset.

	program Program
}

// NewMachine creates a machine for a program. The program is never
// modified, and may be shared by many machines.
func NewMachine(program Program) (m *Machine) {
	m = &Machine{
		program: program,
	}

	m.Reset()

	return
}

// Program returns the program the machine resets to.
func (m *Machine) Program() Program {
	return m.program
}

// Reset the machine state.
// - Restores memory from the program.
// - Clears the program counter, relative base and input queue.
// - Zeros the tick counter.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("intcode: reset")
	}

	m.Memory.Reset(m.program)
	m.Pc = 0
	m.Base = 0
	m.Input.Reset()
	m.State = STATE_RUNNING
	m.Ticks = 0
}

// AddInput appends values to the input queue.
func (m *Machine) AddInput(values ...Cell) *Machine {
	m.Input.Push(values...)
	return m
}

// Halted returns true once the machine has executed a halt.
func (m *Machine) Halted() bool {
	return m.State == STATE_HALTED
}

// Store writes a value to memory.
func (m *Machine) Store(addr int, value Cell) (err error) {
	return m.Memory.Store(addr, value)
}

// Load reads the operand cell at addr, and resolves it through mode.
func (m *Machine) Load(mode Mode, addr int) (value Cell, err error) {
	operand, err := m.Memory.Load(addr)
	if err != nil {
		return
	}

	return m.value(mode, operand)
}

// value returns the value named by an operand.
func (m *Machine) value(mode Mode, operand Cell) (value Cell, err error) {
	if mode == MODE_IMMEDIATE {
		return operand, nil
	}

	addr, err := m.resolve(mode, operand)
	if err != nil {
		return
	}

	return m.Memory.Load(addr)
}

// resolve returns the memory address named by an operand.
func (m *Machine) resolve(mode Mode, operand Cell) (addr int, err error) {
	switch mode {
	case MODE_POSITION:
		addr, err = address(operand)
	case MODE_RELATIVE:
		addr, err = address(m.Base + operand)
	case MODE_IMMEDIATE:
		err = ErrModeDestination
	default:
		err = ErrModeUnknown
	}

	return
}

// Run executes instructions until the machine produces an output, needs an
// input, or halts.
func (m *Machine) Run() (result Result, err error) {
	for {
		result, err = m.Tick()
		if err != nil || result.State != STATE_RUNNING {
			return
		}
	}
}

// Outputs returns an iteration of the outputs of the machine. Iteration
// ends when the machine halts or needs an input; errors are yielded once,
// and end the iteration.
func (m *Machine) Outputs() iter.Seq2[Cell, error] {
	return func(yield func(value Cell, err error) bool) {
		for {
			result, err := m.Run()
			if err != nil {
				yield(0, err)
				return
			}
			if result.State != STATE_OUTPUT {
				return
			}
			if !yield(result.Value, nil) {
				return
			}
		}
	}
}

// Tick executes a single instruction.
func (m *Machine) Tick() (result Result, err error) {
	pc := m.Pc
	var cell Cell

	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction{Pc: pc, Cell: cell}, err)
			return
		}
		m.State = result.State
	}()

	cell, err = m.Memory.Load(pc)
	if err != nil {
		return
	}

	inst, err := Decode(cell)
	if err != nil {
		return
	}

	var operands [MAX_OPERANDS]Cell
	for n := range inst.Opcode.Operands() {
		operands[n], err = m.Memory.Load(pc + 1 + n)
		if err != nil {
			return
		}
	}

	if m.Verbose {
		log.Printf("%04d: %v", pc, inst.Format(operands[:inst.Opcode.Operands()]))
	}

	arg := func(n int) (Cell, error) {
		return m.value(inst.Modes[n], operands[n])
	}

	next_pc := pc + inst.Length()

	switch inst.Opcode {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		var a, b Cell
		a, err = arg(0)
		if err != nil {
			return
		}
		b, err = arg(1)
		if err != nil {
			return
		}
		var dest int
		dest, err = m.resolve(inst.Modes[2], operands[2])
		if err != nil {
			return
		}
		var value Cell
		switch inst.Opcode {
		case OP_ADD:
			value = a + b
		case OP_MUL:
			value = a * b
		case OP_LT:
			if a < b {
				value = 1
			}
		case OP_EQ:
			if a == b {
				value = 1
			}
		}
		err = m.Memory.Store(dest, value)
		if err != nil {
			return
		}
	case OP_IN:
		input, ok := m.Input.Peek()
		if !ok {
			// Leave pc on the input instruction, to retry.
			result.State = STATE_NEED_INPUT
			return
		}
		var dest int
		dest, err = m.resolve(inst.Modes[0], operands[0])
		if err != nil {
			return
		}
		err = m.Memory.Store(dest, input)
		if err != nil {
			return
		}
		m.Input.Pop()
	case OP_OUT:
		var value Cell
		value, err = arg(0)
		if err != nil {
			return
		}
		result = Result{State: STATE_OUTPUT, Value: value}
	case OP_JT, OP_JF:
		var cond, target Cell
		cond, err = arg(0)
		if err != nil {
			return
		}
		target, err = arg(1)
		if err != nil {
			return
		}
		if (cond != 0) == (inst.Opcode == OP_JT) {
			next_pc, err = address(target)
			if err != nil {
				return
			}
		}
	case OP_ARB:
		var value Cell
		value, err = arg(0)
		if err != nil {
			return
		}
		m.Base += value
	case OP_HLT:
		result.State = STATE_HALTED
		return
	}

	m.Pc = next_pc
	m.Ticks++

	return
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	regs := []string{"pc", "base", "state", "input", "memory", "ticks"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%d", m.Pc)
		case "base":
			strval = fmt.Sprintf("%d", m.Base)
		case "state":
			strval = m.State.String()
		case "input":
			strval = fmt.Sprintf("%d queued", m.Input.Len())
		case "memory":
			strval = fmt.Sprintf("%d cells", m.Memory.Len())
		case "ticks":
			strval = fmt.Sprintf("%d", m.Ticks)
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}
