package intcode

import (
	"math"
)

const (
	MEMORY_LIMIT = 1 << 24 // Default maximum number of memory cells.
)

// Memory is the growable, zero-filled cell store of a machine.
type Memory struct {
	Cells []Cell // Explicit cells; all cells beyond are zero.
	Limit int    // Maximum number of cells. Zero selects MEMORY_LIMIT.
}

// address converts a cell value into a memory address.
func address(value Cell) (addr int, err error) {
	if value < 0 {
		err = ErrAddressNegative
		return
	}
	if uint64(value) > math.MaxInt {
		err = ErrAddressLimit
		return
	}

	return int(value), nil
}

// grow zero-extends memory so that addr is in range.
func (mem *Memory) grow(addr int) (err error) {
	if addr < 0 {
		return ErrAddressNegative
	}

	limit := mem.Limit
	if limit == 0 {
		limit = MEMORY_LIMIT
	}
	if addr >= limit {
		return ErrAddressLimit
	}

	if addr >= len(mem.Cells) {
		mem.Cells = append(mem.Cells, make([]Cell, addr+1-len(mem.Cells))...)
	}

	return
}

// Len returns the number of cells currently held.
func (mem *Memory) Len() int {
	return len(mem.Cells)
}

// Load returns the cell at addr, growing memory to include it.
func (mem *Memory) Load(addr int) (value Cell, err error) {
	err = mem.grow(addr)
	if err != nil {
		return
	}

	return mem.Cells[addr], nil
}

// Store writes value at addr, growing memory to include it.
func (mem *Memory) Store(addr int, value Cell) (err error) {
	err = mem.grow(addr)
	if err != nil {
		return
	}

	mem.Cells[addr] = value
	return
}

// Reset replaces the memory contents with a copy of the program.
func (mem *Memory) Reset(program Program) {
	mem.Cells = append(mem.Cells[:0], program...)
}
