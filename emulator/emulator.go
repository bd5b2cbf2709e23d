// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator attaches an intcode machine to a tape, so that programs
// can be run against streams.
package emulator

import (
	"log"

	"github.com/ezrec/icvm/intcode"
)

// Emulator state. Machine + Tape.
type Emulator struct {
	Verbose          bool // If set, enables verbose logging.
	*intcode.Machine      // Reference to the machine.

	Tape Tape // Tape IO channel.
}

// NewEmulator creates a new emulator for a program.
func NewEmulator(program intcode.Program) (emu *Emulator) {
	emu = &Emulator{
		Machine: intcode.NewMachine(program),
	}

	return
}

// Reset the machine to its program, and drop buffered tape input.
func (emu *Emulator) Reset() {
	emu.Machine.Reset()
	emu.Tape.Rewind()
}

// Tick runs the machine to its next suspension point, and services it from
// the tape. done is set once the machine has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Machine.Verbose = emu.Verbose

	pc := emu.Machine.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
		}
	}()

	result, err := emu.Machine.Run()
	pc = emu.Machine.Pc
	if err != nil {
		return
	}

	switch result.State {
	case intcode.STATE_OUTPUT:
		err = emu.Tape.Write(result.Value)
	case intcode.STATE_NEED_INPUT:
		var value intcode.Cell
		value, err = emu.Tape.Read()
		if err != nil {
			return
		}
		if emu.Verbose {
			log.Printf("tape: input %d", value)
		}
		emu.Machine.AddInput(value)
	case intcode.STATE_HALTED:
		done = true
	}

	return
}

// Run ticks the emulator until the machine halts.
func (emu *Emulator) Run() (err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	return
}
