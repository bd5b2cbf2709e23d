package intcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	P := MODE_POSITION
	I := MODE_IMMEDIATE
	R := MODE_RELATIVE

	table := [](struct {
		name  string
		cell  Cell
		inst  Instruction
		err   error
		lenth int
	}){
		{"add", 1, Instruction{OP_ADD, [3]Mode{P, P, P}}, nil, 4},
		{"mul_imm", 1002, Instruction{OP_MUL, [3]Mode{P, I, P}}, nil, 4},
		{"mul_imm_imm", 1102, Instruction{OP_MUL, [3]Mode{I, I, P}}, nil, 4},
		{"add_rel_dest", 21101, Instruction{OP_ADD, [3]Mode{I, I, R}}, nil, 4},
		{"in", 3, Instruction{OP_IN, [3]Mode{P, P, P}}, nil, 2},
		{"in_rel", 203, Instruction{OP_IN, [3]Mode{R, P, P}}, nil, 2},
		{"out_imm", 104, Instruction{OP_OUT, [3]Mode{I, P, P}}, nil, 2},
		{"out_rel", 204, Instruction{OP_OUT, [3]Mode{R, P, P}}, nil, 2},
		{"jt", 1105, Instruction{OP_JT, [3]Mode{I, I, P}}, nil, 3},
		{"jf", 6, Instruction{OP_JF, [3]Mode{P, P, P}}, nil, 3},
		{"lt", 1107, Instruction{OP_LT, [3]Mode{I, I, P}}, nil, 4},
		{"eq", 1008, Instruction{OP_EQ, [3]Mode{P, I, P}}, nil, 4},
		{"arb", 109, Instruction{OP_ARB, [3]Mode{I, P, P}}, nil, 2},
		{"hlt", 99, Instruction{OP_HLT, [3]Mode{P, P, P}}, nil, 1},
		{"unknown", 42, Instruction{}, ErrOpcodeUnknown, 0},
		{"zero", 0, Instruction{}, ErrOpcodeUnknown, 0},
		{"negative", -1, Instruction{}, ErrOpcodeUnknown, 0},
		{"bad_mode", 304, Instruction{}, ErrModeUnknown, 0},
		{"imm_dest", 11101, Instruction{}, ErrModeDestination, 0},
		{"imm_in", 103, Instruction{}, ErrModeDestination, 0},
		{"excess", 1004, Instruction{}, ErrModeExcess, 0},
		{"excess_hlt", 199, Instruction{}, ErrModeExcess, 0},
	}

	for _, entry := range table {
		inst, err := Decode(entry.cell)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.name)
			continue
		}
		assert.NoError(err, entry.name)
		assert.Equal(entry.inst, inst, entry.name)
		assert.Equal(entry.lenth, inst.Length(), entry.name)
		assert.Equal(entry.cell, inst.Encode(), entry.name)
	}
}

func TestOpcode_Destination(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []Opcode{OP_ADD, OP_MUL, OP_LT, OP_EQ} {
		index, ok := op.Destination()
		assert.True(ok, op.String())
		assert.Equal(2, index, op.String())
	}

	index, ok := OP_IN.Destination()
	assert.True(ok)
	assert.Equal(0, index)

	for _, op := range []Opcode{OP_OUT, OP_JT, OP_JF, OP_ARB, OP_HLT, Opcode(50)} {
		_, ok := op.Destination()
		assert.False(ok, op.String())
	}
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	inst, err := Decode(21002)
	assert.NoError(err)
	assert.Equal("mul.position.immediate.relative", inst.String())
	assert.Equal("mul [4], 3, [rb-1]", inst.Format([]Cell{4, 3, -1}))

	inst, err = Decode(204)
	assert.NoError(err)
	assert.Equal("out [rb]", inst.Format([]Cell{0}))
	assert.Equal("out [rb+7]", inst.Format([]Cell{7}))

	inst, err = Decode(99)
	assert.NoError(err)
	assert.Equal("hlt", inst.Format(nil))

	assert.Equal("Opcode(42)", Opcode(42).String())
	assert.Equal("Mode(7)", Mode(7).String())
	assert.Equal("need-input", STATE_NEED_INPUT.String())
	assert.Equal("output(-12)", Result{State: STATE_OUTPUT, Value: -12}.String())
	assert.Equal("halted", Result{State: STATE_HALTED}.String())
}
