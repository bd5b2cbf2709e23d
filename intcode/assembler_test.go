package intcode

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, lines ...string) (prog Program, err error) {
	t.Helper()

	asm := &Assembler{}
	return asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
}

func TestAssembler_Position(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"; position-mode equality test against 8",
		"        in   [value]",
		"        eq   [value], [eight], [value]",
		"        out  [value]",
		"        hlt",
		"value:  .data -1",
		"eight:  .data 8",
	)
	assert.NoError(err)
	assert.Equal(Program{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, prog)
}

func TestAssembler_Quine(t *testing.T) {
	prog, err := assemble(t,
		".equ COUNTER 100",
		".equ FLAG $(COUNTER + 1)",
		".equ LENGTH 16",
		"loop:\tarb 1",
		"\tout [rb-1]",
		"\tadd [COUNTER], 1, [COUNTER]",
		"\teq [COUNTER], LENGTH, [FLAG] ; done?",
		"\tjf [FLAG], loop",
		"\thlt",
	)
	assert.NoError(t, err)

	want := Program{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("assembly mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembler_Operands(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line  string
		cells Program
	}){
		{"in [rb+3]", Program{203, 3}},
		{"in [ rb - 3 ]", Program{203, -3}},
		{"add 1, 2, [rb]", Program{21101, 1, 2, 0}},
		{"mul [4], -3, [rb+0x10]", Program{21002, 4, -3, 16}},
		{"out 0x10", Program{104, 16}},
		{"out $(3 * 7)", Program{104, 21}},
		{"out $(max(2, 9))", Program{104, 9}},
		{"out $(LINENO)", Program{104, 1}},
		{"out MEMORY_LIMIT", Program{104, MEMORY_LIMIT}},
		{"lt [1], [2], [3]", Program{7, 1, 2, 3}},
		{"jt 1, 0", Program{1105, 1, 0}},
		{".data 1, -2, $(1 + 2)", Program{1, -2, 3}},
		{"label: hlt", Program{99}},
	}

	for _, entry := range table {
		prog, err := assemble(t, entry.line)
		assert.NoError(err, entry.line)
		assert.Equal(entry.cells, prog, entry.line)
	}
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("PHASE", "5")
	asm.Predefine("SIGNAL", "$(PHASE * 2)")

	prog, err := asm.Parse(strings.NewReader("out PHASE\nout SIGNAL\nhlt"))
	assert.NoError(err)
	assert.Equal(Program{104, 5, 104, 10, 99}, prog)
	assert.Equal("5", asm.Equate["PHASE"])
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		lines  []string
		err    error
		lineno int
	}){
		{"imm_dest", []string{"hlt", "add 1, 2, 3"}, ErrOperandDestination, 2},
		{"imm_in", []string{"in 5"}, ErrOperandDestination, 1},
		{"mnemonic", []string{"nop"}, ErrMnemonicInvalid, 1},
		{"too_few", []string{"add 1, 2"}, ErrOperandCount, 1},
		{"too_many", []string{"hlt 1"}, ErrOperandCount, 1},
		{"label_dup", []string{"a: hlt", "a: hlt"}, ErrLabelDuplicate, 2},
		{"label_syntax", []string{"1a: hlt"}, ErrLabelSyntax, 1},
		{"label_missing", []string{"jt 1, nowhere"}, ErrLabelMissing("nowhere"), 1},
		{"rbx", []string{"out [rbx]"}, ErrLabelMissing("rbx"), 1},
		{"number", []string{"out 12x"}, ErrParseNumber("12x"), 1},
		{"expression", []string{"out $(1 +)"}, ErrParseExpression("1 +"), 1},
		{"expression_type", []string{"out $('a')"}, ErrParseExpression("'a'"), 1},
		{"equ_syntax", []string{".equ X"}, ErrEquateSyntax, 1},
		{"equ_dup", []string{".equ X 1", ".equ X 2"}, ErrEquateDuplicate, 2},
		{"equ_loop", []string{".equ X Y", ".equ Y X", "out X"}, ErrEquateSyntax, 3},
		{"data", []string{".data"}, ErrDataMissing, 1},
		{"bracket", []string{"out [5"}, ErrOperandSyntax, 1},
		{"empty_operand", []string{"add 1, , [2]"}, ErrOperandSyntax, 1},
	}

	for _, entry := range table {
		prog, err := assemble(t, entry.lines...)
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax ErrSyntax
		if assert.ErrorAs(err, &syntax, entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
			assert.Equal(entry.lines[entry.lineno-1], syntax.Line, entry.name)
		}
	}
}

func TestAssembler_Disassemble(t *testing.T) {
	for _, text := range []string{
		"3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31,1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104,999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99",
		"109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99",
		"3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5",
		"21002,4,3,-1,22201,1,2,3,1,2",
		"204,-9223372036854775808,109,9223372036854775807,2201,-9223372036854775808,-1,0,99",
	} {
		prog := mustParse(t, text)

		var lines []string
		for _, line := range prog.Disassemble() {
			lines = append(lines, line)
		}

		got, err := assemble(t, lines...)
		assert.NoError(t, err, text)
		if diff := cmp.Diff(prog, got); diff != "" {
			t.Errorf("%v: round trip mismatch (-want +got):\n%s", text, diff)
		}
	}
}
