package intcode

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Cell is one unit of machine memory. The same storage holds opcodes,
// operands, addresses and data.
type Cell int64

// Program is the immutable initial memory image of a machine.
type Program []Cell

// ParseProgram reads a program as a single line of comma separated signed
// decimal integers.
func ParseProgram(r io.Reader) (prog Program, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	text := strings.TrimSpace(string(data))
	if len(text) == 0 {
		err = ErrProgramEmpty
		return
	}

	words := strings.Split(text, ",")
	// Permit a single trailing comma.
	if len(words) > 1 && len(strings.TrimSpace(words[len(words)-1])) == 0 {
		words = words[:len(words)-1]
	}

	prog = make(Program, 0, len(words))
	for n, word := range words {
		word = strings.TrimSpace(word)
		var v64 int64
		v64, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = ErrProgramText{Index: n, Text: word}
			prog = nil
			return
		}
		prog = append(prog, Cell(v64))
	}

	return
}

// String returns the program in its comma separated text form.
func (prog Program) String() string {
	var sb strings.Builder
	for n, cell := range prog {
		if n > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(int64(cell), 10))
	}

	return sb.String()
}

// Disassemble returns an iteration of the address and assembly text of each
// instruction of the program. Cells that do not decode as an instruction, or
// whose operands run past the end of the program, are emitted as .data.
func (prog Program) Disassemble() iter.Seq2[int, string] {
	return func(yield func(ip int, text string) bool) {
		for ip := 0; ip < len(prog); {
			var text string
			inst, err := Decode(prog[ip])
			length := inst.Length()
			if err != nil || ip+length > len(prog) {
				text = fmt.Sprintf(".data %d", prog[ip])
				length = 1
			} else {
				text = inst.Format(prog[ip+1 : ip+length])
			}
			if !yield(ip, text) {
				return
			}
			ip += length
		}
	}
}
