// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package intcode

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":       "0",
	"MEMORY_LIMIT": fmt.Sprintf("%d", MEMORY_LIMIT),
}

// Maximum depth of equates defined in terms of other equates.
const equateDepth = 16

// mnemonicMap is a map of mnemonics to opcodes.
var mnemonicMap = map[string]Opcode{}

func init() {
	for op := range _opcode_info {
		mnemonicMap[op.String()] = op
	}
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// Assembler is a two pass assembler for intcode programs.
//
// Each line holds an optional "label:", then either a mnemonic and its
// comma separated operands, a ".data" directive with comma separated
// values, or an ".equ NAME VALUE" directive. Text after ';' is a comment.
//
// Operands are written as:
//
//	value       immediate
//	[value]     positional
//	[rb+value]  relative (also [rb-value] and [rb])
//
// A value is a number, a label, an equate or a $(expr) expression
// evaluated at assembly time.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// statement is one instruction or data line from the first pass.
type statement struct {
	lineNo int
	line   string
	ip     int
	opcode Opcode   // Zero for .data
	words  []string // Operand or data words.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// splitOperands splits on commas that are not inside parentheses.
func splitOperands(text string) (words []string) {
	depth := 0
	start := 0
	for n, c := range text {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				words = append(words, strings.TrimSpace(text[start:n]))
				start = n + 1
			}
		}
	}
	last := strings.TrimSpace(text[start:])
	if len(last) != 0 || len(words) != 0 {
		words = append(words, last)
	}

	return
}

// cutSpace splits text at the first run of white space.
func cutSpace(text string) (word string, rest string) {
	n := strings.IndexFunc(text, unicode.IsSpace)
	if n < 0 {
		return text, ""
	}

	return text[:n], strings.TrimSpace(text[n:])
}

// stripComment removes a trailing comment, ignoring ';' inside $(...).
func stripComment(line string) string {
	depth := 0
	for n, c := range line {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ';':
			if depth == 0 {
				return line[:n]
			}
		}
	}

	return line
}

// defineLabel records a label at an address.
func (asm *Assembler) defineLabel(label string, ip int) (err error) {
	if !identifierRe.MatchString(label) {
		return ErrLabelSyntax
	}
	_, is_label := asm.Label[label]
	_, is_equate := asm.Equate[label]
	if is_label || is_equate {
		return ErrLabelDuplicate
	}

	asm.Label[label] = ip
	if asm.Verbose {
		log.Printf("asm: %v = %d", label, ip)
	}

	return
}

// parseLine parses a single line into a statement. A nil statement is
// returned for lines that emit no cells.
func (asm *Assembler) parseLine(line string, lineno int, ip int) (stmt *statement, err error) {
	text := strings.TrimSpace(stripComment(line))

	// label:
	if colon := strings.Index(text, ":"); colon >= 0 && !strings.Contains(text[:colon], "(") {
		err = asm.defineLabel(strings.TrimSpace(text[:colon]), ip)
		if err != nil {
			return
		}
		text = strings.TrimSpace(text[colon+1:])
	}

	if len(text) == 0 {
		return
	}

	mnemonic, rest := cutSpace(text)

	switch mnemonic {
	case ".equ":
		name, value := cutSpace(rest)
		if len(value) == 0 || !identifierRe.MatchString(name) {
			err = ErrEquateSyntax
			return
		}
		_, is_label := asm.Label[name]
		_, is_equate := asm.Equate[name]
		if is_label || is_equate {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[name] = value
		return
	case ".data":
		words := splitOperands(rest)
		if len(words) == 0 {
			err = ErrDataMissing
			return
		}
		stmt = &statement{lineNo: lineno, line: line, ip: ip, words: words}
		return
	}

	op, ok := mnemonicMap[mnemonic]
	if !ok {
		err = ErrMnemonicInvalid
		return
	}

	words := splitOperands(rest)
	if len(words) != op.Operands() {
		err = ErrOperandCount
		return
	}

	stmt = &statement{lineNo: lineno, line: line, ip: ip, opcode: op, words: words}
	return
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string, depth int) (value Cell, err error) {
	if len(word) == 0 {
		err = ErrOperandSyntax
		return
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2 : len(word)-1])
	}

	if ip, ok := asm.Label[word]; ok {
		return Cell(ip), nil
	}

	if equ, ok := asm.Equate[word]; ok {
		if depth >= equateDepth {
			err = ErrEquateSyntax
			return
		}
		return asm.valueOf(equ, depth+1)
	}

	v64, perr := strconv.ParseInt(word, 0, 64)
	if perr != nil {
		if identifierRe.MatchString(word) {
			err = ErrLabelMissing(word)
		} else {
			err = ErrParseNumber(word)
		}
		return
	}

	return Cell(v64), nil
}

// plainValueOf returns the value of a label, number or chain of equates
// that does not involve an expression.
func (asm *Assembler) plainValueOf(word string) (value Cell, ok bool) {
	for range equateDepth {
		if ip, is_label := asm.Label[word]; is_label {
			return Cell(ip), true
		}
		equ, is_equate := asm.Equate[word]
		if !is_equate {
			break
		}
		word = equ
	}

	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		return
	}

	return Cell(v64), true
}

// operandOf returns the mode and value of an operand word.
func (asm *Assembler) operandOf(word string) (mode Mode, value Cell, err error) {
	if !strings.HasPrefix(word, "[") {
		mode = MODE_IMMEDIATE
		value, err = asm.valueOf(word, 0)
		return
	}

	if !strings.HasSuffix(word, "]") {
		err = ErrOperandSyntax
		return
	}

	inner := strings.TrimSpace(word[1 : len(word)-1])
	compact := strings.ReplaceAll(inner, " ", "")
	if compact != "rb" && !strings.HasPrefix(compact, "rb+") && !strings.HasPrefix(compact, "rb-") {
		mode = MODE_POSITION
		value, err = asm.valueOf(inner, 0)
		return
	}

	mode = MODE_RELATIVE
	offset := strings.TrimSpace(inner[2:])
	switch {
	case len(offset) == 0:
		value = 0
	case offset[0] == '+':
		value, err = asm.valueOf(strings.TrimSpace(offset[1:]), 0)
	case offset[0] == '-':
		word := strings.TrimSpace(offset[1:])
		// A literal is parsed with its sign, so the most negative offset fits.
		if v64, perr := strconv.ParseInt("-"+word, 0, 64); perr == nil {
			value = Cell(v64)
			return
		}
		value, err = asm.valueOf(word, 0)
		value = -value
	default:
		err = ErrOperandSyntax
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value Cell, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key := range asm.Equate {
		equ, ok := asm.plainValueOf(key)
		if !ok {
			// Ignore equates that are not integers, or that
			// refer to other expressions.
			continue
		}
		pred[key] = starlark.MakeInt64(int64(equ))
	}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = Cell(st_int64)
	return
}

// emit assembles a statement into cells.
func (asm *Assembler) emit(stmt *statement) (cells []Cell, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%d", stmt.lineNo)

	if stmt.opcode == 0 {
		for _, word := range stmt.words {
			var value Cell
			value, err = asm.valueOf(word, 0)
			if err != nil {
				return
			}
			cells = append(cells, value)
		}
		return
	}

	inst := Instruction{Opcode: stmt.opcode}
	values := make([]Cell, len(stmt.words))
	dest, has_dest := stmt.opcode.Destination()
	for n, word := range stmt.words {
		inst.Modes[n], values[n], err = asm.operandOf(word)
		if err != nil {
			return
		}
		if has_dest && n == dest && !inst.Modes[n].Writable() {
			err = ErrOperandDestination
			return
		}
	}

	cells = append([]Cell{inst.Encode()}, values...)
	return
}

// Parse an input stream, returning the assembled program.
func (asm *Assembler) Parse(input io.Reader) (prog Program, err error) {
	asm.Label = map[string]int{}
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)

	var stmts []*statement

	ip := 0
	lineno := 0
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		var stmt *statement
		stmt, err = asm.parseLine(line, lineno, ip)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
		if stmt == nil {
			continue
		}
		stmts = append(stmts, stmt)
		if stmt.opcode == 0 {
			ip += len(stmt.words)
		} else {
			ip += stmt.opcode.Length()
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	prog = make(Program, 0, ip)
	for _, stmt := range stmts {
		var cells []Cell
		cells, err = asm.emit(stmt)
		if err != nil {
			prog = nil
			err = ErrSyntax{LineNo: stmt.lineNo, Line: stmt.line, Err: err}
			return
		}
		if asm.Verbose {
			log.Printf("asm: %04d: %v", stmt.ip, cells)
		}
		prog = append(prog, cells...)
	}

	return
}
