package intcode

import (
	"errors"

	"github.com/ezrec/icvm/translate"
)

var f = translate.From

var (
	// Instruction decode errors
	ErrOpcodeUnknown   = errors.New(f("opcode unknown"))
	ErrModeUnknown     = errors.New(f("addressing mode unknown"))
	ErrModeDestination = errors.New(f("immediate destination"))
	ErrModeExcess      = errors.New(f("excess mode digits"))

	// Memory errors
	ErrAddressNegative = errors.New(f("address negative"))
	ErrAddressLimit    = errors.New(f("address beyond memory limit"))

	// Program text errors
	ErrProgramEmpty = errors.New(f("program empty"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrDataMissing        = errors.New(f(".data without values"))
	ErrMnemonicInvalid    = errors.New(f("mnemonic invalid"))
	ErrOperandCount       = errors.New(f("operand count"))
	ErrOperandSyntax      = errors.New(f("operand syntax"))
	ErrOperandDestination = errors.New(f("destination must be an address"))
)

// ErrInstruction locates an error raised while executing an instruction.
// It is joined to every decode and execute error returned by a Machine.
type ErrInstruction struct {
	Pc   int  // Address of the instruction.
	Cell Cell // Instruction cell at Pc.
}

func (ei ErrInstruction) Error() string {
	return f("instruction %d at pc %d", int64(ei.Cell), ei.Pc)
}

// Is matches an ErrInstruction at the same location. The zero
// ErrInstruction matches any location.
func (ei ErrInstruction) Is(err error) (ok bool) {
	target, ok := err.(ErrInstruction)
	if !ok {
		return
	}

	return target == ErrInstruction{} || target == ei
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrProgramText locates a malformed cell in program text.
type ErrProgramText struct {
	Index int    // Index of the cell in the program.
	Text  string // Text of the cell.
}

func (err ErrProgramText) Error() string {
	return f("cell %d '%v' is not a number", err.Index, err.Text)
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
