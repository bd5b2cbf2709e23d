package intcode

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITION  = Mode(0) // position
	MODE_IMMEDIATE = Mode(1) // immediate
	MODE_RELATIVE  = Mode(2) // relative
)

// Valid returns true if the mode is one of the three known addressing modes.
func (mode Mode) Valid() bool {
	return mode >= MODE_POSITION && mode <= MODE_RELATIVE
}

// Writable returns true if an operand in this mode can name a destination.
func (mode Mode) Writable() bool {
	return mode == MODE_POSITION || mode == MODE_RELATIVE
}
