package emulator

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/ezrec/icvm/intcode"
)

// Tape provides sequential I/O for an emulated machine. Inputs are read
// from Input as integers separated by whitespace or commas, and outputs are
// written to Output one per line. In Ascii mode, inputs are raw bytes, and
// outputs below 128 are written as raw bytes.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Ascii  bool

	reader  *bufio.Reader
	scanner *bufio.Scanner
}

// isSeparator reports whether r separates tape words.
func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// scanValues is a bufio.SplitFunc for comma or whitespace separated words.
func scanValues(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if !isSeparator(r) {
			break
		}
		start += width
	}

	for i := start; i < len(data); {
		r, width := utf8.DecodeRune(data[i:])
		if isSeparator(r) {
			return i + width, data[start:i], nil
		}
		i += width
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	return start, nil, nil
}

// Rewind drops any buffered input. The underlying reader is not rewound.
func (tc *Tape) Rewind() {
	tc.reader = nil
	tc.scanner = nil
}

// Read returns the next value from the tape input.
func (tc *Tape) Read() (value intcode.Cell, err error) {
	if tc.Input == nil {
		err = ErrInputExhausted
		return
	}

	if tc.Ascii {
		if tc.reader == nil {
			tc.reader = bufio.NewReader(tc.Input)
		}
		var b byte
		b, err = tc.reader.ReadByte()
		if errors.Is(err, io.EOF) {
			err = ErrInputExhausted
		}
		value = intcode.Cell(b)
		return
	}

	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanner.Split(scanValues)
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = ErrInputExhausted
		}
		return
	}

	word := tc.scanner.Text()
	n, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = errors.Join(ErrTapeValue(word), err)
		return
	}

	value = intcode.Cell(n)
	return
}

// Write sends a value to the tape output.
func (tc *Tape) Write(value intcode.Cell) (err error) {
	if tc.Output == nil {
		return ErrTapeOutput
	}

	if tc.Ascii && value >= 0 && value < 128 {
		_, err = tc.Output.Write([]byte{byte(value)})
		return
	}

	_, err = io.WriteString(tc.Output, strconv.FormatInt(int64(value), 10)+"\n")
	return
}
