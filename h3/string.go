package h3

import (
	"fmt"
	"strconv"
)

// String returns the canonical 16 digit lowercase hexadecimal form of c.
func (c Cell) String() string {
	return IndexToString(uint64(c))
}

// IndexToString formats any 64-bit index as 16 zero padded lowercase
// hexadecimal digits.
func IndexToString(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

// IndexFromString parses up to 16 hexadecimal digits of either case. The
// value is not checked for validity.
func IndexFromString(s string) (uint64, error) {
	if s == "" || len(s) > 16 {
		return 0, fmt.Errorf("%w: %q has %d digits", ErrParse, s, len(s))
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return 0, fmt.Errorf("%w: %q has non hex character %q", ErrParse, s, s[i])
		}
	}
	h, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrParse, s, err)
	}
	return h, nil
}

func isHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

// ParseCell parses a hexadecimal string and checks that it names a cell.
func ParseCell(s string) (Cell, error) {
	h, err := IndexFromString(s)
	if err != nil {
		return 0, err
	}
	c := Cell(h)
	if err := c.check(); err != nil {
		return 0, err
	}
	return c, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text must name a
// valid cell.
func (c *Cell) UnmarshalText(text []byte) error {
	parsed, err := ParseCell(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
