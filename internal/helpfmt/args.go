package helpfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Nargs says how many command-line values an argument consumes. Besides
// the named kinds below, a decimal string such as "2" means exactly that
// many values.
type Nargs string

const (
	NargsSingle     Nargs = ""
	NargsOptional   Nargs = "?"
	NargsZeroOrMore Nargs = "*"
	NargsOneOrMore  Nargs = "+"
	NargsRemainder  Nargs = "..."
	NargsParser     Nargs = "A..."
	NargsSuppress   Nargs = "==SUPPRESS=="
)

// ParseNargs validates s as a Nargs value.
func ParseNargs(s string) (Nargs, error) {
	switch n := Nargs(strings.TrimSpace(s)); n {
	case NargsSingle, NargsOptional, NargsZeroOrMore, NargsOneOrMore,
		NargsRemainder, NargsParser, NargsSuppress:
		return n, nil
	default:
		if c, err := strconv.Atoi(string(n)); err == nil && c >= 0 {
			return n, nil
		}
		return "", fmt.Errorf("invalid nargs %q", s)
	}
}

// Count returns the exact number of values for a numeric Nargs.
func (n Nargs) Count() (int, bool) {
	c, err := strconv.Atoi(string(n))
	if err != nil || c < 0 {
		return 0, false
	}
	return c, true
}

// FormatArgs renders the value placeholder of an argument. metavar holds
// either one name used for every value or one name per value.
func FormatArgs(nargs Nargs, metavar ...string) (string, error) {
	if len(metavar) == 0 {
		return "", fmt.Errorf("format args: no metavar")
	}
	pick := func(size int) ([]string, error) {
		switch len(metavar) {
		case 1:
			out := make([]string, size)
			for i := range out {
				out[i] = metavar[0]
			}
			return out, nil
		case size:
			return metavar, nil
		default:
			return nil, fmt.Errorf("length of metavar tuple does not match nargs %q", nargs)
		}
	}

	var (
		size   int
		layout string
	)
	switch nargs {
	case NargsSingle:
		size, layout = 1, "%s"
	case NargsOptional:
		size, layout = 1, "[%s]"
	case NargsZeroOrMore:
		if len(metavar) == 2 {
			return fmt.Sprintf("[%s [%s ...]]", metavar[0], metavar[1]), nil
		}
		size, layout = 1, "[%s ...]"
	case NargsOneOrMore:
		size, layout = 2, "%s [%s ...]"
	case NargsRemainder:
		return "...", nil
	case NargsParser:
		size, layout = 1, "%s ..."
	case NargsSuppress:
		return "", nil
	default:
		c, ok := nargs.Count()
		if !ok {
			return "", fmt.Errorf("invalid nargs %q", nargs)
		}
		names, err := pick(c)
		if err != nil {
			return "", err
		}
		return strings.Join(names, " "), nil
	}

	names, err := pick(size)
	if err != nil {
		return "", err
	}
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	return fmt.Sprintf(layout, args...), nil
}
