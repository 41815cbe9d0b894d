package types

import (
	"fmt"
	"os"
)

// Modes is the bit-exact file modes table: index 0..15 maps to the mode
// string a program names with OPEN_FILE's single operand.
var Modes = [16]string{
	"r", "r+", "rb", "rb+",
	"w", "w+", "wb", "wb+",
	"a", "a+", "ab", "ab+",
	"x", "x+", "xb", "xb+",
}

// OpenMode translates one of the 16 named modes into the os.OpenFile flags
// and permission bits that reproduce it.
func OpenMode(mode string) (flag int, perm os.FileMode, err error) {
	switch mode {
	case "r", "rb":
		return os.O_RDONLY, 0, nil
	case "r+", "rb+":
		return os.O_RDWR, 0, nil
	case "w", "wb":
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC, 0644, nil
	case "w+", "wb+":
		return os.O_RDWR | os.O_CREATE | os.O_TRUNC, 0644, nil
	case "a", "ab":
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND, 0644, nil
	case "a+", "ab+":
		return os.O_RDWR | os.O_CREATE | os.O_APPEND, 0644, nil
	case "x", "xb":
		return os.O_WRONLY | os.O_CREATE | os.O_EXCL, 0644, nil
	case "x+", "xb+":
		return os.O_RDWR | os.O_CREATE | os.O_EXCL, 0644, nil
	default:
		return 0, 0, fmt.Errorf("unknown file mode %q", mode)
	}
}

// File is an open stream reference, as created by OPEN_FILE and consumed by
// READ_FROM, READ_CHAR_FROM and WRITE_TO. The handle is owned by whichever
// memory cell currently holds it; Close releases the OS resource when that
// cell is overwritten or the process exits.
type File struct {
	Handle *os.File
	Mode   string
}

var _ Value = File{}

func (f File) String() string { return fmt.Sprintf("File(%s, mode=%s)", f.Handle.Name(), f.Mode) }
func (f File) Kind() Kind     { return KindFile }
func (f File) Truth() bool    { return true }

// Close releases the underlying OS handle. It is safe to call on a File
// whose Handle is nil (the zero value).
func (f File) Close() error {
	if f.Handle == nil {
		return nil
	}
	return f.Handle.Close()
}
