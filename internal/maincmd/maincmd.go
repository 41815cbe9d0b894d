// Package maincmd implements the binarypp command-line front-end: flag
// parsing, usage text and wiring the decoder and virtual machine together
// around the mainer.Stdio streams.
package maincmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/Supercolbat/binarypp/vm"
	"github.com/Supercolbat/binarypp/vm/decoder"
)

const binName = "binarypp"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <path>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <path>
       %[1]s -h|--help
       %[1]s -v|--version

Decodes and runs a binarypp bytecode program, either in its raw compiled
form or its textual whitespace-separated binary-literal form.

Valid flag options are:
       --step                    Run one instruction at a time, printing
                                  the instruction, its operands, the
                                  current frame's memory and the operand
                                  stack after each step, and waiting for a
                                  newline on stdin before continuing.
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)
)

// Cmd is the mainer.Command implementation for binarypp: a single program
// path in, an exit code out.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`
	Step    bool `flag:"step"`

	args []string
}

func (c *Cmd) SetArgs(args []string)          { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) != 1 {
		return errors.New("exactly one program path must be provided")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.run(ctx, stdio); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return mainer.Failure
	}
	return mainer.Success
}

// run decodes the named program and executes it to completion (or to its
// first fatal error) on the given streams.
func (c *Cmd) run(ctx context.Context, stdio mainer.Stdio) error {
	path := c.args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	code, err := decoder.Decode(data)
	if err != nil {
		return err
	}

	m := vm.New(path, vm.Flags{Step: c.Step})
	m.Stdout = stdio.Stdout
	m.Stderr = stdio.Stderr
	m.Stdin = bufio.NewReader(stdio.Stdin)
	m.Load(code)
	return m.Run(ctx)
}
