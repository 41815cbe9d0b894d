package vm_test

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Supercolbat/binarypp/internal/filetest"
	"github.com/Supercolbat/binarypp/vm"
	"github.com/Supercolbat/binarypp/vm/decoder"
)

var updatePrograms = flag.Bool("test.update-program-tests", false, "update vm/testdata golden files")

// TestPrograms decodes and runs every program under testdata/programs and
// diffs its stdout against the matching golden file in testdata/golden.
func TestPrograms(t *testing.T) {
	dir := filepath.Join("testdata", "programs")
	golden := filepath.Join("testdata", "golden")

	for _, fi := range filetest.SourceFiles(t, dir, ".txt") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(dir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}
			code, err := decoder.Decode(data)
			if err != nil {
				t.Fatal(err)
			}

			m := vm.New(fi.Name(), vm.Flags{})
			var out bytes.Buffer
			m.Stdout = &out
			m.Stdin = bufio.NewReader(strings.NewReader(""))
			m.Load(code)
			if err := m.Run(context.Background()); err != nil {
				t.Fatal(err)
			}

			filetest.DiffOutput(t, fi, out.String(), golden, updatePrograms)
		})
	}
}
