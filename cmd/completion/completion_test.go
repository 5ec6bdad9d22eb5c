package completion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func testRootCmd() *cobra.Command {
	root := &cobra.Command{Use: "excel-tool"}
	root.AddCommand(&cobra.Command{Use: "split", Short: "Split a workbook"})
	root.AddCommand(&cobra.Command{Use: "info", Short: "Inspect a workbook"})
	return root
}

func TestBashCompletion(t *testing.T) {
	root := testRootCmd()
	var buf bytes.Buffer

	if err := root.GenBashCompletion(&buf); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "_excel-tool") {
		t.Error("bash completion should contain _excel-tool function")
	}
}

func TestFishCompletion(t *testing.T) {
	root := testRootCmd()
	var buf bytes.Buffer

	if err := root.GenFishCompletion(&buf, true); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "complete -c excel-tool") {
		t.Error("fish completion should contain 'complete -c excel-tool'")
	}
}

func TestUnsupportedShell(t *testing.T) {
	cmd := NewCommand(testRootCmd())
	cmd.SetArgs([]string{"tcsh"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
