package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	expected := []string{"login", "logout", "status", "menu", "cart", "orders", "toads", "tv", "config", "version"}
	for _, name := range expected {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"api-url", "redirects", "token-store", "session-file", "output", "verbose"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out.String(), "frogcafe version dev") {
		t.Errorf("unexpected version output: %s", out.String())
	}
}
