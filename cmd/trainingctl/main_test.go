package main

import (
	"bytes"
	"testing"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"migrate", "seed", "seed-admin", "cleanup-tokens"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %s not registered: %v", name, err)
		}
	}
}

func TestSeedAdminNeedsCredentials(t *testing.T) {
	t.Setenv("RAILWAY_ENVIRONMENT", "test")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"seed-admin"})
	if err := root.Execute(); err == nil {
		t.Fatal("seed-admin without credentials must fail")
	}
}
