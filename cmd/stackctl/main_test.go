package main

import (
	"testing"
)

func TestBuildRootCommandTree(t *testing.T) {
	root := buildRoot()
	if root.Use != "stackctl" {
		t.Fatalf("root use = %q", root.Use)
	}
	want := map[string]bool{"start": false, "stop": false, "status": false, "serve": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func TestRootHasConfigFlag(t *testing.T) {
	root := buildRoot()
	f := root.PersistentFlags().Lookup("config")
	if f == nil {
		t.Fatal("persistent --config flag missing")
	}
	if f.DefValue != "" {
		t.Fatalf("config default = %q, want empty", f.DefValue)
	}
}

func TestServeFlags(t *testing.T) {
	root := buildRoot()
	serve, _, err := root.Find([]string{"serve"})
	if err != nil {
		t.Fatalf("find serve: %v", err)
	}
	for _, name := range []string{"listen", "base-path"} {
		if serve.Flags().Lookup(name) == nil {
			t.Errorf("serve flag --%s missing", name)
		}
	}
}

func TestLifecycleCommandsRejectArgs(t *testing.T) {
	for _, name := range []string{"start", "stop", "status"} {
		root := buildRoot()
		cmd, _, err := root.Find([]string{name})
		if err != nil {
			t.Fatalf("find %s: %v", name, err)
		}
		if err := cmd.Args(cmd, []string{"extra"}); err == nil {
			t.Errorf("%s accepted positional args", name)
		}
	}
}
