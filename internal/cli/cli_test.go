package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/molfig/pkg/cache"
	"github.com/matzehuels/molfig/pkg/observability"
)

func TestRootCommand(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	if root.Use != appName {
		t.Errorf("Use = %q", root.Use)
	}

	want := []string{"render", "tree", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	if c.verbose() {
		t.Error("info level should not be verbose")
	}
	c.SetLogLevel(LogDebug)
	if !c.verbose() {
		t.Error("debug level should be verbose")
	}
}

func TestVerboseRegistersLogHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var logs bytes.Buffer
	c := New(&logs, LogDebug)
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"render", aceticAcid, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	if _, ok := observability.Pipeline().(*observability.LogHooks); !ok {
		t.Errorf("pipeline hooks = %T, want *LogHooks", observability.Pipeline())
	}
	if !strings.Contains(logs.String(), "build complete") {
		t.Errorf("debug log missing hook output:\n%s", logs.String())
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := run(t, "completion", shell)
		if err != nil {
			t.Fatalf("%s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("%s completion does not mention %s", shell, appName)
		}
	}

	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}

func TestServeCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(&bytes.Buffer{}, LogInfo)
	ctx := context.Background()

	store, err := c.serveCache(ctx, serveOpts{noCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(cache.NullCache); !ok {
		t.Errorf("--no-cache store = %T", store)
	}

	store, err = c.serveCache(ctx, serveOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*cache.FileCache); !ok {
		t.Errorf("default store = %T", store)
	}

	if _, err := c.serveCache(ctx, serveOpts{redisURL: "mysql://nope"}); err == nil {
		t.Error("a non-redis URL should fail")
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(&bytes.Buffer{}, LogInfo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.runServe(ctx, serveOpts{addr: "127.0.0.1:0", noCache: true}); err != nil {
		t.Errorf("runServe with a cancelled context = %v, want nil", err)
	}
}
