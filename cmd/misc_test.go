package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pders01/neuronest/internal/testutil"
)

func TestResourcesCommand(t *testing.T) {
	_, buf := setupCmdTest(t)

	if err := runResources(nil, []string{}); err != nil {
		t.Fatalf("resources command failed: %v", err)
	}
	for _, want := range []string{"In a crisis?", "Text HOME to 741741", "Articles & Guides"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output, got: %s", want, buf.String())
		}
	}
}

func TestStatusCommand(t *testing.T) {
	srv, buf := setupCmdTest(t)
	loginAs(t, srv, "alice")

	if err := runStatus(nil, []string{}); err != nil {
		t.Fatalf("status command failed: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "reachable") || !strings.Contains(output, "logged in as alice") {
		t.Errorf("unexpected status output: %s", output)
	}
}

func TestStatusServerDown(t *testing.T) {
	srv, buf := setupCmdTest(t)
	srv.Fail(testutil.RoutePing, 503, "maintenance")

	if err := runStatus(nil, []string{}); err == nil {
		t.Error("expected status to fail")
	}
	if !strings.Contains(buf.String(), "not logged in") {
		t.Errorf("expected anonymous session, got: %s", buf.String())
	}
}

func TestConfigInit(t *testing.T) {
	_, buf := setupCmdTest(t)
	oldCfgFile := cfgFile
	defer func() { cfgFile, configForce = oldCfgFile, false }()

	cfgFile = filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := runConfigInit(nil, []string{}); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	content, err := os.ReadFile(cfgFile)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	for _, want := range []string{"[api]", "url", "[session]", "period_days = 30"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("expected %q in config, got:\n%s", want, content)
		}
	}

	// existing file is kept
	if err := os.WriteFile(cfgFile, []byte("# mine\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := runConfigInit(nil, []string{}); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	content, _ = os.ReadFile(cfgFile)
	if string(content) != "# mine\n" {
		t.Error("existing config was overwritten")
	}
	if !strings.Contains(buf.String(), "already exists") {
		t.Errorf("expected already exists notice, got: %s", buf.String())
	}

	configForce = true
	if err := runConfigInit(nil, []string{}); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}
	content, _ = os.ReadFile(cfgFile)
	if !strings.Contains(string(content), "[api]") {
		t.Error("expected --force to overwrite the config")
	}
}

func TestConfigShow(t *testing.T) {
	srv, buf := setupCmdTest(t)

	if err := runConfigShow(nil, []string{}); err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(buf.String(), srv.URL) {
		t.Errorf("expected effective API URL, got: %s", buf.String())
	}
}
