package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/pders01/neuronest/internal/config"
	"github.com/pders01/neuronest/internal/session"
	"github.com/pders01/neuronest/internal/testutil"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// setupCmdTest points the CLI at a fake API with a throwaway session dir
func setupCmdTest(t *testing.T) (*testutil.APIServer, *bytes.Buffer) {
	t.Helper()

	viper.Reset()
	config.SetDefaults()

	srv := testutil.NewAPIServer(t)
	viper.Set(config.KeyAPIURL, srv.URL)
	viper.Set(config.KeySessionDir, t.TempDir())
	viper.Set(config.KeyNoInput, true)
	viper.Set(config.KeyLogLevel, "error")

	var buf bytes.Buffer
	oldOut, oldErrOut := out, errOut
	out, errOut = &buf, io.Discard

	t.Cleanup(func() {
		out, errOut = oldOut, oldErrOut
		viper.Reset()
	})
	return srv, &buf
}

func tokenStore() *session.FileTokenStore {
	return session.NewFileTokenStore(afero.NewOsFs(), viper.GetString(config.KeySessionDir))
}

func tokenPath() string {
	return filepath.Join(viper.GetString(config.KeySessionDir), session.StorageKey)
}

// loginAs creates username on the server and stores a valid token for it
func loginAs(t *testing.T, srv *testutil.APIServer, username string) {
	t.Helper()
	token := srv.AddUser(username, "secret1")
	if err := tokenStore().Save(token); err != nil {
		t.Fatalf("failed to store token: %v", err)
	}
}
