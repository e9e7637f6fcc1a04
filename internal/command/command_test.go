package command

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sessionauth/internal/config"
)

func TestBackendFor(t *testing.T) {
	tests := []struct {
		dsn     string
		want    backend
		wantErr bool
	}{
		{dsn: "postgres://u:p@localhost:5432/db?sslmode=disable", want: backendPostgres},
		{dsn: "postgresql://localhost/db", want: backendPostgres},
		{dsn: "mongodb://localhost:27017", want: backendMongo},
		{dsn: "mongodb+srv://cluster.example.net", want: backendMongo},
		{dsn: "mysql://localhost/db", wantErr: true},
		{dsn: "localhost:5432", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			got, err := backendFor(tt.dsn)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenStorage_UnsupportedScheme(t *testing.T) {
	_, _, err := openStorage(context.Background(), config.Database{DSN: "redis://localhost:6379"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database scheme")
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCommand(BuildInfo{Version: "v1.2.3", Commit: "abc123"})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Build version: v1.2.3")
	assert.Contains(t, out.String(), "Build date: N/A")
	assert.Contains(t, out.String(), "Build commit: abc123")
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand(BuildInfo{})

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "version"}, names)

	f := root.PersistentFlags().Lookup("env-file")
	require.NotNil(t, f)
	assert.Equal(t, ".env", f.DefValue)
}

func TestServeCommand_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_DSN", "postgres://localhost/db")

	root := NewRootCommand(BuildInfo{})
	root.SetArgs([]string{"serve", "--env-file", filepath.Join(t.TempDir(), "missing.env")})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestMigrateCommand_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_DSN", "sqlite://local.db")

	root := NewRootCommand(BuildInfo{})
	root.SetArgs([]string{"migrate", "--env-file", ""})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database scheme")
}
