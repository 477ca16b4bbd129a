package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ODOO_URL", "https://odoo.example.com")
	t.Setenv("ODOO_DB", "proddb")
	t.Setenv("ODOO_API_KEY", "key123")
	t.Setenv("ODOO_UID", "2")
	t.Setenv("DRY_RUN", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "https://odoo.example.com", cfg.InstanceURL)
	require.Equal(t, "proddb", cfg.Database)
	require.Equal(t, "key123", cfg.APIKey)
	require.Equal(t, 2, cfg.UserID)
	require.True(t, cfg.DryRun)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.False(t, cfg.DryRun)
	require.Equal(t, 4, cfg.EnrichmentConcurrency)
	require.Empty(t, cfg.MetricsAddr)
}

func TestLoadConfigFileLayeredUnderEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `instanceUrl: https://file.example.com
database: filedb
apiKey: filekey
userId: 9
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("ODOO_DB", "envdb")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "https://file.example.com", cfg.InstanceURL)
	require.Equal(t, "envdb", cfg.Database, "env must take precedence over the file")
	require.Equal(t, 9, cfg.UserID)
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
