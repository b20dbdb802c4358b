package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	req := require.New(t)
	defer viper.Reset()

	path := filepath.Join(t.TempDir(), "config.yaml")
	req.NoError(os.WriteFile(path, []byte("http:\n  addr: \":9000\"\nmongo:\n  uri: mongodb://file\n"), 0o600))
	t.Setenv("MONGO_URI", "mongodb://env")
	t.Setenv("APP_NAME", "marketd")

	req.NoError(LoadConfig([]string{"--config", path, "--unknown", "x"}))
	req.Equal(":9000", viper.GetString("http.addr"))
	req.Equal("mongodb://env", viper.GetString("mongo.uri"))
	req.Equal("marketd", viper.GetString("app_name"))
}

func TestLoadConfigMissingFile(t *testing.T) {
	defer viper.Reset()
	require.Error(t, LoadConfig([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}))
}
