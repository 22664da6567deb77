package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "books.db", cfg.Database.DSN())
	assert.Equal(t, "X-API-Key", cfg.Auth.Header)
	assert.Equal(t, DefaultAPIKey, cfg.Auth.APIKey)
	assert.Equal(t, 10, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 100, cfg.Pagination.MaxLimit)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.MQ.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BOOKS_AUTH_API_KEY", "from-env")
	t.Setenv("BOOKS_SERVER_PORT", "9090")
	t.Setenv("BOOKS_PAGINATION_MAX_LIMIT", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.APIKey)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Pagination.MaxLimit)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	yaml := []byte(`
server:
  port: 8181
  mode: release
database:
  driver: mysql
  host: db
  port: 3306
  user: books
  password: pw
  dbname: library
  loc: Asia/Shanghai
auth:
  api_key: prod-key
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), yaml, 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "prod-key", cfg.Auth.APIKey)
	assert.Equal(t,
		"books:pw@tcp(db:3306)/library?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		cfg.Database.DSN())
}

func TestDatabaseConfig_DSNPostgres(t *testing.T) {
	d := DatabaseConfig{
		Driver: DriverPostgres, Host: "pg", Port: 5432,
		User: "u", Password: "p", DBName: "books", SSLMode: "disable",
	}
	assert.Equal(t, "host=pg port=5432 user=u password=p dbname=books sslmode=disable", d.DSN())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   interface{}
		wantErr bool
	}{
		{name: "默认配置合法", wantErr: false},
		{name: "端口越界", key: "server.port", value: 70000, wantErr: true},
		{name: "未知驱动", key: "database.driver", value: "oracle", wantErr: true},
		{name: "密钥为空", key: "auth.api_key", value: "", wantErr: true},
		{name: "默认limit超过最大值", key: "pagination.default_limit", value: 500, wantErr: true},
		{name: "release模式禁止默认密钥", key: "server.mode", value: "release", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := viper.New()
			setDefaults(v)
			if tc.key != "" {
				v.Set(tc.key, tc.value)
			}

			_, err := decode(v)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
