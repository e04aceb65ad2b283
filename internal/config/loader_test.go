package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// clearConfigEnvVars unsets every REELO_ variable so tests start clean.
func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "REELO_") {
			name, _, _ := strings.Cut(kv, "=")
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func writeTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		clearConfigEnvVars(t)
		ctx := context.Background()

		Convey("When loading with no file and no env", func() {
			cfg, err := Load(ctx)

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.StoreBackend, ShouldEqual, BackendSQLite)
				So(cfg.SQLitePath, ShouldEqual, "reelo.db")
				So(cfg.SheetName, ShouldEqual, "Movies")
				So(cfg.EloK, ShouldEqual, 32)
				So(cfg.SamplerAttempts, ShouldEqual, 50)
				So(cfg.DedupeSize, ShouldEqual, 10_000)
				So(cfg.MaxLeaderboardLimit, ShouldEqual, 500)
			})
		})

		Convey("When a YAML file overrides defaults", func() {
			path := writeTempConfigFile(t, strings.Join([]string{
				"addr: \":7070\"",
				"store_backend: memory",
				"elo_k: 24",
			}, "\n"))
			t.Setenv("REELO_CONFIG", path)

			cfg, err := Load(ctx)

			Convey("Then file values win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.StoreBackend, ShouldEqual, BackendMemory)
				So(cfg.EloK, ShouldEqual, 24)
				So(cfg.LogLevel, ShouldEqual, "info")
			})
		})

		Convey("When env vars override the file", func() {
			path := writeTempConfigFile(t, "addr: \":7070\"\n")
			t.Setenv("REELO_CONFIG", path)
			t.Setenv("REELO_ADDR", ":6060")
			t.Setenv("REELO_STORE_BACKEND", "memory")
			t.Setenv("REELO_SQLITE_PATH", "/tmp/other.db")

			cfg, err := Load(ctx)

			Convey("Then env takes precedence", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.StoreBackend, ShouldEqual, BackendMemory)
				So(cfg.SQLitePath, ShouldEqual, "/tmp/other.db")
			})
		})

		Convey("When the config file does not exist", func() {
			t.Setenv("REELO_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			_, err := Load(ctx)

			Convey("Then loading fails with the load kind", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, ErrLoadConfig.Error())
			})
		})

		Convey("When the backend is unknown", func() {
			t.Setenv("REELO_STORE_BACKEND", "postgres")
			_, err := Load(ctx)

			Convey("Then validation rejects the config", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, ErrInvalidConfig.Error())
			})
		})

		Convey("When the sheets backend lacks credentials", func() {
			t.Setenv("REELO_STORE_BACKEND", BackendSheets)
			t.Setenv("REELO_SHEET_ID", "sheet-123")
			_, err := Load(ctx)

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "sheet_credentials")
		})

		Convey("When the sheets backend is fully specified", func() {
			t.Setenv("REELO_STORE_BACKEND", BackendSheets)
			t.Setenv("REELO_SHEET_ID", "sheet-123")
			t.Setenv("REELO_SHEET_CREDENTIALS", "/etc/reelo/creds.json")

			cfg, err := Load(ctx)

			So(err, ShouldBeNil)
			So(cfg.SheetID, ShouldEqual, "sheet-123")
			So(cfg.SheetCredentials, ShouldEqual, "/etc/reelo/creds.json")
		})

		Convey("When elo_k is not positive", func() {
			t.Setenv("REELO_ELO_K", "0")
			_, err := Load(ctx)

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "elo_k")
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a default config", t, func() {
		Convey("Then it validates cleanly", func() {
			So(New().validate(), ShouldBeNil)
		})

		Convey("When the addr is blank", func() {
			cfg := New()
			cfg.Addr = ""
			So(cfg.validate(), ShouldNotBeNil)
		})
	})
}
