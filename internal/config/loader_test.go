package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gradefold/gradefold/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"GRADEFOLD_CONFIG",
		"GRADEFOLD_INPUT_DIR",
		"GRADEFOLD_OUTPUT",
		"GRADEFOLD_SHEET_NAME",
		"GRADEFOLD_HEADER_MARKER",
		"GRADEFOLD_WORKER_COUNT",
		"GRADEFOLD_PDF_EXPORT",
		"GRADEFOLD_LOG_LEVEL",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.InputDir, convey.ShouldEqual, ".")
				convey.So(cfg.Output, convey.ShouldEqual, "consolidated.xlsx")
				convey.So(cfg.SheetName, convey.ShouldEqual, "Consolidated")
				convey.So(cfg.HeaderMarker, convey.ShouldEqual, "First name")
				convey.So(cfg.ExclusionTerms, convey.ShouldResemble, []string{"Raffi"})
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
				convey.So(cfg.PDFExport, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("GRADEFOLD_INPUT_DIR", "/data/exports")
			_ = os.Setenv("GRADEFOLD_OUTPUT", "grades.xlsx")
			_ = os.Setenv("GRADEFOLD_WORKER_COUNT", "3")
			_ = os.Setenv("GRADEFOLD_PDF_EXPORT", "false")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InputDir, convey.ShouldEqual, "/data/exports")
				convey.So(cfg.Output, convey.ShouldEqual, "grades.xlsx")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 3)
				convey.So(cfg.PDFExport, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
input_dir: "/srv/grades"
sheet_name: "Gradebook"
header_marker: "Vorname"
exclusion_terms:
  - "Raffi"
  - "Test Student"
column_overrides:
  "Assignment: Essay": "Essay"
`
			tmpFile := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(tmpFile, []byte(yamlContent), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("GRADEFOLD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InputDir, convey.ShouldEqual, "/srv/grades")
				convey.So(cfg.SheetName, convey.ShouldEqual, "Gradebook")
				convey.So(cfg.HeaderMarker, convey.ShouldEqual, "Vorname")
				convey.So(cfg.ExclusionTerms, convey.ShouldResemble, []string{"Raffi", "Test Student"})
				convey.So(cfg.ColumnOverrides, convey.ShouldResemble, map[string]string{"Assignment: Essay": "Essay"})
			})

			convey.Convey("And env vars still win over the file", func() {
				_ = os.Setenv("GRADEFOLD_INPUT_DIR", "/env/wins")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InputDir, convey.ShouldEqual, "/env/wins")
			})
		})

		convey.Convey("When the config file is unreadable", func() {
			_ = os.Setenv("GRADEFOLD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a value fails validation", func() {
			_ = os.Setenv("GRADEFOLD_WORKER_COUNT", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
