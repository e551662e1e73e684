package log_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/pkgsweep/pkgsweep/pkg/log"
)

type auditEntry struct {
	Level   string `json:"level"`
	ID      string `json:"id"`
	Version string `json:"version"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

func TestLogger(t *testing.T) {
	Convey("Logger writes structured entries", t, func() {
		buf := &bytes.Buffer{}
		logger := log.NewLoggerWithWriter("debug", buf)

		logger.Info().Str("package", "app").Msg("fetched versions")

		entry := map[string]interface{}{}
		err := json.Unmarshal(buf.Bytes(), &entry)
		So(err, ShouldBeNil)
		So(entry["package"], ShouldEqual, "app")
		So(entry["message"], ShouldEqual, "fetched versions")
		So(entry["level"], ShouldEqual, "info")
		So(entry["caller"], ShouldNotBeEmpty)
		So(entry["time"], ShouldNotBeEmpty)
	})

	Convey("Invalid level panics", t, func() {
		So(func() { _ = log.NewLoggerWithWriter("loud", &bytes.Buffer{}) }, ShouldPanic)
	})

	Convey("Logger appends to output file", t, func() {
		output := path.Join(t.TempDir(), "pkgsweep.log")

		logger := log.NewLogger("info", output)
		logger.Info().Msg("first")
		logger.Info().Msg("second")

		content, err := os.ReadFile(output)
		So(err, ShouldBeNil)
		So(string(content), ShouldContainSubstring, "first")
		So(string(content), ShouldContainSubstring, "second")
	})

	Convey("Logger creates the output directory", t, func() {
		output := path.Join(t.TempDir(), "logs", "pkgsweep.log")

		logger := log.NewLogger("info", output)
		logger.Info().Msg("rotated")

		content, err := os.ReadFile(output)
		So(err, ShouldBeNil)
		So(string(content), ShouldContainSubstring, "rotated")
	})

	Convey("Audit logger fails on unwritable output", t, func() {
		audit, err := log.NewAuditLogger("info", path.Join(t.TempDir(), "missing", "audit.log"))
		So(err, ShouldNotBeNil)
		So(audit, ShouldBeNil)
	})

	Convey("Audit logger writes to file", t, func() {
		output := path.Join(t.TempDir(), "audit.log")

		audit, err := log.NewAuditLogger("info", output)
		So(err, ShouldBeNil)

		audit.Info().Str("id", "PV_1").Str("version", "v1.0").Msg("deleted package version")

		content, err := os.ReadFile(output)
		So(err, ShouldBeNil)

		var entry auditEntry
		err = json.Unmarshal(content, &entry)
		So(err, ShouldBeNil)
		So(entry.ID, ShouldEqual, "PV_1")
		So(entry.Version, ShouldEqual, "v1.0")
		So(entry.Message, ShouldEqual, "deleted package version")
		So(entry.Time, ShouldNotBeEmpty)
	})

	Convey("Nop logger discards", t, func() {
		logger := log.NewNopLogger()
		So(func() { logger.Info().Msg("nothing") }, ShouldNotPanic)
	})
}
