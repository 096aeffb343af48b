package dataconverter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/romanch203/DataConverterPro/pipeline"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

const fixtureHTML = `<table>
<tr><th>Name</th><th>Salary</th></tr>
<tr><td>Alice</td><td>$1,234.00</td></tr>
</table>`

func TestOpen_Tables(t *testing.T) {
	path := writeFixture(t, "people.html", fixtureHTML)

	tbls, warnings, err := Open(path).Tables()
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
	if len(tbls) != 1 {
		t.Fatalf("got %d tables, want 1", len(tbls))
	}
	if !tbls[0].HasHeaders {
		t.Error("headers not detected")
	}
	if got := tbls[0].Grid.Rows[1][1]; got != "1234" {
		t.Errorf("cell = %q, want normalized 1234", got)
	}
}

func TestOpen_CSV(t *testing.T) {
	path := writeFixture(t, "people.html", fixtureHTML)

	out, _, err := Open(path).CSV()
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if !strings.HasPrefix(out, "Name,Salary\n") {
		t.Errorf("csv = %q", out)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "absent.html")).Tables()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var ce *pipeline.ConversionError
	if !errors.As(err, &ce) {
		t.Errorf("err = %T, want *pipeline.ConversionError", err)
	}
}

func TestOpen_NoTables(t *testing.T) {
	path := writeFixture(t, "prose.html", "<p>nothing here</p>")

	_, _, err := Open(path).Tables()
	if pipeline.KindOf(err) != pipeline.FailureNoData {
		t.Errorf("kind = %q, want no_data", pipeline.KindOf(err))
	}
}
