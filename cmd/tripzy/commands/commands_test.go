package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBalances_Demo(t *testing.T) {
	out, err := run(t, "balances", "--demo")
	if err != nil {
		t.Fatalf("balances --demo failed: %v\n%s", err, out)
	}

	for _, want := range []string{
		"Owes you $37.50",
		"You owe $37.50",
		"Settled up",
		"Bob -> Alice: $37.50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestBalances_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.json")
	trip := `{
		"members": ["Alice", "Bob", "Charlie"],
		"expenses": [
			{"title": "Dinner", "amount": "120", "payer": "Alice", "participants": ["Alice", "Bob", "Charlie"]},
			{"title": "Taxi", "amount": "45", "payer": "Bob", "date": "2024-05-01", "participants": ["Alice", "Bob"]}
		]
	}`
	if err := os.WriteFile(path, []byte(trip), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "balances", "--file", path)
	if err != nil {
		t.Fatalf("balances --file failed: %v\n%s", err, out)
	}

	for _, want := range []string{
		"57.50",
		"-17.50",
		"-40.00",
		"Charlie -> Alice: $40.00",
		"Bob -> Alice: $17.50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestBalances_FileRejectsUnknownPayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.json")
	trip := `{"members": ["Alice"], "expenses": [{"title": "Taxi", "amount": "10", "payer": "Zed", "participants": ["Alice"]}]}`
	if err := os.WriteFile(path, []byte(trip), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "balances", "--file", path); err == nil {
		t.Error("expected an error for an unknown payer")
	}
}

func TestBalances_RequiresInput(t *testing.T) {
	if _, err := run(t, "balances"); err == nil {
		t.Error("expected an error without --file or --demo")
	}
}

func TestMigrate(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tripzy.db")
	out, err := run(t, "migrate", "--db", db)
	if err != nil {
		t.Fatalf("migrate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "schema version") {
		t.Errorf("expected schema version in output, got %q", out)
	}
	if _, err := os.Stat(db); err != nil {
		t.Errorf("expected database file: %v", err)
	}
}

func TestServe_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := run(t, "serve", "--db", filepath.Join(t.TempDir(), "x.db")); err == nil {
		t.Error("expected serve to refuse an empty jwt_secret")
	}
}
