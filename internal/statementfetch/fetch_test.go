package statementfetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jan.csv")
	want := []byte("Date,Narration,Withdrawal Amt.,Deposit Amt.\n")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Fetch returned %q, want %q", got, want)
	}
}

func TestFetchMissingFile(t *testing.T) {
	if _, err := Fetch(context.Background(), filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestFetchBadGCSURI(t *testing.T) {
	if _, err := Fetch(context.Background(), "gs://bucket-only"); err == nil {
		t.Fatal("expected an error for a URI without an object path")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"gs://bucket/folder/jan.csv", "jan.csv"},
		{"gs://bucket/jan.csv", "jan.csv"},
		{"gs://bucket-only", "bucket-only"},
		{"/tmp/statements/feb.pdf", "feb.pdf"},
		{"mar.xlsx", "mar.xlsx"},
	}
	for _, tt := range tests {
		if got := Filename(tt.source); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}
