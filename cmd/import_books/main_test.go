package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"bookkeeper/library"
)

func TestImportLines(t *testing.T) {
	dir := t.TempDir()
	mgr, err := library.NewLibraryManager(library.Options{
		InventoryPath: filepath.Join(dir, "books.txt"),
		LoansPath:     filepath.Join(dir, "loans.txt"),
		Logger:        zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("mgr: %v", err)
	}
	defer mgr.Close()

	input := strings.Join([]string{
		"# my shelf",
		"Dune a/Frank Herbert cat/scifi cond/good loc/Shelf1",
		"add-book Emma a/Jane Austen cat/romance cond/poor loc/Box note/gift",
		"",
		"dune a/Someone cat/scifi cond/good loc/Shelf2",
		"Broken a/Nobody",
		"A | B a/x cat/scifi cond/good loc/y",
	}, "\n")

	var out bytes.Buffer
	ok, failed := importLines(mgr, strings.NewReader(input), &out)
	if ok != 2 || failed != 3 {
		t.Fatalf("imported %d, failed %d; output:\n%s", ok, failed, out.String())
	}
	if b, err := mgr.FindBook("Emma"); err != nil || b.Note != "gift" {
		t.Fatalf("emma = %+v, %v", b, err)
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Dune", 10, "Dune"},
		{"The Left Hand of Darkness", 10, "The Lef..."},
		{"Dune", 2, "Du"},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
