package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookkeeper/library"
)

func TestExtractMultiWordValues(t *testing.T) {
	a, err := ParseAddBook("  The Left Hand of Darkness a/Ursula K. Le Guin cat/scifi cond/good loc/Shelf 2 top note/gift from mum ")
	require.NoError(t, err)

	assert.Equal(t, BookArgs{
		Title:     "The Left Hand of Darkness",
		Author:    "Ursula K. Le Guin",
		Category:  "scifi",
		Condition: "good",
		Location:  "Shelf 2 top",
		Note:      "gift from mum",
	}, a)
}

func TestExtractFieldOrderIsFree(t *testing.T) {
	a, err := ParseAddBook("Dune loc/S1 cond/Fair cat/Scifi a/Herbert")
	require.NoError(t, err)
	assert.Equal(t, "Dune", a.Title)
	assert.Equal(t, "S1", a.Location)
	assert.Equal(t, "Herbert", a.Author)
	assert.Empty(t, a.Note)
}

func TestExtractDuplicatePrefix(t *testing.T) {
	_, err := ParseAddBook("Dune a/Herbert cat/Scifi cond/Good loc/S1 a/Other")
	require.ErrorIs(t, err, library.ErrIncorrectFormat)
	assert.Contains(t, err.Error(), "Duplicate prefix a/")
}

func TestExtractSubjectLooksLikeField(t *testing.T) {
	_, err := ParseAddBook("a/Herbert cat/Scifi cond/Good loc/S1")
	require.ErrorIs(t, err, library.ErrIncorrectFormat)
	assert.Contains(t, err.Error(), "Expected format: add-book")
}

func TestExtractMissingOrBlankField(t *testing.T) {
	for _, in := range []string{
		"Dune a/Herbert cat/Scifi cond/Good",
		"Dune a/ cat/Scifi cond/Good loc/S1",
		"",
		"   ",
	} {
		_, err := ParseAddBook(in)
		assert.ErrorIs(t, err, library.ErrIncorrectFormat, "input %q", in)
	}
}

func TestExtractUnknownPrefix(t *testing.T) {
	_, err := ParseAddBook("Dune a/Herbert cat/Scifi cond/Good loc/S1 n/Alice")
	assert.ErrorIs(t, err, library.ErrIncorrectFormat)
}

func TestExtractRejectsStrayWordSlash(t *testing.T) {
	for _, in := range []string{
		"Dune x/y a/Herbert cat/scifi cond/good loc/S1",
		"This and/or That a/Herbert cat/scifi cond/good loc/S1",
		"Dune a/Herbert cat/scifi cond/good loc/Shelf A/B",
	} {
		_, err := ParseAddBook(in)
		assert.ErrorIs(t, err, library.ErrIncorrectFormat, "input %q", in)
	}

	// A slash not directly after a whitespace-led word is part of the value.
	a, err := ParseAddNote("Dune note/signed vol.1/2")
	require.NoError(t, err)
	assert.Equal(t, NoteArgs{Title: "Dune", Note: "signed vol.1/2"}, a)
}

func TestParseAddLoan(t *testing.T) {
	a, err := ParseAddLoan("Dune n/Alice Tan d/11-03-2025 p/91234567 e/alice@mail.com")
	require.NoError(t, err)
	assert.Equal(t, LoanArgs{
		Title:      "Dune",
		Borrower:   "Alice Tan",
		ReturnDate: "11-03-2025",
		Phone:      "91234567",
		Email:      "alice@mail.com",
	}, a)

	_, err = ParseAddLoan("Dune n/Alice d/11-03-2025 p/9123-4567 e/alice@mail.com")
	assert.ErrorIs(t, err, library.ErrInvalidPhone)

	_, err = ParseAddLoan("Dune n/Alice d/11-03-2025 p/91234567 e/alice")
	assert.ErrorIs(t, err, library.ErrInvalidEmail)

	_, err = ParseAddLoan("Dune n/Alice d/11-03-2025 p/91234567")
	assert.ErrorIs(t, err, library.ErrIncorrectFormat)
}

func TestParseEditLoan(t *testing.T) {
	a, err := ParseEditLoan("2 p/81234567")
	require.NoError(t, err)
	assert.Equal(t, LoanEditArgs{Target: "2", Phone: "81234567"}, a)

	_, err = ParseEditLoan("Dune")
	require.ErrorIs(t, err, library.ErrIncorrectFormat)
	assert.Contains(t, err.Error(), "No fields provided for edits")

	_, err = ParseEditLoan("Dune n/ d/")
	assert.ErrorIs(t, err, library.ErrIncorrectFormat)

	_, err = ParseEditLoan("Dune e/not-an-email")
	assert.ErrorIs(t, err, library.ErrInvalidEmail)
}

func TestParseUpdateTitle(t *testing.T) {
	a, err := ParseUpdateTitle("Dune new/Dune Messiah")
	require.NoError(t, err)
	assert.Equal(t, TitleChangeArgs{OldTitle: "Dune", NewTitle: "Dune Messiah"}, a)

	_, err = ParseUpdateTitle("Dune new/DUNE")
	require.ErrorIs(t, err, library.ErrIncorrectFormat)
	assert.Contains(t, err.Error(), "Titles entered are the same")
}

func TestParseSubject(t *testing.T) {
	got, err := ParseSubject("remove-book", "remove-book BOOK_TITLE", "  Dune Messiah ")
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got)

	_, err = ParseSubject("remove-book", "remove-book BOOK_TITLE", " ")
	assert.ErrorIs(t, err, library.ErrIncorrectFormat)

	title, err := ParseDeleteLoan("Dune")
	require.NoError(t, err)
	assert.Equal(t, "Dune", title)
}
