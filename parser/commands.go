package parser

import (
	"fmt"
	"strings"

	"bookkeeper/library"
)

var (
	AddBookSchema = Schema{
		Command:  "add-book",
		Usage:    "add-book BOOK_TITLE a/AUTHOR cat/CATEGORY cond/CONDITION loc/LOCATION [note/NOTE]",
		Required: []string{Author, Category, Condition, Location},
		Optional: []string{Note},
	}
	UpdateBookSchema = Schema{
		Command:  "update-book",
		Usage:    "update-book BOOK_TITLE a/AUTHOR cat/CATEGORY cond/CONDITION loc/LOCATION [note/NOTE]",
		Required: []string{Author, Category, Condition, Location},
		Optional: []string{Note},
	}
	UpdateTitleSchema = Schema{
		Command:  "update-title",
		Usage:    "update-title BOOK_TITLE new/NEW_TITLE",
		Required: []string{NewTitle},
	}
	AddLoanSchema = Schema{
		Command:  "add-loan",
		Usage:    "add-loan BOOK_TITLE n/BORROWER_NAME d/RETURN_DATE p/PHONE_NUMBER e/EMAIL",
		Required: []string{Borrower, Date, Phone, Email},
	}
	EditLoanSchema = Schema{
		Command:    "edit-loan",
		Usage:      "edit-loan BOOK_TITLE|INDEX [n/BORROWER_NAME] [d/RETURN_DATE] [p/PHONE_NUMBER] [e/EMAIL]",
		Optional:   []string{Borrower, Date, Phone, Email},
		AtLeastOne: true,
	}
	DeleteLoanSchema = Schema{
		Command: "delete-loan",
		Usage:   "delete-loan BOOK_TITLE",
	}
	AddNoteSchema = Schema{
		Command:  "add-note",
		Usage:    "add-note BOOK_TITLE note/NOTE",
		Required: []string{Note},
	}
	UpdateNoteSchema = Schema{
		Command:  "update-note",
		Usage:    "update-note BOOK_TITLE note/NOTE",
		Required: []string{Note},
	}
)

// BookArgs are the fields of add-book and update-book.
type BookArgs struct {
	Title     string
	Author    string
	Category  string
	Condition string
	Location  string
	Note      string
}

// LoanArgs are the fields of add-loan. Phone and email are validated.
type LoanArgs struct {
	Title      string
	Borrower   string
	ReturnDate string
	Phone      string
	Email      string
}

// LoanEditArgs are the fields of edit-loan; blank fields are left alone.
type LoanEditArgs struct {
	Target     string // title or 1-based index
	Borrower   string
	ReturnDate string
	Phone      string
	Email      string
}

type TitleChangeArgs struct {
	OldTitle string
	NewTitle string
}

type NoteArgs struct {
	Title string
	Note  string
}

func ParseAddBook(input string) (BookArgs, error)    { return parseBook(AddBookSchema, input) }
func ParseUpdateBook(input string) (BookArgs, error) { return parseBook(UpdateBookSchema, input) }

func parseBook(s Schema, input string) (BookArgs, error) {
	a, err := Extract(s, input)
	if err != nil {
		return BookArgs{}, err
	}
	return BookArgs{
		Title:     a.Subject,
		Author:    a.Get(Author),
		Category:  a.Get(Category),
		Condition: a.Get(Condition),
		Location:  a.Get(Location),
		Note:      a.Get(Note),
	}, nil
}

func ParseUpdateTitle(input string) (TitleChangeArgs, error) {
	a, err := Extract(UpdateTitleSchema, input)
	if err != nil {
		return TitleChangeArgs{}, err
	}
	if strings.EqualFold(a.Subject, a.Get(NewTitle)) {
		return TitleChangeArgs{}, fmt.Errorf("%w for update-title.\nTitles entered are the same.", library.ErrIncorrectFormat)
	}
	return TitleChangeArgs{OldTitle: a.Subject, NewTitle: a.Get(NewTitle)}, nil
}

func ParseAddLoan(input string) (LoanArgs, error) {
	a, err := Extract(AddLoanSchema, input)
	if err != nil {
		return LoanArgs{}, err
	}
	if err := validateContact(a); err != nil {
		return LoanArgs{}, err
	}
	return LoanArgs{
		Title:      a.Subject,
		Borrower:   a.Get(Borrower),
		ReturnDate: a.Get(Date),
		Phone:      a.Get(Phone),
		Email:      a.Get(Email),
	}, nil
}

func ParseEditLoan(input string) (LoanEditArgs, error) {
	a, err := Extract(EditLoanSchema, input)
	if err != nil {
		return LoanEditArgs{}, err
	}
	if err := validateContact(a); err != nil {
		return LoanEditArgs{}, err
	}
	return LoanEditArgs{
		Target:     a.Subject,
		Borrower:   a.Get(Borrower),
		ReturnDate: a.Get(Date),
		Phone:      a.Get(Phone),
		Email:      a.Get(Email),
	}, nil
}

// ParseDeleteLoan returns the title of the loan to delete.
func ParseDeleteLoan(input string) (string, error) {
	a, err := Extract(DeleteLoanSchema, input)
	if err != nil {
		return "", err
	}
	return a.Subject, nil
}

func ParseAddNote(input string) (NoteArgs, error)    { return parseNote(AddNoteSchema, input) }
func ParseUpdateNote(input string) (NoteArgs, error) { return parseNote(UpdateNoteSchema, input) }

func parseNote(s Schema, input string) (NoteArgs, error) {
	a, err := Extract(s, input)
	if err != nil {
		return NoteArgs{}, err
	}
	return NoteArgs{Title: a.Subject, Note: a.Get(Note)}, nil
}

// ParseSubject returns the trimmed argument of a single-subject command
// such as remove-book or search-book.
func ParseSubject(command, usage, input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("%w for %s.\nExpected format: %s", library.ErrIncorrectFormat, command, usage)
	}
	return s, nil
}

func validateContact(a Args) error {
	if a.Get(Phone) != "" {
		if _, err := library.ValidatePhone(a.Get(Phone)); err != nil {
			return err
		}
	}
	if a.Get(Email) != "" {
		if _, err := library.ValidateEmail(a.Get(Email)); err != nil {
			return err
		}
	}
	return nil
}
