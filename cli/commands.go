package cli

import (
	"errors"
	"strings"

	"bookkeeper/library"
	"bookkeeper/parser"
)

// Command is one shell command.
type Command struct {
	// Usage starts with the command name.
	Usage string
	Short string
	Exec  func(s *Shell, args string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

func commands() []*Command {
	return []*Command{
		{Usage: parser.AddBookSchema.Usage, Short: "Add a book to the inventory", Exec: cmdAddBook},
		{Usage: "remove-book BOOK_TITLE", Short: "Remove a book and any loan on it", Exec: cmdRemoveBook},
		{Usage: parser.UpdateBookSchema.Usage, Short: "Update a book's details", Exec: cmdUpdateBook},
		{Usage: parser.UpdateTitleSchema.Usage, Short: "Rename a book", Exec: cmdUpdateTitle},
		{Usage: "search-book KEYWORD", Short: "Find books whose title contains KEYWORD", Exec: cmdSearchBook},
		{Usage: "list-category CATEGORY", Short: "List books in a category", Exec: cmdListCategory},
		{Usage: "view-inventory", Short: "List all books", Exec: cmdViewInventory},
		{Usage: parser.AddNoteSchema.Usage, Short: "Add a note to a book", Exec: cmdAddNote},
		{Usage: parser.UpdateNoteSchema.Usage, Short: "Replace a book's note", Exec: cmdUpdateNote},
		{Usage: "delete-note BOOK_TITLE", Short: "Delete a book's note", Exec: cmdDeleteNote},
		{Usage: parser.AddLoanSchema.Usage, Short: "Lend a book", Exec: cmdAddLoan},
		{Usage: parser.DeleteLoanSchema.Usage, Short: "Record a returned book", Exec: cmdDeleteLoan},
		{Usage: parser.EditLoanSchema.Usage, Short: "Change a loan's details", Exec: cmdEditLoan},
		{Usage: "view-loans", Short: "List active loans", Exec: cmdViewLoans},
		{Usage: "loan-history BOOK_TITLE", Short: "Show past loans of a book", Exec: cmdLoanHistory},
		{Usage: "help", Short: "Show this help", Exec: cmdHelp},
		{Usage: "exit", Short: "Exit BookKeeper"},
	}
}

// ------------------ Books ------------------

func cmdAddBook(s *Shell, args string) error {
	a, err := parser.ParseAddBook(args)
	if err != nil {
		return err
	}
	b, err := s.mgr.AddBook(a.Title, a.Author, a.Category, a.Condition, a.Location, a.Note)
	if b == nil {
		return err
	}
	s.say("New book added: " + b.Title)
	return err
}

func cmdRemoveBook(s *Shell, args string) error {
	title, err := parser.ParseSubject("remove-book", "remove-book BOOK_TITLE", args)
	if err != nil {
		return err
	}
	b, err := s.mgr.RemoveBook(title)
	if b == nil {
		return err
	}
	s.say("Removed book: " + b.Title)
	return err
}

func cmdUpdateBook(s *Shell, args string) error {
	a, err := parser.ParseUpdateBook(args)
	if err != nil {
		return err
	}
	b, err := s.mgr.UpdateBook(a.Title, a.Author, a.Category, a.Condition, a.Location, a.Note)
	if b == nil {
		return err
	}
	s.say("Book Updated:\n" + b.String())
	return err
}

func cmdUpdateTitle(s *Shell, args string) error {
	a, err := parser.ParseUpdateTitle(args)
	if err != nil {
		return err
	}
	b, err := s.mgr.UpdateTitle(a.OldTitle, a.NewTitle)
	if b == nil {
		return err
	}
	s.say("Book title updated: " + a.OldTitle + " -> " + b.Title)
	return err
}

func cmdSearchBook(s *Shell, args string) error {
	kw, err := parser.ParseSubject("search-book", "search-book KEYWORD", args)
	if err != nil {
		return err
	}
	books := s.mgr.SearchBooks(kw)
	if len(books) == 0 {
		s.say("No books found matching: " + kw)
		return nil
	}
	s.say(formatBooks("Here are the books matching \""+kw+"\":", books))
	return nil
}

func cmdListCategory(s *Shell, args string) error {
	label, err := parser.ParseSubject("list-category", "list-category CATEGORY", args)
	if err != nil {
		return err
	}
	books, err := s.mgr.ListCategory(label)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		s.say("No books found in category: " + strings.ToLower(label))
		return nil
	}
	s.say(formatBooks("Here are the books in "+strings.ToLower(label)+":", books))
	return nil
}

func cmdViewInventory(s *Shell, _ string) error {
	books := s.mgr.Books()
	if len(books) == 0 {
		s.say("Book List Empty!")
		return nil
	}
	s.say(formatBooks("Here are the books in your inventory:", books))
	return nil
}

// ------------------ Notes ------------------

func cmdAddNote(s *Shell, args string) error {
	a, err := parser.ParseAddNote(args)
	if err != nil {
		return err
	}
	b, err := s.mgr.AddNote(a.Title, a.Note)
	if b == nil {
		return err
	}
	s.say("Note added to book: " + b.Title)
	return err
}

func cmdUpdateNote(s *Shell, args string) error {
	a, err := parser.ParseUpdateNote(args)
	if err != nil {
		return err
	}
	b, err := s.mgr.UpdateNote(a.Title, a.Note)
	if b == nil {
		return err
	}
	s.say("Note updated for book: " + b.Title)
	return err
}

func cmdDeleteNote(s *Shell, args string) error {
	title, err := parser.ParseSubject("delete-note", "delete-note BOOK_TITLE", args)
	if err != nil {
		return err
	}
	b, err := s.mgr.DeleteNote(title)
	if b == nil {
		return err
	}
	s.say("Note deleted for book: " + b.Title)
	return err
}

// ------------------ Loans ------------------

func cmdAddLoan(s *Shell, args string) error {
	a, err := parser.ParseAddLoan(args)
	if err != nil {
		return err
	}
	l, err := s.mgr.AddLoan(a.Title, a.Borrower, a.ReturnDate, a.Phone, a.Email)
	if l == nil {
		return err
	}
	s.say("Loan added successfully for book: " + l.Title)
	return err
}

func cmdDeleteLoan(s *Shell, args string) error {
	title, err := parser.ParseDeleteLoan(args)
	if err != nil {
		return err
	}
	l, err := s.mgr.DeleteLoan(title)
	if l == nil {
		return err
	}
	s.say("Loan deleted successfully for book: " + l.Title)
	return err
}

func cmdEditLoan(s *Shell, args string) error {
	a, err := parser.ParseEditLoan(args)
	if err != nil {
		return err
	}
	l, err := s.mgr.EditLoan(a.Target, a.Borrower, a.ReturnDate, a.Phone, a.Email)
	if l == nil {
		return err
	}
	s.say("Loan Updated:\n" + l.String())
	return err
}

func cmdViewLoans(s *Shell, _ string) error {
	loans := s.mgr.Loans()
	if len(loans) == 0 {
		s.say("Loan List Empty!")
		return nil
	}
	s.say(formatLoans(loans, s.mgr.Today()))
	return nil
}

func cmdLoanHistory(s *Shell, args string) error {
	title, err := parser.ParseSubject("loan-history", "loan-history BOOK_TITLE", args)
	if err != nil {
		return err
	}
	records, err := s.mgr.LoanHistory(title)
	if errors.Is(err, library.ErrHistoryDisabled) {
		s.say("Loan history is disabled.")
		return nil
	}
	if err != nil {
		return err
	}
	if len(records) == 0 {
		s.say("No loan history for book: " + title)
		return nil
	}
	s.say(formatHistory(records[len(records)-1].Title, records))
	return nil
}

func cmdHelp(s *Shell, _ string) error {
	s.say(formatHelp(s.commands))
	return nil
}
