package library

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures NewLibraryManager.
type Options struct {
	InventoryPath string
	LoansPath     string
	// HistoryPath is the SQLite loan journal; empty disables it.
	HistoryPath string
	Logger      zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// LibraryManager owns the inventory and loan list and keeps them consistent
// with each other and with disk. Every mutating method saves the files it
// touched; on a failed save the in-memory state is kept and the error wraps
// ErrStorage.
type LibraryManager struct {
	books   *BookList
	loans   *LoanList
	store   *Storage
	history *History
	log     zerolog.Logger
	now     func() time.Time

	warnings []string
}

// NewLibraryManager loads both files, opens the journal and runs a first
// reconciliation pass.
func NewLibraryManager(opts Options) (*LibraryManager, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	lm := &LibraryManager{
		store: NewStorage(opts.InventoryPath, opts.LoansPath, opts.Logger),
		log:   opts.Logger,
		now:   now,
	}

	books, w, err := lm.store.LoadInventory()
	if err != nil {
		return nil, err
	}
	lm.warnings = append(lm.warnings, w...)
	loans, w, err := lm.store.LoadLoans(books)
	if err != nil {
		return nil, err
	}
	lm.warnings = append(lm.warnings, w...)
	lm.books, lm.loans = books, loans

	if opts.HistoryPath != "" {
		h, err := NewHistory(opts.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("open loan history: %w", err)
		}
		lm.history = h
	}

	if err := lm.Reconcile(); err != nil {
		lm.warnings = append(lm.warnings, err.Error())
	}
	return lm, nil
}

// Close closes the loan journal, if any.
func (lm *LibraryManager) Close() error {
	if lm.history == nil {
		return nil
	}
	return lm.history.Close()
}

// Warnings lists the records skipped while loading.
func (lm *LibraryManager) Warnings() []string { return lm.warnings }

// Today is the manager's clock reading.
func (lm *LibraryManager) Today() time.Time { return lm.now() }

// Reconcile recomputes every on-loan flag from the loan list and persists
// both files. It runs before every command so a crash between the two
// writes heals on the next one.
func (lm *LibraryManager) Reconcile() error {
	Reconcile(lm.books, lm.loans)
	return lm.save(true, true)
}

// ------------------ Books ------------------

func (lm *LibraryManager) Books() []*Book { return lm.books.All() }

// FindBook looks a book up by title, ignoring case.
func (lm *LibraryManager) FindBook(title string) (*Book, error) {
	b, ok := lm.books.FindByTitle(title)
	if !ok {
		return nil, fmt.Errorf("%w: Book not found in inventory: %s", ErrNotFound, title)
	}
	return b, nil
}

// AddBook creates a book after checking that the title is free.
func (lm *LibraryManager) AddBook(title, author, category, condition, location, note string) (*Book, error) {
	if _, ok := lm.books.FindByTitle(title); ok {
		return nil, fmt.Errorf("%w: Book already exists in inventory: %s", ErrDuplicate, title)
	}
	b, err := NewBook(title, author, category, condition, location, note)
	if err != nil {
		return nil, err
	}
	lm.books.Add(b)
	lm.log.Info().Str("title", b.Title).Msg("book added")
	return b, lm.save(true, false)
}

// UpdateBook overwrites the given fields of an existing book.
func (lm *LibraryManager) UpdateBook(title, author, category, condition, location, note string) (*Book, error) {
	b, err := lm.FindBook(title)
	if err != nil {
		return nil, err
	}
	if err := b.SetFields(author, category, condition, location, note); err != nil {
		return nil, err
	}
	lm.log.Info().Str("title", b.Title).Msg("book updated")
	return b, lm.save(true, false)
}

// UpdateTitle renames a book and re-keys its loan and journal records.
func (lm *LibraryManager) UpdateTitle(oldTitle, newTitle string) (*Book, error) {
	b, err := lm.FindBook(oldTitle)
	if err != nil {
		return nil, err
	}
	if other, ok := lm.books.FindByTitle(newTitle); ok && other != b {
		return nil, fmt.Errorf("%w: Book already exists in inventory: %s", ErrDuplicate, other.Title)
	}
	previous := b.Title
	b.Title = newTitle
	lm.loans.Retitle(previous, newTitle)
	if lm.history != nil {
		if err := lm.history.Retitled(previous, newTitle); err != nil {
			lm.log.Error().Err(err).Str("title", previous).Msg("journal retitle failed")
		}
	}
	lm.log.Info().Str("from", previous).Str("to", newTitle).Msg("book retitled")
	return b, lm.save(true, true)
}

// RemoveBook deletes a book and every loan on it.
func (lm *LibraryManager) RemoveBook(title string) (*Book, error) {
	b, err := lm.FindBook(title)
	if err != nil {
		return nil, err
	}
	if n := lm.loans.RemoveByBook(b); n > 0 {
		lm.journalClosed(b.Title, ClosedBookRemoved)
	}
	lm.books.Remove(b)
	lm.log.Info().Str("title", b.Title).Msg("book removed")
	return b, lm.save(true, true)
}

// SearchBooks returns books whose title contains keyword.
func (lm *LibraryManager) SearchBooks(keyword string) []*Book {
	return lm.books.FindByKeyword(keyword)
}

// ListCategory returns the books shelved under the given category label.
func (lm *LibraryManager) ListCategory(label string) ([]*Book, error) {
	c, err := CategoryFromLabel(label)
	if err != nil {
		return nil, err
	}
	return lm.books.FindByCategory(c), nil
}

// ------------------ Notes ------------------

// AddNote sets the note of a book that has none.
func (lm *LibraryManager) AddNote(title, note string) (*Book, error) {
	b, err := lm.FindBook(title)
	if err != nil {
		return nil, err
	}
	if b.Note != "" {
		return nil, fmt.Errorf("%w: Book already has a note:\n%s", ErrConflict, b.Note)
	}
	b.Note = note
	return b, lm.save(true, false)
}

// UpdateNote replaces an existing note.
func (lm *LibraryManager) UpdateNote(title, note string) (*Book, error) {
	b, err := lm.FindBook(title)
	if err != nil {
		return nil, err
	}
	if b.Note == "" {
		return nil, fmt.Errorf("%w: Book does not have a note. Please use add-note instead.", ErrConflict)
	}
	b.Note = note
	return b, lm.save(true, false)
}

// DeleteNote clears an existing note.
func (lm *LibraryManager) DeleteNote(title string) (*Book, error) {
	b, err := lm.FindBook(title)
	if err != nil {
		return nil, err
	}
	if b.Note == "" {
		return nil, fmt.Errorf("%w: No note exists for the book: %s", ErrConflict, b.Title)
	}
	b.Note = ""
	return b, lm.save(true, false)
}

// ------------------ Loans ------------------

func (lm *LibraryManager) Loans() []*Loan { return lm.loans.All() }

// FindLoan returns the loan on the named book.
func (lm *LibraryManager) FindLoan(title string) (*Loan, error) {
	b, err := lm.FindBook(title)
	if err != nil {
		return nil, err
	}
	l, ok := lm.loans.Find(b)
	if !ok {
		return nil, fmt.Errorf("%w: The book %s is not currently out on loan.", ErrNotFound, b.Title)
	}
	return l, nil
}

// AddLoan lends an available book. Phone and email must already be valid.
func (lm *LibraryManager) AddLoan(title, borrower, returnDate, phone, email string) (*Loan, error) {
	b, err := lm.FindBook(title)
	if err != nil {
		return nil, err
	}
	if b.OnLoan {
		return nil, fmt.Errorf("%w: The book %s is currently out on loan.", ErrConflict, b.Title)
	}
	l, err := NewLoan(b.Title, borrower, returnDate, phone, email, lm.now())
	if err != nil {
		return nil, err
	}
	lm.loans.Add(l)
	if lm.history != nil {
		if _, err := lm.history.LoanOpened(l, lm.now()); err != nil {
			lm.log.Error().Err(err).Str("title", l.Title).Msg("journal open failed")
		}
	}
	lm.log.Info().Str("title", l.Title).Str("borrower", l.Borrower).Msg("loan added")
	return l, lm.save(true, true)
}

// EditLoan changes the given fields of a loan. target is a book title or,
// when no book has that title, the loan's 1-based position in Loans.
func (lm *LibraryManager) EditLoan(target, borrower, returnDate, phone, email string) (*Loan, error) {
	l, err := lm.resolveLoan(target)
	if err != nil {
		return nil, err
	}
	if err := l.SetFields(borrower, returnDate, phone, email, lm.now()); err != nil {
		return nil, err
	}
	if lm.history != nil {
		if err := lm.history.LoanEdited(l); err != nil {
			lm.log.Error().Err(err).Str("title", l.Title).Msg("journal edit failed")
		}
	}
	lm.log.Info().Str("title", l.Title).Msg("loan edited")
	return l, lm.save(false, true)
}

// DeleteLoan ends the loan on the named book.
func (lm *LibraryManager) DeleteLoan(title string) (*Loan, error) {
	l, err := lm.FindLoan(title)
	if err != nil {
		return nil, err
	}
	lm.loans.Delete(l)
	lm.journalClosed(l.Title, ClosedReturned)
	lm.log.Info().Str("title", l.Title).Msg("loan deleted")
	return l, lm.save(true, true)
}

// LoanHistory returns the journal records for title, oldest first.
func (lm *LibraryManager) LoanHistory(title string) ([]*LoanRecord, error) {
	if lm.history == nil {
		return nil, ErrHistoryDisabled
	}
	if b, ok := lm.books.FindByTitle(title); ok {
		title = b.Title
	}
	return lm.history.ForBook(strings.TrimSpace(title))
}

func (lm *LibraryManager) resolveLoan(target string) (*Loan, error) {
	if b, ok := lm.books.FindByTitle(target); ok {
		if l, ok := lm.loans.Find(b); ok {
			return l, nil
		}
		return nil, fmt.Errorf("%w: The book %s is not currently out on loan.", ErrNotFound, b.Title)
	}
	if i, err := strconv.Atoi(strings.TrimSpace(target)); err == nil {
		if l, ok := lm.loans.FindByIndex(i); ok {
			return l, nil
		}
		return nil, fmt.Errorf("%w: no loan at index %d", ErrNotFound, i)
	}
	return nil, fmt.Errorf("%w: Book not found in inventory: %s", ErrNotFound, target)
}

func (lm *LibraryManager) journalClosed(title, reason string) {
	if lm.history == nil {
		return
	}
	if err := lm.history.LoanClosed(title, reason, lm.now()); err != nil {
		lm.log.Error().Err(err).Str("title", title).Msg("journal close failed")
	}
}

func (lm *LibraryManager) save(inventory, loans bool) error {
	var errs []error
	if loans {
		errs = append(errs, lm.store.SaveLoans(lm.loans))
	}
	if inventory {
		errs = append(errs, lm.store.SaveInventory(lm.books))
	}
	return errors.Join(errs...)
}
