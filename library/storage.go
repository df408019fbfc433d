package library

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"
)

const (
	fieldSep = " | "

	minBookFields = 6 // note may be missing
	minLoanFields = 5
)

// Storage reads and writes the inventory and loan files. The two files are
// written independently; Reconcile repairs any drift between them.
type Storage struct {
	inventoryPath string
	loansPath     string
	log           zerolog.Logger
}

func NewStorage(inventoryPath, loansPath string, log zerolog.Logger) *Storage {
	return &Storage{inventoryPath: inventoryPath, loansPath: loansPath, log: log}
}

func (s *Storage) InventoryPath() string { return s.inventoryPath }
func (s *Storage) LoansPath() string     { return s.loansPath }

// FormatBook renders b as one inventory line.
func FormatBook(b *Book) string {
	return strings.Join([]string{
		b.Title, b.Author, b.Category.String(), b.Condition.String(),
		strconv.FormatBool(b.OnLoan), b.Location, b.Note,
	}, fieldSep)
}

// FormatLoan renders l as one loan line.
func FormatLoan(l *Loan) string {
	return strings.Join([]string{
		l.Title, l.Borrower, l.ReturnDate.Format(DateLayout), l.Phone, l.Email,
	}, fieldSep)
}

// ParseBook turns an inventory line back into a Book. The stored on-loan
// column is ignored; the flag is recomputed from the loan list.
func ParseBook(line string) (*Book, error) {
	parts := strings.Split(line, fieldSep)
	if len(parts) < minBookFields {
		return nil, fmt.Errorf("%w: expected at least %d fields, got %d", ErrIncorrectFormat, minBookFields, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] == "" {
		return nil, fmt.Errorf("%w: empty title", ErrIncorrectFormat)
	}
	note := ""
	if len(parts) > minBookFields {
		note = parts[6]
	}
	return NewBook(parts[0], parts[1], parts[2], parts[3], parts[5], note)
}

// ParseLoan turns a loan line back into a Loan bound to a book in books.
// Past return dates are kept so overdue loans survive a restart.
func ParseLoan(line string, books *BookList) (*Loan, error) {
	parts := strings.Split(line, fieldSep)
	if len(parts) < minLoanFields {
		return nil, fmt.Errorf("%w: expected at least %d fields, got %d", ErrIncorrectFormat, minLoanFields, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	b, ok := books.FindByTitle(parts[0])
	if !ok {
		return nil, fmt.Errorf("%w: book %q is not in the inventory", ErrNotFound, parts[0])
	}
	d, err := ParseDate(parts[2])
	if err != nil {
		return nil, err
	}
	if _, err := ValidatePhone(parts[3]); err != nil {
		return nil, err
	}
	if _, err := ValidateEmail(parts[4]); err != nil {
		return nil, err
	}
	return &Loan{
		Title:      b.Title,
		Borrower:   parts[1],
		ReturnDate: d,
		Phone:      parts[3],
		Email:      parts[4],
	}, nil
}

// LoadInventory reads the inventory file. A missing file is an empty
// inventory. Malformed and duplicate lines are skipped; each skip is
// described in the returned warnings.
func (s *Storage) LoadInventory() (*BookList, []string, error) {
	books := NewBookList()
	var warnings []string

	err := s.eachLine(s.inventoryPath, func(n int, line string) {
		b, err := ParseBook(line)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Invalid book entry skipped (line %d): %s\nReason: %v", n, line, err))
			return
		}
		if _, dup := books.FindByTitle(b.Title); dup {
			warnings = append(warnings, fmt.Sprintf("Duplicate book found and skipped: %s", b.Title))
			return
		}
		books.Add(b)
	})
	if err != nil {
		return nil, nil, err
	}

	s.logSkips(warnings)
	s.log.Info().Str("path", s.inventoryPath).Int("books", books.Len()).Msg("inventory loaded")
	return books, warnings, nil
}

// LoadLoans reads the loan file, resolving every title against books, which
// must already be loaded. Loans on unknown titles are skipped, never
// invented.
func (s *Storage) LoadLoans(books *BookList) (*LoanList, []string, error) {
	loans := NewLoanList(books)
	var warnings []string

	err := s.eachLine(s.loansPath, func(n int, line string) {
		l, err := ParseLoan(line, books)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Invalid loan entry skipped (line %d): %s\nReason: %v", n, line, err))
			return
		}
		b, _ := books.FindByTitle(l.Title)
		if _, dup := loans.Find(b); dup {
			warnings = append(warnings, fmt.Sprintf("Duplicate loan found and skipped: %s borrowed by %s", l.Title, l.Borrower))
			return
		}
		loans.Add(l)
	})
	if err != nil {
		return nil, nil, err
	}

	s.logSkips(warnings)
	s.log.Info().Str("path", s.loansPath).Int("loans", loans.Len()).Msg("loans loaded")
	return loans, warnings, nil
}

func (s *Storage) SaveInventory(books *BookList) error {
	lines := make([]string, 0, books.Len())
	for _, b := range books.books {
		lines = append(lines, FormatBook(b))
	}
	return s.write(s.inventoryPath, lines)
}

func (s *Storage) SaveLoans(loans *LoanList) error {
	lines := make([]string, 0, loans.Len())
	for _, l := range loans.loans {
		lines = append(lines, FormatLoan(l))
	}
	return s.write(s.loansPath, lines)
}

func (s *Storage) eachLine(path string, fn func(n int, line string)) error {
	f, err := os.Open(filepath.Clean(path))
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info().Str("path", path).Msg("no saved file, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrStorage, path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fn(n, line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrStorage, path, err)
	}
	return nil
}

func (s *Storage) write(path string, lines []string) error {
	// Ensure directory exists so first save succeeds.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create dir: %w", ErrStorage, err)
		}
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := atomic.WriteFile(path, strings.NewReader(sb.String())); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("save failed")
		return fmt.Errorf("%w: write %s: %w", ErrStorage, path, err)
	}
	s.log.Debug().Str("path", path).Int("records", len(lines)).Msg("saved")
	return nil
}

func (s *Storage) logSkips(warnings []string) {
	for _, w := range warnings {
		s.log.Warn().Msg(w)
	}
}
