package library

import (
	"fmt"
	"strings"
	"time"
)

// Book is one copy in the inventory. Title is its identity key and is
// compared without regard to case.
type Book struct {
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Category  Category  `json:"category"`
	Condition Condition `json:"condition"`
	Location  string    `json:"location"`
	Note      string    `json:"note"` // empty means no note
	OnLoan    bool      `json:"on_loan"`
}

// NewBook builds a Book from raw labels; category and condition must be
// members of their closed sets.
func NewBook(title, author, category, condition, location, note string) (*Book, error) {
	cat, err := CategoryFromLabel(category)
	if err != nil {
		return nil, err
	}
	cond, err := ConditionFromLabel(condition)
	if err != nil {
		return nil, err
	}
	return &Book{
		Title:     title,
		Author:    author,
		Category:  cat,
		Condition: cond,
		Location:  location,
		Note:      note,
	}, nil
}

// SetFields applies the non-blank arguments. Labels are checked before
// anything is assigned, so a bad label leaves the book untouched.
func (b *Book) SetFields(author, category, condition, location, note string) error {
	cat, cond := b.Category, b.Condition
	if strings.TrimSpace(category) != "" {
		c, err := CategoryFromLabel(category)
		if err != nil {
			return err
		}
		cat = c
	}
	if strings.TrimSpace(condition) != "" {
		c, err := ConditionFromLabel(condition)
		if err != nil {
			return err
		}
		cond = c
	}

	if strings.TrimSpace(author) != "" {
		b.Author = author
	}
	if strings.TrimSpace(location) != "" {
		b.Location = location
	}
	if strings.TrimSpace(note) != "" {
		b.Note = note
	}
	b.Category, b.Condition = cat, cond
	return nil
}

// HasTitle reports whether title names this book.
func (b *Book) HasTitle(title string) bool {
	return equalTitle(b.Title, title)
}

func equalTitle(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (b *Book) String() string {
	location := b.Location
	if b.OnLoan {
		location = "Out on loan"
	}
	note := b.Note
	if note == "" {
		note = "No notes available"
	}
	return fmt.Sprintf("Title: %s\n    Author: %s\n    Category: %s\n    Condition: %s\n    On Loan: %t\n    Location: %s\n    Note: %s",
		b.Title, b.Author, b.Category, b.Condition, b.OnLoan, location, note)
}

// Loan records that a book is out. It refers to the book by title and is
// resolved through the BookList that owns the book.
type Loan struct {
	Title      string    `json:"title"`
	Borrower   string    `json:"borrower"`
	ReturnDate time.Time `json:"return_date"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
}

// NewLoan validates the return date against today. Phone and email are
// checked by the command parser, not here.
func NewLoan(title, borrower, returnDate, phone, email string, today time.Time) (*Loan, error) {
	d, err := ParseReturnDate(returnDate, today)
	if err != nil {
		return nil, err
	}
	return &Loan{
		Title:      title,
		Borrower:   borrower,
		ReturnDate: d,
		Phone:      phone,
		Email:      email,
	}, nil
}

// SetFields applies the non-blank arguments. A bad return date leaves the
// loan untouched.
func (l *Loan) SetFields(borrower, returnDate, phone, email string, today time.Time) error {
	if strings.TrimSpace(returnDate) != "" {
		d, err := ParseReturnDate(returnDate, today)
		if err != nil {
			return err
		}
		l.ReturnDate = d
	}
	if strings.TrimSpace(borrower) != "" {
		l.Borrower = borrower
	}
	if strings.TrimSpace(phone) != "" {
		l.Phone = phone
	}
	if strings.TrimSpace(email) != "" {
		l.Email = email
	}
	return nil
}

// Overdue reports whether the return date is before today.
func (l *Loan) Overdue(today time.Time) bool {
	return l.ReturnDate.Before(truncateDay(today))
}

func (l *Loan) String() string {
	return fmt.Sprintf("Title: %s\n    Borrower: %s\n    Return Date: %s\n    Contact Number: %s\n    Email: %s",
		l.Title, l.Borrower, l.ReturnDate.Format(DateLayout), l.Phone, l.Email)
}
