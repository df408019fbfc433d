package library

import "strings"

// BookList is the ordered inventory. It does not enforce title uniqueness
// on Add: the caller checks FindByTitle first, which is what add-book and
// the loader do.
type BookList struct {
	books []*Book
}

// NewBookList returns a list holding books in the given order.
func NewBookList(books ...*Book) *BookList {
	return &BookList{books: append([]*Book(nil), books...)}
}

func (bl *BookList) Add(b *Book) { bl.books = append(bl.books, b) }

// Remove drops b by identity. Loans referencing b must be removed first.
func (bl *BookList) Remove(b *Book) {
	for i, x := range bl.books {
		if x == b {
			bl.books = append(bl.books[:i], bl.books[i+1:]...)
			return
		}
	}
}

// FindByTitle returns the book whose title equals title ignoring case.
func (bl *BookList) FindByTitle(title string) (*Book, bool) {
	for _, b := range bl.books {
		if b.HasTitle(title) {
			return b, true
		}
	}
	return nil, false
}

// FindByKeyword returns books whose title contains keyword, ignoring case.
func (bl *BookList) FindByKeyword(keyword string) []*Book {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	found := []*Book{}
	for _, b := range bl.books {
		if strings.Contains(strings.ToLower(b.Title), kw) {
			found = append(found, b)
		}
	}
	return found
}

func (bl *BookList) FindByCategory(c Category) []*Book {
	found := []*Book{}
	for _, b := range bl.books {
		if b.Category == c {
			found = append(found, b)
		}
	}
	return found
}

// All returns the books in insertion order. The slice is a copy; the books
// are not.
func (bl *BookList) All() []*Book { return append([]*Book(nil), bl.books...) }

func (bl *BookList) Len() int { return len(bl.books) }
