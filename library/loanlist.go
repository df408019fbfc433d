package library

// LoanList holds the active loans. Each loan names its book by title and is
// resolved through books, so the on-loan flag always lands on the copy the
// inventory owns.
type LoanList struct {
	books *BookList
	loans []*Loan
}

// NewLoanList binds a loan list to the inventory its titles resolve against.
func NewLoanList(books *BookList, loans ...*Loan) *LoanList {
	return &LoanList{books: books, loans: append([]*Loan(nil), loans...)}
}

// Add appends l and marks its book as on loan.
func (ll *LoanList) Add(l *Loan) {
	ll.loans = append(ll.loans, l)
	if b, ok := ll.books.FindByTitle(l.Title); ok {
		b.OnLoan = true
	}
}

// Delete removes l by identity and clears its book's flag. Deleting a loan
// that is not in the list does nothing.
func (ll *LoanList) Delete(l *Loan) {
	for i, x := range ll.loans {
		if x != l {
			continue
		}
		ll.loans = append(ll.loans[:i], ll.loans[i+1:]...)
		if b, ok := ll.books.FindByTitle(l.Title); ok {
			b.OnLoan = false
		}
		return
	}
}

// Find returns the loan on b.
func (ll *LoanList) Find(b *Book) (*Loan, bool) {
	if b == nil {
		return nil, false
	}
	for _, l := range ll.loans {
		if b.HasTitle(l.Title) {
			return l, true
		}
	}
	return nil, false
}

// FindByIndex returns the loan at the 1-based position index.
func (ll *LoanList) FindByIndex(index int) (*Loan, bool) {
	if index < 1 || index > len(ll.loans) {
		return nil, false
	}
	return ll.loans[index-1], true
}

// RemoveByBook drops every loan on b and returns how many were removed.
func (ll *LoanList) RemoveByBook(b *Book) int {
	kept := ll.loans[:0]
	removed := 0
	for _, l := range ll.loans {
		if b.HasTitle(l.Title) {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	ll.loans = kept
	if removed > 0 {
		b.OnLoan = false
	}
	return removed
}

// Retitle re-keys loans on oldTitle to newTitle after a book rename.
func (ll *LoanList) Retitle(oldTitle, newTitle string) {
	for _, l := range ll.loans {
		if equalTitle(l.Title, oldTitle) {
			l.Title = newTitle
		}
	}
}

func (ll *LoanList) All() []*Loan { return append([]*Loan(nil), ll.loans...) }

func (ll *LoanList) Len() int { return len(ll.loans) }

// Reconcile recomputes every book's on-loan flag from loans. Loans are the
// source of truth; whatever the flags said before is discarded.
func Reconcile(books *BookList, loans *LoanList) {
	for _, b := range books.books {
		b.OnLoan = false
	}
	for _, l := range loans.loans {
		if b, ok := books.FindByTitle(l.Title); ok {
			b.OnLoan = true
		}
	}
}
