package library

import (
	"testing"
	"time"
)

func mustBook(t *testing.T, title string) *Book {
	t.Helper()
	b, err := NewBook(title, "Author", "fiction", "good", "Shelf 1", "")
	if err != nil {
		t.Fatalf("new book %q: %v", title, err)
	}
	return b
}

func newTestLoan(title, borrower string) *Loan {
	return &Loan{
		Title:      title,
		Borrower:   borrower,
		ReturnDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.Local),
		Phone:      "91234567",
		Email:      "x@y.com",
	}
}

func TestBookListLookups(t *testing.T) {
	dune, emma := mustBook(t, "Dune"), mustBook(t, "Emma")
	emma.Category = Romance
	bl := NewBookList(dune, emma)

	if b, ok := bl.FindByTitle("  dUNE "); !ok || b != dune {
		t.Fatalf("FindByTitle ignores case and padding, got %v %v", b, ok)
	}
	if _, ok := bl.FindByTitle("Dun"); ok {
		t.Fatalf("FindByTitle must match whole titles")
	}
	if got := bl.FindByKeyword("UN"); len(got) != 1 || got[0] != dune {
		t.Fatalf("FindByKeyword(UN) = %v", got)
	}
	if got := bl.FindByKeyword("zzz"); got == nil || len(got) != 0 {
		t.Fatalf("no match should be an empty, non-nil slice: %#v", got)
	}
	if got := bl.FindByCategory(Romance); len(got) != 1 || got[0] != emma {
		t.Fatalf("FindByCategory(Romance) = %v", got)
	}

	bl.Remove(dune)
	if bl.Len() != 1 {
		t.Fatalf("len after remove = %d", bl.Len())
	}
	bl.Remove(dune)
	if bl.Len() != 1 {
		t.Fatalf("removing twice must be a no-op")
	}
}

func TestLoanListAddDelete(t *testing.T) {
	dune := mustBook(t, "Dune")
	ll := NewLoanList(NewBookList(dune))
	l := newTestLoan("dune", "Alice")

	ll.Add(l)
	if !dune.OnLoan {
		t.Fatalf("book should be on loan after Add")
	}
	if got, ok := ll.Find(dune); !ok || got != l {
		t.Fatalf("Find = %v %v, want the added loan", got, ok)
	}

	ll.Delete(l)
	if dune.OnLoan {
		t.Fatalf("book should be back after Delete")
	}
	if _, ok := ll.Find(dune); ok {
		t.Fatalf("Find after Delete should fail")
	}

	ll.Delete(l)
	if ll.Len() != 0 {
		t.Fatalf("deleting an absent loan changed the list")
	}
}

func TestLoanListIndexAndRetitle(t *testing.T) {
	dune, emma := mustBook(t, "Dune"), mustBook(t, "Emma")
	ll := NewLoanList(NewBookList(dune, emma))
	a, b := newTestLoan("Dune", "Alice"), newTestLoan("Emma", "Bob")
	ll.Add(a)
	ll.Add(b)

	if got, ok := ll.FindByIndex(2); !ok || got != b {
		t.Fatalf("FindByIndex(2) = %v %v", got, ok)
	}
	for _, i := range []int{0, 3, -1} {
		if _, ok := ll.FindByIndex(i); ok {
			t.Fatalf("FindByIndex(%d) should fail", i)
		}
	}

	ll.Retitle("DUNE", "Dune Messiah")
	if a.Title != "Dune Messiah" || b.Title != "Emma" {
		t.Fatalf("Retitle touched the wrong loans: %q %q", a.Title, b.Title)
	}

	if n := ll.RemoveByBook(emma); n != 1 {
		t.Fatalf("RemoveByBook = %d, want 1", n)
	}
	if emma.OnLoan || ll.Len() != 1 {
		t.Fatalf("cascade left state behind: onLoan=%v len=%d", emma.OnLoan, ll.Len())
	}
}

func TestReconcile(t *testing.T) {
	dune, emma := mustBook(t, "Dune"), mustBook(t, "Emma")
	books := NewBookList(dune, emma)
	ll := NewLoanList(books, newTestLoan("Dune", "Alice"))

	// Stale flags in both directions.
	dune.OnLoan, emma.OnLoan = false, true

	Reconcile(books, ll)
	if !dune.OnLoan || emma.OnLoan {
		t.Fatalf("after reconcile dune=%v emma=%v", dune.OnLoan, emma.OnLoan)
	}
	Reconcile(books, ll)
	if !dune.OnLoan || emma.OnLoan {
		t.Fatalf("second reconcile changed flags")
	}
}
