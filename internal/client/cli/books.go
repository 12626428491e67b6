package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/booktracker/internal/client/models"
)

// clearValue entered at an edit prompt removes an optional field.
const clearValue = "-"

var (
	errInvalidID   = errors.New("book id must be a positive number")
	errInvalidYear = errors.New("published year must be a number")
)

func (a *App) List(ctx context.Context) error {
	books, err := a.bookService.List(ctx)
	if err != nil {
		return a.handleErr(err)
	}

	if len(books) == 0 {
		fmt.Fprintln(a.out, "No books yet. Use 'add' to create one.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tYEAR\tRECOMMENDATION")
	for _, b := range books {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Author, yearString(b.PublishedYear), stringOrEmpty(b.Recommendation))
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	in, err := a.readBook(nil)
	if err != nil {
		return err
	}

	id, err := a.bookService.Add(ctx, in)
	if err != nil {
		return a.handleErr(err)
	}

	fmt.Fprintf(a.out, "Book added successfully! (id %d)\n", id)
	return nil
}

// Edit prompts for every field. An empty answer keeps the current value
// when the book is in the caller's list; "-" clears an optional field.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.bookID(args)
	if err != nil {
		return err
	}

	books, err := a.bookService.List(ctx)
	if err != nil {
		return a.handleErr(err)
	}
	var current *models.Book
	for i := range books {
		if books[i].ID == id {
			current = &books[i]
			break
		}
	}

	in, err := a.readBook(current)
	if err != nil {
		return err
	}

	if err := a.bookService.Edit(ctx, id, in); err != nil {
		return a.handleErr(err)
	}

	fmt.Fprintln(a.out, "Book updated successfully!")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.bookID(args)
	if err != nil {
		return err
	}

	if err := a.bookService.Delete(ctx, id); err != nil {
		return a.handleErr(err)
	}

	fmt.Fprintln(a.out, "Book deleted successfully!")
	return nil
}

func (a *App) bookID(args []string) (int64, error) {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = GetSimpleText(a.reader, "Book ID", a.out); err != nil {
			return 0, err
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// readBook collects book fields. With current set, prompts show the current
// values and empty answers keep them.
func (a *App) readBook(current *models.Book) (models.BookInput, error) {
	var in models.BookInput

	title, err := GetSimpleText(a.reader, prompt("Title", current, func(b *models.Book) string { return b.Title }), a.out)
	if err != nil {
		return in, err
	}
	author, err := GetSimpleText(a.reader, prompt("Author", current, func(b *models.Book) string { return b.Author }), a.out)
	if err != nil {
		return in, err
	}
	rec, err := GetSimpleText(a.reader, prompt("Recommendation (optional)", current, func(b *models.Book) string { return stringOrEmpty(b.Recommendation) }), a.out)
	if err != nil {
		return in, err
	}
	year, err := GetSimpleText(a.reader, prompt("Published year (optional)", current, func(b *models.Book) string { return yearString(b.PublishedYear) }), a.out)
	if err != nil {
		return in, err
	}

	if current != nil {
		if title == "" {
			title = current.Title
		}
		if author == "" {
			author = current.Author
		}
	}
	in.Title, in.Author = title, author

	switch {
	case rec == clearValue:
	case rec != "":
		in.Recommendation = &rec
	case current != nil:
		in.Recommendation = current.Recommendation
	}

	switch {
	case year == clearValue:
	case year != "":
		y, err := strconv.Atoi(year)
		if err != nil {
			return in, errInvalidYear
		}
		in.PublishedYear = &y
	case current != nil:
		in.PublishedYear = current.PublishedYear
	}

	return in, nil
}

func prompt(label string, current *models.Book, value func(*models.Book) string) string {
	if current == nil {
		return label
	}
	if v := value(current); v != "" {
		return fmt.Sprintf("%s [%s]", label, v)
	}
	return label
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yearString(y *int) string {
	if y == nil {
		return ""
	}
	return strconv.Itoa(*y)
}
