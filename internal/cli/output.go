package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"blog/internal/domain/entity"
	"blog/internal/domain/validation"
)

type authorView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type articleView struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Status      string      `json:"status"`
	PublishedAt *time.Time  `json:"published_at"`
	AuthorID    *int64      `json:"author_id"`
	Author      *authorView `json:"author,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func viewOf(a entity.Article, author *entity.Author) articleView {
	v := articleView{
		ID:          a.ID,
		Title:       a.Title,
		Status:      a.Status.String(),
		PublishedAt: a.PublishedAt,
		AuthorID:    a.AuthorID,
		CreatedAt:   a.CreatedAt,
	}
	if author != nil {
		v.Author = &authorView{ID: author.ID, Name: author.Name}
	}
	return v
}

func (a *app) printArticles(cmd *cobra.Command, views []articleView) error {
	out := cmd.OutOrStdout()
	if a.output == outputJSON {
		return writeJSON(out, views)
	}
	if len(views) == 0 {
		_, err := fmt.Fprintln(out, "(no articles)")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPUBLISHED\tAUTHOR\tCREATED")
	for _, v := range views {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Title, v.Status, formatDate(v.PublishedAt), formatAuthor(v), v.CreatedAt.UTC().Format(time.RFC3339))
	}
	return tw.Flush()
}

func (a *app) printAuthors(cmd *cobra.Command, authors []entity.Author) error {
	out := cmd.OutOrStdout()
	if a.output == outputJSON {
		views := make([]authorView, 0, len(authors))
		for _, au := range authors {
			views = append(views, authorView{ID: au.ID, Name: au.Name})
		}
		return writeJSON(out, views)
	}
	if len(authors) == 0 {
		_, err := fmt.Fprintln(out, "(no authors)")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, au := range authors {
		fmt.Fprintf(tw, "%d\t%s\n", au.ID, au.Name)
	}
	return tw.Flush()
}

func (a *app) printErrors(cmd *cobra.Command, errs validation.Errors) error {
	out := cmd.OutOrStdout()
	if a.output == outputJSON {
		if errs == nil {
			errs = validation.Errors{}
		}
		return writeJSON(out, struct {
			Errors validation.Errors `json:"errors"`
		}{errs})
	}
	for _, fe := range errs {
		if _, err := fmt.Fprintf(out, "%s: %s\n", fe.Field, fe.Kind); err != nil {
			return err
		}
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format("2006-01-02")
}

func formatAuthor(v articleView) string {
	switch {
	case v.Author != nil:
		return v.Author.Name
	case v.AuthorID != nil:
		return "#" + strconv.FormatInt(*v.AuthorID, 10)
	default:
		return "-"
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
