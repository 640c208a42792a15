package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"blog/internal/domain/entity"
	"blog/internal/domain/validation"
	artUC "blog/internal/usecase/article"
)

// errRejected is returned after the field errors of a rejected command are printed.
var errRejected = errors.New("article rejected")

func articlesCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "articles",
		Short: "Create, update and list articles",
	}

	c.AddCommand(
		articlesCreateCmd(a),
		articlesUpdateCmd(a),
		articlesShowCmd(a),
		articlesListCmd(a),
	)
	return c
}

// formFlags binds the article form fields. Only flags given on the command
// line end up in the input, so an omitted flag reads as a missing field.
type formFlags struct {
	title       string
	status      string
	publishedAt string
	authorID    string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "article title")
	cmd.Flags().StringVar(&f.status, "status", "", "draft or published")
	cmd.Flags().StringVar(&f.publishedAt, "published-at", "", "publication date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&f.authorID, "author-id", "", "author id")
}

func (f *formFlags) input(cmd *cobra.Command) validation.Input {
	in := validation.Input{}
	set := func(flag, key, value string) {
		if cmd.Flags().Changed(flag) {
			in[key] = value
		}
	}
	set("title", "title", f.title)
	set("status", "status", f.status)
	set("published-at", "published_at", f.publishedAt)
	set("author-id", "author_id", f.authorID)
	return in
}

func articlesCreateCmd(a *app) *cobra.Command {
	var form formFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an article",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outcome := a.svc.CreateArticle(cmd.Context(), form.input(cmd))
			return a.printOutcome(cmd, outcome)
		},
	}

	form.register(cmd)
	return cmd
}

func articlesUpdateCmd(a *app) *cobra.Command {
	var form formFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace the fields of an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			outcome := a.svc.UpdateArticle(cmd.Context(), id, form.input(cmd))
			return a.printOutcome(cmd, outcome)
		},
	}

	form.register(cmd)
	return cmd
}

func articlesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			article, err := a.svc.FindArticle(cmd.Context(), id)
			if errors.Is(err, entity.ErrNotFound) {
				return fmt.Errorf("article %d not found", id)
			}
			if err != nil {
				return err
			}
			return a.printArticles(cmd, []articleView{viewOf(article, nil)})
		},
	}
}

func articlesListCmd(a *app) *cobra.Command {
	var public bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles; newest first, or published oldest first with --public",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if public {
				articles, err := a.svc.ListPublished(cmd.Context())
				if err != nil {
					return err
				}
				views := make([]articleView, 0, len(articles))
				for _, art := range articles {
					views = append(views, viewOf(art, nil))
				}
				return a.printArticles(cmd, views)
			}

			rows, err := a.svc.ListForAdmin(cmd.Context())
			if err != nil {
				return err
			}
			views := make([]articleView, 0, len(rows))
			for _, row := range rows {
				views = append(views, viewOf(row.Article, row.Author))
			}
			return a.printArticles(cmd, views)
		},
	}

	cmd.Flags().BoolVar(&public, "public", false, "only published articles, as the public site shows them")
	return cmd
}

// printOutcome prints the stored article, or the field errors of a rejected command.
func (a *app) printOutcome(cmd *cobra.Command, outcome artUC.Outcome) error {
	switch outcome.State {
	case artUC.StateAccepted:
		return a.printArticles(cmd, []articleView{viewOf(outcome.Article, nil)})
	case artUC.StateRejected:
		if err := a.printErrors(cmd, outcome.Errors); err != nil {
			return err
		}
		return errRejected
	default:
		if errors.Is(outcome.Err, entity.ErrNotFound) {
			return errors.New("article not found")
		}
		return outcome.Err
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
