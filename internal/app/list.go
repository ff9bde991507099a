package app

import (
	"fmt"
	"io"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/colors"
	"github.com/cristianoliveira/alertdeck/internal/dedup"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/format"
	"github.com/cristianoliveira/alertdeck/internal/ports"
	"github.com/cristianoliveira/alertdeck/internal/query"
)

// ListOptions holds all filter parameters for listing notifications.
type ListOptions struct {
	Filter domain.FilterOptions
	Search string
	// SortBy and Order are empty for the default newest first order.
	SortBy string
	Order  string
	Limit  int

	Group      bool
	GroupCount bool
	Dedup      dedup.Options
	Format     string
	Now        func() time.Time
}

// ListUseCase coordinates list notifications behavior.
type ListUseCase struct {
	client ports.NotificationReader
}

// NewListUseCase creates a new list use-case.
func NewListUseCase(client ports.NotificationReader) *ListUseCase {
	if client == nil {
		panic("NewListUseCase: client dependency cannot be nil")
	}
	return &ListUseCase{client: client}
}

// BuildQuery validates opts and converts them to an engine query.
func (opts ListOptions) BuildQuery() (query.Query, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	filter, err := opts.Filter.ToFilter(now())
	if err != nil {
		return query.Query{}, err
	}
	q := query.Query{Filter: filter, Search: opts.Search, Limit: opts.Limit}
	if opts.SortBy != "" || opts.Order != "" {
		sort := domain.DefaultSortOptions()
		if opts.SortBy != "" {
			if sort.Field, err = domain.ParseSortByField(opts.SortBy); err != nil {
				return query.Query{}, err
			}
		}
		if opts.Order != "" {
			if sort.Order, err = domain.ParseSortOrder(opts.Order); err != nil {
				return query.Query{}, err
			}
		}
		q.Sort = &sort
	}
	if opts.Limit < 0 {
		return query.Query{}, fmt.Errorf("limit must not be negative: %d", opts.Limit)
	}
	return q, nil
}

// Execute prints notifications according to the provided options.
func (u *ListUseCase) Execute(opts ListOptions, w io.Writer) error {
	if opts.GroupCount && !opts.Group {
		return fmt.Errorf("--group-count requires --group")
	}
	q, err := opts.BuildQuery()
	if err != nil {
		return err
	}

	res := u.client.Query(q)
	if len(res.Items) == 0 && opts.Format != string(format.FormatterTypeJSON) {
		_, _ = fmt.Fprintf(w, "%s%s%s\n", colors.Blue, "No notifications found", colors.Reset)
		return nil
	}

	formatter := format.GetFormatter(opts.Format, opts.GroupCount)
	if opts.Group {
		groups := dedup.GroupItems(res.Items, opts.Dedup)
		if err := formatter.FormatGroups(groups, w); err != nil {
			return fmt.Errorf("list: formatting error: %w", err)
		}
		return nil
	}
	if err := formatter.FormatNotifications(res.Items, w); err != nil {
		return fmt.Errorf("list: formatting error: %w", err)
	}
	return nil
}
