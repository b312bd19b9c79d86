package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/admitcrm/core/student"
)

var orderingParam = "ordering"

// bindOrdering reads the `ordering` shorthand (eg. `-lastActive`, `name`) into q.
// It takes precedence over sortBy & sortOrder.
func bindOrdering(ctx echo.Context, q *student.DirectoryQuery) {
	val := strings.TrimSpace(ctx.QueryParam(orderingParam))
	if val == "" {
		return
	}

	// only the first field is used: the directory sorts on a single key
	field := strings.TrimSpace(strings.SplitN(val, ",", 2)[0])
	descending := strings.HasPrefix(field, "-")
	if descending {
		field = field[1:] // drop "-"
	}
	q.SortBy = field
	q.SortOrder = student.OrderAsc
	if descending {
		q.SortOrder = student.OrderDesc
	}
}
