package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ridehub/ms-route/internal/criteria"
)

const headerTotalCount = "X-Total-Count"

// setPageHeaders writes X-Total-Count and an RFC 5988 Link header with
// next, prev, last and first relations. The other query parameters of the
// request are kept in every link.
func setPageHeaders(c echo.Context, page criteria.Page, total int64) {
	h := c.Response().Header()
	h.Set(headerTotalCount, strconv.FormatInt(total, 10))
	if !page.Paged || page.Size <= 0 {
		return
	}

	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))
	last := max(totalPages-1, 0)

	base := *c.Request().URL
	link := func(n int, rel string) string {
		q := base.Query()
		q.Set("page", strconv.Itoa(n))
		q.Set("size", strconv.Itoa(page.Size))
		u := url.URL{Path: base.Path, RawQuery: q.Encode()}
		return fmt.Sprintf("<%s>; rel=%q", u.String(), rel)
	}

	var links []string
	if page.Number+1 < totalPages {
		links = append(links, link(page.Number+1, "next"))
	}
	if page.Number > 0 && page.Number <= totalPages {
		links = append(links, link(page.Number-1, "prev"))
	}
	links = append(links, link(last, "last"), link(0, "first"))
	h.Set("Link", strings.Join(links, ","))
}
