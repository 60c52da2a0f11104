package posts

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is used when the client does not send page_size
	DefaultPageSize = 10

	// MaxPageSize caps page_size; larger values are clamped
	MaxPageSize = 100
)

// PageRequest is a page-number pagination request
// Zero values mean "not provided" and are replaced by defaults
type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Window is the offset/limit slice of the ordered post list for a page
type Window struct {
	Offset int
	Limit  int
}

// Window returns the offset/limit for a normalized request
// The offset saturates at math.MaxInt instead of wrapping negative.
func (r PageRequest) Window() Window {
	offset := math.MaxInt
	if r.PageSize > 0 && r.Page-1 <= math.MaxInt/r.PageSize {
		offset = (r.Page - 1) * r.PageSize
	}
	return Window{
		Offset: offset,
		Limit:  r.PageSize,
	}
}

// Page is one page of the post list
type Page struct {
	Results  []*PostView
	Count    int
	Number   int
	Size     int
	LastPage int
}

// HasNext reports whether a later page exists
func (p *Page) HasNext() bool {
	return p.Number < p.LastPage
}

// HasPrevious reports whether an earlier page with content exists
func (p *Page) HasPrevious() bool {
	return p.Number > 1 && p.Count > 0
}

// NextNumber is the page number of the next page; only valid when HasNext
func (p *Page) NextNumber() int {
	return p.Number + 1
}

// PreviousNumber is the page number of the previous page; only valid when HasPrevious
// Past the end it points at the last page that exists
func (p *Page) PreviousNumber() int {
	if p.Number-1 > p.LastPage {
		return p.LastPage
	}
	return p.Number - 1
}

// ParsePageRequest parses raw page and page_size query values
// Empty values select defaults; anything that is not a positive integer is rejected.
// Positive integers too large for int become math.MaxInt: page_size is then
// clamped to MaxPageSize and page lands past the last page.
func ParsePageRequest(page, pageSize string) (PageRequest, error) {
	var req PageRequest
	var err error

	if req.Page, err = parsePositive("page", page); err != nil {
		return PageRequest{}, err
	}
	if req.PageSize, err = parsePositive("page_size", pageSize); err != nil {
		return PageRequest{}, err
	}

	return req, nil
}

func parsePositive(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return math.MaxInt, nil
	}
	if err != nil {
		return 0, NewValidationError(field, field+" must be an integer")
	}
	if n < 1 {
		return 0, NewValidationError(field, field+" must be a positive integer")
	}
	return n, nil
}

// LastPage returns ceil(count/pageSize), with page 1 always valid
func LastPage(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}
