package post

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// linkBuilder renders absolute next/previous URLs
type linkBuilder struct {
	base *url.URL
}

func newLinkBuilder(publicBaseURL string) (*linkBuilder, error) {
	if publicBaseURL == "" {
		return &linkBuilder{}, nil
	}

	base, err := url.Parse(strings.TrimRight(publicBaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid public base URL %q", publicBaseURL)
	}
	return &linkBuilder{base: base}, nil
}

// pageURL returns the request URL pointing at page
// Other query parameters are kept; page 1 is rendered without a page parameter.
func (b *linkBuilder) pageURL(r *http.Request, page int) string {
	query := r.URL.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}

	u := url.URL{
		Path:     r.URL.Path,
		RawQuery: query.Encode(),
	}

	if b.base != nil {
		u.Scheme = b.base.Scheme
		u.Host = b.base.Host
		u.Path = b.base.Path + r.URL.Path
	} else {
		u.Scheme = requestScheme(r)
		u.Host = r.Host
	}

	return u.String()
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		proto = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
		if proto == "http" || proto == "https" {
			return proto
		}
	}
	return "http"
}
