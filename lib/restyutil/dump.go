// Package restyutil saves what a resty client downloads, so that pages can be
// extracted again offline.
package restyutil

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/go-resty/resty/v2"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// PageID turns a page url into a file name, without extension.
func PageID(raw string) string {
	id := raw
	parsed, err := url.Parse(raw)
	if err == nil {
		id = parsed.Host + parsed.Path
	}
	id = strings.Trim(unsafeChars.ReplaceAllString(id, "_"), "_")
	if id == "" {
		return "page"
	}
	return id
}

// DumpResponses writes the body of every 200 response to output as
// `<id>.html`. Any other response is written as `<id>.http` along with the
// request and response headers.
func DumpResponses(client *resty.Client, output Output) {
	if output == nil {
		return
	}
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := PageID(res.Request.URL)
		if res.StatusCode() == 200 {
			output.Write(id+".html", res.String())
			return nil
		}
		output.Write(id+".http", formatHttpMessage(res))
		return nil
	})
}
