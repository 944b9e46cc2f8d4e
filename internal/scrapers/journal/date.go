package journal

import (
	"fmt"
	"regexp"
	"time"
)

// articles live at /YYYY/MM/DD/<slug>
var datedPathRegex = regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/[^/?#]+`)

// ParseDate returns the publication date embedded in an article url.
func ParseDate(url string) (time.Time, error) {
	groups := datedPathRegex.FindStringSubmatch(url)
	if len(groups) < 4 {
		return time.Time{}, fmt.Errorf("%w: %s: no date in path", ErrMalformedURL, url)
	}
	date, err := time.Parse(dateLayout, fmt.Sprintf("%s-%s-%s", groups[1], groups[2], groups[3]))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrMalformedURL, url, err)
	}
	return date, nil
}
