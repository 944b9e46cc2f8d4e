package journal

import (
	"database/sql"
	"fmt"
	"time"

	"martinotron/internal/db"
)

const dateLayout = "2006-01-02"

// Article is the record extracted from one column. Optional fields are nil
// when the page does not have them.
type Article struct {
	Date      time.Time `json:"date"`
	Strapline *string   `json:"strapline"`
	Title     *string   `json:"title"`
	Tagline   *string   `json:"tagline"`
	// Content is the flattened body, see Assemble.
	Content string  `json:"content"`
	URL     string  `json:"url"`
	Image   *string `json:"image"`
	Credit  *string `json:"credit"`
	Legend  *string `json:"legend"`
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func optionalString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	value := s.String
	return &value
}

// InsertParams maps the article to its row.
func (a Article) InsertParams(scrapedAt time.Time) db.InsertArticleParams {
	return db.InsertArticleParams{
		Date:        a.Date.Format(dateLayout),
		Strapline:   nullString(a.Strapline),
		Title:       nullString(a.Title),
		Tagline:     nullString(a.Tagline),
		Content:     a.Content,
		Url:         a.URL,
		ImageUrl:    nullString(a.Image),
		ImageCredit: nullString(a.Credit),
		ImageLegend: nullString(a.Legend),
		ScrapedAt:   scrapedAt.Unix(),
	}
}

// ArticleFromRow is the inverse of InsertParams.
func ArticleFromRow(row db.Article) (Article, error) {
	date, err := time.Parse(dateLayout, row.Date)
	if err != nil {
		return Article{}, fmt.Errorf("article %s: parse date: %w", row.Url, err)
	}
	return Article{
		Date:      date,
		Strapline: optionalString(row.Strapline),
		Title:     optionalString(row.Title),
		Tagline:   optionalString(row.Tagline),
		Content:   row.Content,
		URL:       row.Url,
		Image:     optionalString(row.ImageUrl),
		Credit:    optionalString(row.ImageCredit),
		Legend:    optionalString(row.ImageLegend),
	}, nil
}
