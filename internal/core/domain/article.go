package domain

// Article is one newsletter entry extracted from an email body.
type Article struct {
	// Title is the article headline.
	Title string

	// Link is the article URL as it appears in the newsletter.
	Link string
}
