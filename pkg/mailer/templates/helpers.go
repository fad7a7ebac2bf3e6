package templates

import "time"

// Option mutates EmailData before rendering.
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithArticle(title, url string) Option {
	return func(d *EmailData) {
		d.ArticleTitle = title
		d.ArticleURL = url
	}
}

func WithComment(commenter, body string) Option {
	return func(d *EmailData) {
		d.CommenterName = commenter
		d.CommentBody = body
	}
}

func newBaseData(typ, appName, appURL, username, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Type:           typ,
		AppName:        appName,
		AppURL:         appURL,
		Username:       username,
		RecipientEmail: recipient,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewWelcomeData fills the fields the welcome templates use.
func NewWelcomeData(appName, appURL, username, recipient string, opts ...Option) EmailData {
	return newBaseData(Welcome, appName, appURL, username, recipient, opts...)
}

// NewCommentAddedData fills the fields the comment notification
// templates use; pair it with WithArticle and WithComment.
func NewCommentAddedData(appName, appURL, username, recipient string, opts ...Option) EmailData {
	return newBaseData(CommentAdded, appName, appURL, username, recipient, opts...)
}
