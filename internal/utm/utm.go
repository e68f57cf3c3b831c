// Package utm builds redirect target URLs with UTM tracking
// parameters merged into the query string.
package utm

import (
	"net/url"

	"linktrack/internal/model"
)

// Merge sets the non-empty UTM parameters of p on rawURL's query string,
// overwriting same-named keys and leaving every other query parameter
// untouched. An empty parameter set returns rawURL unchanged.
//
// rawURL must already be validated as an absolute http(s) URL; a parse
// failure here is a programming error upstream, not a user error.
func Merge(rawURL string, p model.UTMParams) (string, error) {
	if p.IsEmpty() {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	for key, value := range pairs(p) {
		if value != "" {
			q.Set(key, value)
		}
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Extract returns the UTM parameters present in rawURL's query string
func Extract(rawURL string) (model.UTMParams, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return model.UTMParams{}, err
	}

	q := u.Query()
	return model.UTMParams{
		Source:   q.Get("utm_source"),
		Medium:   q.Get("utm_medium"),
		Campaign: q.Get("utm_campaign"),
		Term:     q.Get("utm_term"),
		Content:  q.Get("utm_content"),
	}, nil
}

func pairs(p model.UTMParams) map[string]string {
	return map[string]string{
		"utm_source":   p.Source,
		"utm_medium":   p.Medium,
		"utm_campaign": p.Campaign,
		"utm_term":     p.Term,
		"utm_content":  p.Content,
	}
}
