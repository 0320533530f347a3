package editor

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/samber/lo"
)

var (
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby drops <rt> and <rp> elements so furigana is not read twice
// ("漢字かんじ").
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, nil)
	return reRP.ReplaceAll(cleaned, nil)
}

// SplitSentences cuts text after 。！？ and newlines. Delimiters stay with
// their sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '。' || r == '！' || r == '？' || r == '\n' {
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}

// LinesFromText makes one editor line per non-blank sentence.
func LinesFromText(text string) []Line {
	sentences := lo.FilterMap(SplitSentences(text), func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
	return lo.Map(sentences, func(s string, _ int) Line { return Line{}.SetText(s) })
}

// Article is the readable part of an HTML page split into lines.
type Article struct {
	Title string
	Lines []Line
}

// LinesFromHTML extracts the main text of a page and splits it into lines.
// pageURL only resolves relative links and may be nil.
func LinesFromHTML(r io.Reader, pageURL *url.URL) (Article, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return Article{}, err
	}
	if pageURL == nil {
		pageURL = &url.URL{Scheme: "file", Path: "/"}
	}
	article, err := readability.FromReader(bytes.NewReader(SanitizeRuby(body)), pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("failed to extract article: %w", err)
	}
	return Article{Title: article.Title, Lines: LinesFromText(article.TextContent)}, nil
}
