package detect

import (
	"regexp"
	"strings"
)

const (
	label   = `[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?`
	tail    = `(?:[/?#][^\s<>"]*)?`
	octet   = `(?:25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9]?[0-9])`
	portOpt = `(?::[0-9]{1,5})?`
)

// bareTLDs are the top-level domains accepted without a scheme or "www."
// prefix. Country codes that double as common file extensions (.py, .sh,
// .md, .rs, ...) are left out on purpose.
var bareTLDs = []string{
	"com", "org", "net", "edu", "gov", "mil", "int", "info", "biz",
	"io", "co", "ai", "app", "dev", "me", "tv", "xyz", "online", "site",
	"tech", "cloud", "blog", "news", "shop", "store",
	"us", "uk", "de", "fr", "nl", "eu", "ca", "au", "jp", "cn", "in",
	"ru", "br", "it", "es", "ch", "se", "no", "fi", "dk", "pl", "be",
	"at", "nz", "ie",
}

var (
	emailPattern = regexp.MustCompile(`(?i)\b(?:mailto:)?[a-z0-9._%+-]+@(?:` + label + `\.)+[a-z]{2,}\b`)

	schemeURLPattern = regexp.MustCompile(`(?i)\b(?:https?|ftp)://[^\s<>"]+`)
	wwwURLPattern    = regexp.MustCompile(`(?i)\bwww\.(?:` + label + `\.)+[a-z]{2,}\b` + portOpt + tail)
	bareURLPattern   = regexp.MustCompile(`(?i)\b(?:` + label + `\.)+(?:` + strings.Join(bareTLDs, "|") + `)\b` + portOpt + tail)

	ipPattern = regexp.MustCompile(`\b` + octet + `(?:\.` + octet + `){3}` + portOpt + `(?:/[^\s<>"]*)?`)

	fileURIPattern     = regexp.MustCompile(`(?i)\bfile:///[^\s<>"]+`)
	windowsPathPattern = regexp.MustCompile(`\b[a-zA-Z]:\\[^\s<>"|?*]*`)
)

// rule is one candidate source: a pattern, the kind it yields and the
// function turning the matched text into a target.
type rule struct {
	kind    Kind
	pattern *regexp.Regexp
	// accept rejects matches in bad surroundings; nil accepts all.
	accept func(text string, start, end int) bool
	href   func(match string) string
}

var rules = []rule{
	{kind: Email, pattern: emailPattern, href: emailHref},
	{kind: URL, pattern: schemeURLPattern, href: keep},
	{kind: URL, pattern: wwwURLPattern, accept: standaloneHost, href: httpHref},
	{kind: URL, pattern: bareURLPattern, accept: standaloneHost, href: httpHref},
	{kind: IP, pattern: ipPattern, accept: standaloneIP, href: httpHref},
	{kind: File, pattern: fileURIPattern, href: keep},
	{kind: File, pattern: windowsPathPattern, href: windowsHref},
}

func keep(s string) string { return s }

func httpHref(s string) string { return "http://" + s }

func emailHref(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "mailto:") {
		return s
	}
	return "mailto:" + s
}

func windowsHref(s string) string {
	return "file:///" + strings.ReplaceAll(s, `\`, "/")
}

// standaloneHost rejects host names that are really part of an email
// address or of a path.
func standaloneHost(text string, start, end int) bool {
	if start > 0 && strings.IndexByte(`@/\.`, text[start-1]) >= 0 {
		return false
	}
	if end < len(text) && text[end] == '@' {
		return false
	}
	return true
}

// standaloneIP rejects dotted quads that continue as a longer dotted
// number, such as version strings.
func standaloneIP(text string, start, end int) bool {
	if start > 0 && text[start-1] == '.' {
		return false
	}
	if end < len(text) && isDigit(text[end]) {
		return false
	}
	if end+1 < len(text) && text[end] == '.' && isDigit(text[end+1]) {
		return false
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// trimTrailing strips sentence punctuation and unbalanced closing
// brackets off the end of a candidate.
func trimTrailing(s string) string {
	for len(s) > 0 {
		last := s[len(s)-1]
		switch {
		case strings.IndexByte(".,;:!?'\"", last) >= 0:
			s = s[:len(s)-1]
		case last == ')' && strings.Count(s, "(") < strings.Count(s, ")"):
			s = s[:len(s)-1]
		case last == ']' && strings.Count(s, "[") < strings.Count(s, "]"):
			s = s[:len(s)-1]
		default:
			return s
		}
	}
	return s
}

// meaningful reports whether a trimmed candidate still has content past
// its scheme.
func meaningful(s string) bool {
	if i := strings.Index(s, "://"); i >= 0 {
		return strings.Trim(s[i+3:], "/") != ""
	}
	if len(s) >= 3 && s[1] == ':' && s[2] == '\\' {
		return len(s) > 3
	}
	return s != ""
}
