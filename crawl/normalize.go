package crawl

import (
	"net"
	"net/url"
	"strings"

	"github.com/fwojciec/sitepdf"
)

// Normalizer canonicalizes candidate links and rejects any that leave a
// fixed origin.
type Normalizer struct {
	origin string
}

// NewNormalizer returns a Normalizer restricted to origin, as returned by Origin.
func NewNormalizer(origin string) *Normalizer {
	return &Normalizer{origin: origin}
}

// Normalize resolves candidate against base and returns the result without
// its fragment. The bool result is false if either URL is malformed or the
// resolved URL is not on the normalizer's origin.
func (n *Normalizer) Normalize(candidate, base string) (string, bool) {
	b, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(strings.TrimSpace(candidate))
	if err != nil {
		return "", false
	}

	resolved := b.ResolveReference(ref)
	if !isHTTP(resolved) || originOf(resolved) != n.origin {
		return "", false
	}

	resolved.Scheme = strings.ToLower(resolved.Scheme)
	resolved.Host = canonicalHost(resolved)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	if resolved.Path == "" {
		resolved.Path = "/"
		resolved.RawPath = ""
	}
	return resolved.String(), true
}

// CanonicalURL returns rawURL in the form the crawler uses to identify
// pages: lower-case scheme and host, default port elided, no fragment and a
// "/" path when empty. It returns an EINVALID error for anything Origin
// rejects.
func CanonicalURL(rawURL string) (string, error) {
	origin, err := Origin(rawURL)
	if err != nil {
		return "", err
	}
	canonical, ok := NewNormalizer(origin).Normalize(rawURL, rawURL)
	if !ok {
		return "", sitepdf.Errorf(sitepdf.EINVALID, "invalid URL %q", rawURL)
	}
	return canonical, nil
}

// Origin returns the scheme://host[:port] origin of rawURL. Only absolute
// http and https URLs have an origin; anything else is an EINVALID error.
func Origin(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", sitepdf.Errorf(sitepdf.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if !isHTTP(u) {
		return "", sitepdf.Errorf(sitepdf.EINVALID, "URL %q must be an absolute http or https URL", rawURL)
	}
	return originOf(u), nil
}

func isHTTP(u *url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Hostname() != ""
}

func originOf(u *url.URL) string {
	return strings.ToLower(u.Scheme) + "://" + canonicalHost(u)
}

// canonicalHost lower-cases the host and drops the scheme's default port.
func canonicalHost(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		return net.JoinHostPort(host, port)
	}
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}
	return host
}
