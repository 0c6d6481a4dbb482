package jahia

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// NewSession validates the connection settings and returns an unauthenticated Session.  Call Login
// before handing it to downloaders.
func NewSession(protocol string, host string, username string, password string) (*Session, error) {
	if protocol != "http" && protocol != "https" {
		return nil, fmt.Errorf("jahia: configure a valid protocol (http or https) with --jahia-protocol, got '%s'", protocol)
	}
	if host == "" {
		return nil, fmt.Errorf("jahia: configure your Jahia host with --jahia-host")
	}
	if username == "" {
		return nil, fmt.Errorf("jahia: configure your Jahia username with --auth-username")
	}
	if password == "" {
		return nil, fmt.Errorf("jahia: password is empty, please check auth-password-cmd")
	}

	u, err := url.ParseRequestURI(fmt.Sprintf("%s://%s", protocol, host))
	if err != nil {
		return nil, fmt.Errorf("jahia: couldn't parse host URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("jahia: couldn't create cookie jar: %w", err)
	}

	s := &Session{
		BaseURI:  u,
		username: username,
		password: password,
	}
	// No Timeout: an export POST only returns once Jahia has finished building the zip.
	s.Client = &http.Client{Jar: jar}

	return s, nil
}

// Session holds one authenticated HTTP client for one Jahia host.  It is shared by pointer between
// all the downloads of a batch; http.Client and its cookie jar are safe for concurrent use.
type Session struct {
	// Where Jahia lives, e.g. https://jahia.example.com
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.  Keep the Jar if you do, it carries the
	// session cookie.
	Client *http.Client

	// Auth info
	username, password string
}

// Host returns the host the session is bound to.
func (s *Session) Host() string {
	return s.BaseURI.Host
}
