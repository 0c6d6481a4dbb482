package jahia

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Login posts the credentials to the administration page.  Jahia answers with a session cookie which
// the client's jar keeps for every following request.
func (s *Session) Login(ctx context.Context) error {
	ep, err := s.loginEndpoint()
	if err != nil {
		return fmt.Errorf("jahia: couldn't get login endpoint: %w", err)
	}

	form := url.Values{}
	form.Set("login_username", s.username)
	form.Set("login_password", s.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("jahia: couldn't instantiate http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("jahia: couldn't perform login request: %w", err)
	}
	defer response.Body.Close()

	// drain, so the connection can be reused
	if _, err := io.Copy(io.Discard, response.Body); err != nil {
		return fmt.Errorf("jahia: couldn't read login response body: %w", err)
	}

	switch {
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		return fmt.Errorf("jahia: authentication failed: %s", response.Status)
	case response.StatusCode >= 300:
		return fmt.Errorf("jahia: unexpected login response: %s", response.Status)
	}

	return nil
}

// Post sends params in the query string of a POST to endpoint, and hands back the response
// unread.  The caller owns (and must close) the body.
func (s *Session) Post(ctx context.Context, endpoint *url.URL, params url.Values) (*http.Response, error) {
	u := *endpoint
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("jahia: couldn't instantiate http request: %w", err)
	}
	req.Header.Add("Accept", "application/zip, */*")

	response, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jahia: couldn't perform http request: %w", err)
	}

	return response, nil
}
