package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"channel-stats/shared/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const readonlyScope = "https://www.googleapis.com/auth/youtube.readonly"

// oauthHTTPClient returns an HTTP client authorized through the OAuth device
// flow. A cached token is reused when it can still be refreshed.
func oauthHTTPClient(ctx context.Context, cfg *config.YouTubeConfig) (*http.Client, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{readonlyScope},
		Endpoint:     google.Endpoint,
	}

	token, err := cachedOrAuthorize(ctx, oauthConfig, cfg.TokenFile, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth token: %w", err)
	}

	source := &persistingTokenSource{
		config: oauthConfig,
		token:  token,
		path:   cfg.TokenFile,
	}
	return oauth2.NewClient(ctx, source), nil
}

// persistingTokenSource refreshes through the OAuth config and writes every
// new access token back to the cache file.
type persistingTokenSource struct {
	config *oauth2.Config
	token  *oauth2.Token
	path   string
	mu     sync.Mutex
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fresh, err := p.config.TokenSource(context.Background(), p.token).Token()
	if err != nil {
		return nil, err
	}

	if fresh.AccessToken != p.token.AccessToken {
		p.token = fresh
		if err := writeToken(p.path, fresh); err != nil {
			log.Printf("Warning: Failed to cache refreshed token: %v", err)
		}
	}
	return fresh, nil
}

// cachedOrAuthorize prefers a cached token that carries a refresh token (even
// if expired) or is still valid, and only falls back to the device flow otherwise.
func cachedOrAuthorize(ctx context.Context, oauthConfig *oauth2.Config, path string, prompt io.Writer) (*oauth2.Token, error) {
	if tok, err := readToken(path); err == nil {
		if tok.RefreshToken != "" || tok.Valid() {
			log.Printf("Using cached token from %s (expires: %v)", path, tok.Expiry)
			return tok, nil
		}
	}

	log.Println("No usable cached token, starting device authorization...")
	tok, err := authorizeDevice(ctx, oauthConfig, prompt)
	if err != nil {
		return nil, err
	}

	if err := writeToken(path, tok); err != nil {
		log.Printf("Warning: Failed to cache token: %v", err)
	}
	return tok, nil
}

func authorizeDevice(ctx context.Context, oauthConfig *oauth2.Config, prompt io.Writer) (*oauth2.Token, error) {
	resp, err := oauthConfig.DeviceAuth(ctx, oauth2.AccessTypeOffline)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			log.Printf("Device authorization request failed (%s): %s", retrieveErr.Response.Status, strings.TrimSpace(string(retrieveErr.Body)))
		}
		return nil, fmt.Errorf("unable to start device authorization: %w", err)
	}

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(prompt, "\n%s\nYOUTUBE AUTHORIZATION REQUIRED\n%s\n", rule, rule)
	fmt.Fprintf(prompt, "Open %s and enter the code %s\n", resp.VerificationURI, resp.UserCode)
	fmt.Fprintf(prompt, "Waiting for authorization... (Ctrl+C to cancel)\n\n")

	tok, err := oauthConfig.DeviceAccessToken(ctx, resp, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("device authorization did not complete: %w", err)
	}
	return tok, nil
}

func readToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token file %s: %w", path, err)
	}
	return tok, nil
}

func writeToken(path string, token *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("unable to create token directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode oauth token: %w", err)
	}
	return nil
}
