package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestWriteAndReadToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "nested", "dir", "token.json")

	original := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
	}
	if err := writeToken(tokenFile, original); err != nil {
		t.Fatalf("writeToken() error: %v", err)
	}

	info, err := os.Stat(tokenFile)
	if err != nil {
		t.Fatalf("token file not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("token file permissions = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := readToken(tokenFile)
	if err != nil {
		t.Fatalf("readToken() error: %v", err)
	}
	if loaded.AccessToken != original.AccessToken || loaded.RefreshToken != original.RefreshToken {
		t.Errorf("readToken() = %+v, want %+v", loaded, original)
	}
}

func TestReadTokenErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := readToken(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := readToken(bad); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestCachedOrAuthorize(t *testing.T) {
	// The fake authorization server rejects device flow requests, so any
	// test case that reaches the network fails.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_client"})
	}))
	defer srv.Close()

	oauthConfig := &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: srv.URL + "/device",
			TokenURL:      srv.URL + "/token",
		},
	}
	tokenFile := filepath.Join(t.TempDir(), "token.json")
	ctx := context.Background()

	tests := []struct {
		name    string
		cached  *oauth2.Token
		wantErr bool
	}{
		{
			name:   "ValidToken",
			cached: &oauth2.Token{AccessToken: "valid", Expiry: time.Now().Add(time.Hour)},
		},
		{
			name:   "ExpiredWithRefreshToken",
			cached: &oauth2.Token{AccessToken: "expired", RefreshToken: "refresh", Expiry: time.Now().Add(-time.Hour)},
		},
		{
			name:    "ExpiredWithoutRefreshToken",
			cached:  &oauth2.Token{AccessToken: "expired", Expiry: time.Now().Add(-time.Hour)},
			wantErr: true,
		},
		{
			name:    "NoCachedToken",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Remove(tokenFile)
			if tt.cached != nil {
				if err := writeToken(tokenFile, tt.cached); err != nil {
					t.Fatal(err)
				}
			}

			var prompt bytes.Buffer
			tok, err := cachedOrAuthorize(ctx, oauthConfig, tokenFile, &prompt)
			if tt.wantErr {
				if err == nil {
					t.Error("expected device authorization to fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("cachedOrAuthorize() error: %v", err)
			}
			if tok.AccessToken != tt.cached.AccessToken {
				t.Errorf("AccessToken = %s, want %s", tok.AccessToken, tt.cached.AccessToken)
			}
			if prompt.Len() != 0 {
				t.Errorf("unexpected authorization prompt: %q", prompt.String())
			}
		})
	}
}

func TestPersistingTokenSourceKeepsValidToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token.json")
	valid := &oauth2.Token{
		AccessToken: "still-valid",
		Expiry:      time.Now().Add(time.Hour),
	}

	source := &persistingTokenSource{
		config: &oauth2.Config{ClientID: "client"},
		token:  valid,
		path:   tokenFile,
	}

	done := make(chan bool)
	for i := 0; i < 5; i++ {
		go func() {
			tok, err := source.Token()
			if err != nil || tok.AccessToken != "still-valid" {
				t.Errorf("Token() = %v, %v", tok, err)
			}
			done <- true
		}()
	}
	for i := 0; i < 5; i++ {
		<-done
	}

	if _, err := os.Stat(tokenFile); !os.IsNotExist(err) {
		t.Error("token file should not be written when no refresh happened")
	}
}
