package nerveshub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// TokenEnvVar names the environment variable a user token may be supplied
// in, bypassing both the cached token file and interactive login.
const TokenEnvVar = "NERVES_HUB_TOKEN"

// tokenLifetime is the validity period assigned to tokens obtained through
// login. The server does not report an expiry, so a conservative horizon is
// applied locally after which a fresh login is required.
const tokenLifetime = 30 * 24 * time.Hour

// Prompter is the interactive input needed to complete a login. It is
// implemented by shell.Shell.
type Prompter interface {
	Prompt(message string) (string, error)
	PromptHidden(message string) (string, error)
}

// RequestToken resolves a NervesHub user token, trying in order: the
// NERVES_HUB_TOKEN environment variable, a valid cached token at tokenPath,
// and finally an interactive login whose resulting token is cached for
// subsequent runs. Resolution is lazy: the user is only prompted when no
// earlier source yields a token.
func RequestToken(
	ctx context.Context,
	baseURL string,
	tokenPath string,
	prompter Prompter,
	logger *slog.Logger,
) (string, error) {

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(
			os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelWarn},
		))
	}

	if tok := os.Getenv(TokenEnvVar); tok != "" {
		logger.Debug("RequestToken: using token from environment")
		return tok, nil
	}

	if tok, err := loadTokenFromFile(tokenPath); err == nil {
		if tok.Valid() {
			logger.Debug(fmt.Sprintf("RequestToken: using cached token from %s", tokenPath))
			return tok.AccessToken, nil
		}
		logger.Info("RequestToken: cached token has expired, new login required")
	}

	tok, err := interactiveLogin(ctx, baseURL, prompter)
	if err != nil {
		return "", err
	}
	if err := saveTokenToFile(tok, tokenPath); err != nil {
		return "", fmt.Errorf("failed to save new token: %w", err)
	}
	logger.Info(fmt.Sprintf("RequestToken: login successful, token saved to %s", tokenPath))

	return tok.AccessToken, nil
}

// interactiveLogin prompts for account credentials and exchanges them for a
// user token at the server's login endpoint.
func interactiveLogin(ctx context.Context, baseURL string, prompter Prompter) (*oauth2.Token, error) {
	if prompter == nil {
		return nil, fmt.Errorf("no token available and no interactive prompt possible")
	}

	email, err := prompter.Prompt("NervesHub email:")
	if err != nil {
		return nil, fmt.Errorf("failed to read email: %w", err)
	}
	password, err := prompter.PromptHidden("NervesHub password:")
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	return login(ctx, baseURL, email, password)
}

// login exchanges account credentials for a user token.
func login(ctx context.Context, baseURL, email, password string) (*oauth2.Token, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	var response loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if response.Data.Token == "" {
		return nil, fmt.Errorf("login response did not contain a token")
	}

	return &oauth2.Token{
		AccessToken: response.Data.Token,
		TokenType:   "token",
		Expiry:      time.Now().Add(tokenLifetime),
	}, nil
}

// loadTokenFromFile reads an OAuth2 token from a JSON file.
func loadTokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// saveTokenToFile writes an OAuth2 token to a JSON file with secure permissions.
func saveTokenToFile(token *oauth2.Token, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("unable to create token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache user token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// DeleteToken removes the token file from disk.
func DeleteToken(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
