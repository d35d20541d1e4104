// Package client is the shared HTTP plumbing for CLI commands.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/solarops/soltrack/cmd/cli/config"
)

// Do sends a JSON request to the API. If payload is nil the request has no
// body. If authed, the stored token is attached; out, when non-nil, receives
// the decoded response body.
func Do(method, path string, payload any, authed bool, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, err := config.ReadToken()
		if err != nil {
			return fmt.Errorf("not logged in, run 'soltrack login' first")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return err
		}
	}
	return nil
}

// Download fetches a binary response (e.g. the xlsx export) and returns the
// raw bytes plus the Content-Disposition header.
func Download(path string) ([]byte, string, error) {
	req, err := http.NewRequest(http.MethodGet, config.APIURL()+path, nil)
	if err != nil {
		return nil, "", err
	}
	token, err := config.ReadToken()
	if err != nil {
		return nil, "", fmt.Errorf("not logged in, run 'soltrack login' first")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
	}
	return data, resp.Header.Get("Content-Disposition"), nil
}
