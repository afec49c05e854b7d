// Package sources loads read-only data supplied by the club: the member
// roster, banking details and the clerk's signature. Each loader returns an
// error instead of swallowing it; callers decide on the fallback.
package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/tripsheet/internal/roster"
)

// DefaultTimeout bounds a single fetch when the Loader has no client timeout.
const DefaultTimeout = 10 * time.Second

// maxBytes caps how much of a source is read.
const maxBytes = 1 << 20

// utf8BOM is dropped from the start of every source, as browsers do.
var utf8BOM = []byte("\uFEFF")

// Loader reads sources from local paths or http(s) URLs.
type Loader struct {
	Client *http.Client
}

// NewLoader creates a Loader whose HTTP requests time out after timeout.
func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{Client: &http.Client{Timeout: timeout}}
}

// Read returns the raw bytes at location.
func (l *Loader) Read(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, fmt.Errorf("no source configured")
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		data, err := l.fetch(ctx, location)
		if err != nil {
			return nil, err
		}
		return bytes.TrimPrefix(data, utf8BOM), nil
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", location, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return bytes.TrimPrefix(data, utf8BOM), nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}

// LoadRoster reads and parses the member list.
func (l *Loader) LoadRoster(ctx context.Context, location string) ([]string, error) {
	data, err := l.Read(ctx, location)
	if err != nil {
		return nil, err
	}
	return roster.Parse(string(data)), nil
}

// LoadClerk reads the clerk signature, trimmed.
func (l *Loader) LoadClerk(ctx context.Context, location string) (string, error) {
	data, err := l.Read(ctx, location)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// BankingDetails is the account payments should be made to.
type BankingDetails struct {
	Name    string
	BSB     string
	Account string
}

// LoadBanking reads a JSON object with Name, BSB and Account keys.
// Lower-case keys are accepted when the capitalised key is absent.
func (l *Loader) LoadBanking(ctx context.Context, location string) (BankingDetails, error) {
	data, err := l.Read(ctx, location)
	if err != nil {
		return BankingDetails{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return BankingDetails{}, fmt.Errorf("banking details in %s are not a JSON object: %w", location, err)
	}
	if raw == nil {
		return BankingDetails{}, fmt.Errorf("banking details in %s are not a JSON object: got null", location)
	}
	return BankingDetails{
		Name:    field(raw, "Name", "name"),
		BSB:     field(raw, "BSB", "bsb"),
		Account: field(raw, "Account", "account"),
	}, nil
}

func field(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case nil:
			return ""
		case string:
			return t
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		default:
			return strings.TrimSpace(fmt.Sprint(t))
		}
	}
	return ""
}

// Line is a labelled value for display.
type Line struct {
	Label string
	Value string
}

// BankingLines returns the non-blank banking fields followed by the payment
// reference tag.
func BankingLines(d BankingDetails, tag string) []Line {
	var lines []Line
	for _, l := range []Line{{"Name", d.Name}, {"BSB", d.BSB}, {"Account", d.Account}} {
		if strings.TrimSpace(l.Value) != "" {
			lines = append(lines, l)
		}
	}
	if tag != "" {
		lines = append(lines, Line{Label: "Tag", Value: tag})
	}
	return lines
}
