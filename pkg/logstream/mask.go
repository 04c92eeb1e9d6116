// Package logstream masks secrets in command output streams
package logstream

import (
	"bytes"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
)

const (
	maskedStr = "****************"
	// minSecretLen keeps single characters from masking whole build logs
	minSecretLen = 2
)

// masker replaces secrets line by line, so a secret split across two writes is still caught
type masker struct {
	mu  sync.Mutex
	w   io.Writer
	r   *strings.Replacer
	buf bytes.Buffer
}

// NewMasker returns a writer masking every value of secretData before it reaches w.
// Both the raw and the url escaped form of each secret line are masked.
// Close flushes a trailing partial line.
func NewMasker(w io.Writer, secretData map[string]string) io.WriteCloser {
	return &masker{w: w, r: newReplacer(secretData)}
}

func newReplacer(secretData map[string]string) *strings.Replacer {
	seen := map[string]struct{}{}
	for _, secret := range secretData {
		for _, part := range strings.Split(secret, "\n") {
			part = strings.TrimSpace(part)
			if len(part) < minSecretLen {
				continue
			}
			seen[part] = struct{}{}
			seen[url.QueryEscape(part)] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	parts := make([]string, 0, len(seen))
	for part := range seen {
		parts = append(parts, part)
	}
	// longest first, a secret containing another is masked whole
	sort.Slice(parts, func(i, j int) bool {
		if len(parts[i]) != len(parts[j]) {
			return len(parts[i]) > len(parts[j])
		}
		return parts[i] < parts[j]
	})
	oldnew := make([]string, 0, 2*len(parts))
	for _, part := range parts {
		oldnew = append(oldnew, part, maskedStr)
	}
	return strings.NewReplacer(oldnew...)
}

// Write masks complete lines of p and buffers the rest until the next newline.
func (m *masker) Write(p []byte) (int, error) {
	if m.r == nil {
		return m.w.Write(p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buf.Write(p)
	data := m.buf.Bytes()
	idx := bytes.LastIndexByte(data, '\n')
	if idx < 0 {
		return len(p), nil
	}
	_, err := io.WriteString(m.w, m.r.Replace(string(data[:idx+1])))
	m.buf.Next(idx + 1)
	return len(p), err
}

// Close writes out the buffered partial line.
func (m *masker) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.buf.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(m.w, m.r.Replace(m.buf.String()))
	m.buf.Reset()
	return err
}
