// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errEmptyResponse = errors.New("empty response from AI provider")

// stripCodeFence removes a surrounding markdown code fence such as
// ```json ... ```. Text without a leading fence is returned trimmed.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.Index(s, "\n"); nl != -1 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// decodeObject parses text as exactly one JSON object into dst. Prose
// around the object or a second value is rejected.
func decodeObject(text string, dst any) error {
	body := stripCodeFence(text)
	if body == "" {
		return errEmptyResponse
	}
	if body[0] != '{' {
		return fmt.Errorf("response is not a JSON object")
	}

	dec := json.NewDecoder(strings.NewReader(body))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("invalid JSON in response: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected data after JSON object")
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("response does not match schema: %w", err)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("{}")) {
		return fmt.Errorf("response JSON object is empty")
	}
	return nil
}
