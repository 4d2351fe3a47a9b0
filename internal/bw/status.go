package bw

import (
	"encoding/json"
	"strings"
)

// StatusInfo is the JSON shape printed by `bw status`.
type StatusInfo struct {
	ServerURL string `json:"serverUrl"`
	LastSync  string `json:"lastSync"`
	UserEmail string `json:"userEmail"`
	UserID    string `json:"userId"`
	Status    string `json:"status"`
}

// ParseStatus decodes stdout of `bw status`. Callers treat a parse failure
// as "raw output only", not as a command failure, since --pretty and
// --response change the shape.
func ParseStatus(stdout string) (*StatusInfo, error) {
	trimmed := strings.TrimSpace(stdout)
	var info StatusInfo
	if err := json.Unmarshal([]byte(trimmed), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ExtractSession pulls a session token out of login/unlock output. With
// --raw the token is the whole output; otherwise bw prints an
// `export BW_SESSION="..."` hint line.
func ExtractSession(stdout string, raw bool) string {
	trimmed := strings.TrimSpace(stdout)
	if raw {
		if trimmed == "" || strings.ContainsAny(trimmed, " \n") {
			return ""
		}
		return trimmed
	}
	const marker = `BW_SESSION="`
	start := strings.Index(trimmed, marker)
	if start < 0 {
		return ""
	}
	rest := trimmed[start+len(marker):]
	end := strings.Index(rest, `"`)
	if end <= 0 {
		return ""
	}
	return rest[:end]
}
