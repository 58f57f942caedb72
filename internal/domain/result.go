package domain

import (
	"bytes"
	"encoding/json"
)

// DownloadResult is the payload returned by POST /download.
// Every field is optional; the service answers with different subsets
// depending on the outcome.
type DownloadResult struct {
	// Success is nil when the field was absent. Only an explicit false
	// marks the payload as failed.
	Success *bool    `json:"success,omitempty"`
	Message string   `json:"message,omitempty"`
	Warning bool     `json:"warning,omitempty"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
	Details string   `json:"details,omitempty"`
}

// ExplicitFailure reports whether the payload carries success=false
func (r DownloadResult) ExplicitFailure() bool {
	return r.Success != nil && !*r.Success
}

// ExplicitSuccess reports whether the payload carries success=true
func (r DownloadResult) ExplicitSuccess() bool {
	return r.Success != nil && *r.Success
}

// UnmarshalJSON decodes leniently: fields of an unexpected type are
// ignored instead of failing the whole payload.
func (r *DownloadResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = DownloadResult{}
	if v, ok := raw["success"]; ok && !isNull(v) {
		var b bool
		if json.Unmarshal(v, &b) == nil {
			r.Success = &b
		}
	}
	r.Message = stringField(raw["message"])
	r.Warning = truthy(raw["warning"])
	r.Error = stringField(raw["error"])
	r.Details = stringField(raw["details"])

	if v, ok := raw["files"]; ok {
		var items []json.RawMessage
		if json.Unmarshal(v, &items) == nil {
			for _, item := range items {
				var name string
				if json.Unmarshal(item, &name) == nil && name != "" {
					r.Files = append(r.Files, name)
				}
			}
		}
	}
	return nil
}

// OrganizeResult is the payload returned by POST /organize
type OrganizeResult struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// UnmarshalJSON decodes leniently, like DownloadResult
func (r *OrganizeResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = OrganizeResult{
		Message: stringField(raw["message"]),
		Error:   stringField(raw["error"]),
		Details: stringField(raw["details"]),
	}
	return nil
}

func stringField(v json.RawMessage) string {
	if len(v) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(v, &s) == nil {
		return s
	}
	// Truthy numbers and booleans render as text; false, 0 and null
	// are skipped like an absent field
	if !truthy(v) {
		return ""
	}
	trimmed := bytes.TrimSpace(v)
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return ""
	}
	return string(trimmed)
}

// truthy follows JavaScript truthiness for JSON scalars
func truthy(v json.RawMessage) bool {
	if len(v) == 0 {
		return false
	}
	var x interface{}
	if err := json.Unmarshal(v, &x); err != nil {
		return false
	}
	switch val := x.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	default:
		// Objects and arrays are truthy
		return true
	}
}

func isNull(v json.RawMessage) bool {
	trimmed := bytes.TrimSpace(v)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
