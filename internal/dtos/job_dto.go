package dtos

import (
	"bytes"
	"encoding/json"
)

// JobCreationRequest is the POST /job/post body. Required fields are checked by
// the job service so the caller gets the listing-specific message.
type JobCreationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Location    string `json:"location"`

	FixedSalary *int `json:"fixedSalary"`
	SalaryFrom  *int `json:"salaryFrom"`
	SalaryTo    *int `json:"salaryTo"`
}

// JobUpdateRequest is a partial update: nil fields are left untouched.
type JobUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Location    *string `json:"location"`
	Expired     *bool   `json:"expired"`

	FixedSalary NullableInt `json:"fixedSalary"`
	SalaryFrom  NullableInt `json:"salaryFrom"`
	SalaryTo    NullableInt `json:"salaryTo"`
}

// NullableInt tells an absent field apart from an explicit null, which clears
// the stored value.
type NullableInt struct {
	Set   bool
	Value *int
}

func (n *NullableInt) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Apply returns the patched value.
func (n NullableInt) Apply(current *int) *int {
	if !n.Set {
		return current
	}
	return n.Value
}
