package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type MessageFor map[StatusCodeRange]string

// unmarshalJsonResponse decodes an http response which has json content.
//
// On 2xx the body is decoded into v. On anything else the body is read and,
// if it carries the API's structured error list, that list is preserved in
// the returned *Error; otherwise a single generic FieldError stands in.
func unmarshalJsonResponse[T any](resp *http.Response, v *T, messageFor MessageFor) error {
	scr := StatusCodeRangeOf(resp)
	if scr <= Status2xx {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return &Error{
				StatusCode: resp.StatusCode,
				Summary:    fmt.Sprintf("unexpected response shape (status code = %d): %s", resp.StatusCode, err.Error()),
				Errors:     []FieldError{{Reason: GenericReason}},
			}
		}
		return nil
	}

	summary, ok := messageFor[scr]
	if !ok {
		summary = scr.String()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{
			StatusCode: resp.StatusCode,
			Summary:    fmt.Sprintf("%s: cannot read server message: %s", summary, err.Error()),
			Errors:     []FieldError{{Reason: GenericReason}},
		}
	}

	return &Error{
		StatusCode: resp.StatusCode,
		Summary:    summary,
		Errors:     parseErrorList(body),
	}
}

// unmarshalResponseDiscardingPayload is for calls whose success body carries
// nothing the caller wants (e.g. DELETE).
func unmarshalResponseDiscardingPayload(resp *http.Response, messageFor MessageFor) error {
	scr := StatusCodeRangeOf(resp)
	if scr <= Status2xx {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var ignored json.RawMessage
	return unmarshalJsonResponse(resp, &ignored, messageFor)
}

// parseErrorList extracts {"errors": [{"field":..., "reason":...}]} from an
// error body. Bodies of any other shape yield a single generic entry.
func parseErrorList(body []byte) []FieldError {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Errors) > 0 {
		return eb.Errors
	}
	return []FieldError{{Reason: GenericReason}}
}
