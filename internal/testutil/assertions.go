package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	// Error responses are plain text outside form validation
	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// FormErrorsResponse is the body of a rejected wonder submission
type FormErrorsResponse struct {
	Errors struct {
		Fields   map[string][]string `json:"fields"`
		NonField []string            `json:"nonField"`
	} `json:"errors"`
}

// AssertFormErrors decodes a 400 form rejection and checks that field
// carries message. An empty field checks the non-field errors.
func AssertFormErrors(t *testing.T, resp *http.Response, field, message string) {
	t.Helper()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode, "unexpected status code")

	var body FormErrorsResponse
	AssertJSONResponse(t, resp, &body)
	if field == "" {
		assert.Contains(t, body.Errors.NonField, message)
		return
	}
	assert.Contains(t, body.Errors.Fields[field], message)
}
