package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEvent_GatewayShape(t *testing.T) {
	raw := json.RawMessage(`{"httpMethod":"POST","body":"{\"name\":\"A\",\"email\":\"a@b.c\",\"message\":\"hello\"}"}`)

	env, appErr := normalizeEvent(raw)

	require.Nil(t, appErr)
	assert.Equal(t, submissionRequest, env.kind)
	assert.Equal(t, "A", env.submission.Name)
	assert.Equal(t, "a@b.c", env.submission.Email)
	assert.Equal(t, "hello", env.submission.Message)
}

func TestNormalizeEvent_DirectShape(t *testing.T) {
	raw := json.RawMessage(`{"name":"B","email":"b@c.d","message":"direct","file_base64":""}`)

	env, appErr := normalizeEvent(raw)

	require.Nil(t, appErr)
	assert.Equal(t, submissionRequest, env.kind)
	assert.Equal(t, "B", env.submission.Name)
}

func TestNormalizeEvent_BodyTakesPrecedenceOverTopLevelFields(t *testing.T) {
	raw := json.RawMessage(`{"name":"top","email":"top@x.y","body":"{\"name\":\"inner\",\"email\":\"inner@x.y\"}"}`)

	env, appErr := normalizeEvent(raw)

	require.Nil(t, appErr)
	assert.Equal(t, "inner", env.submission.Name)
}

func TestNormalizeEvent_Preflight(t *testing.T) {
	env, appErr := normalizeEvent(json.RawMessage(`{"httpMethod":"OPTIONS"}`))

	require.Nil(t, appErr)
	assert.Equal(t, preflightRequest, env.kind)
}

func TestNormalizeEvent_UnknownShapeIsClientError(t *testing.T) {
	env, appErr := normalizeEvent(json.RawMessage(`{"httpMethod":"POST"}`))

	assert.Nil(t, env)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestNormalizeEvent_NameWithoutEmailIsClientError(t *testing.T) {
	env, appErr := normalizeEvent(json.RawMessage(`{"name":"only-name"}`))

	assert.Nil(t, env)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestNormalizeEvent_NullBodyIsServerError(t *testing.T) {
	// A present-but-null body matches the gateway shape and then fails to
	// decode, which is a 500 under the original contract.
	env, appErr := normalizeEvent(json.RawMessage(`{"httpMethod":"POST","body":null}`))

	assert.Nil(t, env)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
}

func TestDecodeAttachment_RawBase64(t *testing.T) {
	want := []byte("plain payload")
	got, err := decodeAttachment(base64.StdEncoding.EncodeToString(want))

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeAttachment_DataURI(t *testing.T) {
	want := []byte("uri payload")
	got, err := decodeAttachment("data:application/pdf;base64," + base64.StdEncoding.EncodeToString(want))

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeAttachment_OnlyFinalCommaCounts(t *testing.T) {
	want := []byte("after final comma")
	payload := "data:application/pdf;base64,garbage," + base64.StdEncoding.EncodeToString(want)

	got, err := decodeAttachment(payload)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeAttachment_Invalid(t *testing.T) {
	_, err := decodeAttachment("!!!definitely not base64!!!")
	assert.Error(t, err)
}
