package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64Image(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	field := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	data, contentType, err := DecodeBase64Image(field)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/png", contentType)
}

func TestDecodeBase64ImageRejectsMalformed(t *testing.T) {
	var verr *ValidationError
	for _, field := range []string{
		"https://example.com/image.png",
		"data:image/png,no-encoding-marker",
		"data:image/png;base64,@@not-base64@@",
		"data:",
	} {
		_, _, err := DecodeBase64Image(field)
		assert.ErrorAs(t, err, &verr, "field %q", field)
	}
}

func TestDisabledImageStore(t *testing.T) {
	_, err := DisabledImageStore{}.Upload(context.Background(), []byte("x"), "image/png")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
