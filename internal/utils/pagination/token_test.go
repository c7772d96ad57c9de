package pagination_test

import (
	"testing"
	"time"

	"github.com/belafarma/backoffice/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	day := time.Date(2025, 8, 14, 0, 0, 0, 0, time.Local)
	createdAt := time.Date(2025, 8, 14, 18, 42, 13, 123456789, time.Local)

	token := pagination.EncodeToken(day, createdAt)
	gotDay, gotCreatedAt, err := pagination.DecodeToken(token)

	assert.NoError(t, err)
	assert.True(t, day.Equal(gotDay))
	assert.True(t, createdAt.Equal(gotCreatedAt))
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	_, _, err := pagination.DecodeToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)
}

func TestEncodeDecodeDateBasedToken_RoundTrip(t *testing.T) {
	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local)

	token := pagination.EncodeDateBasedToken(date)
	got, err := pagination.DecodeDateBasedToken(token)

	assert.NoError(t, err)
	assert.True(t, date.Equal(got))
}
