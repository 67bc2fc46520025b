package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieCodecRoundTrip(t *testing.T) {
	codec := NewCookieCodec("test-secret", time.Hour)

	value, err := codec.Encode("abc123")
	require.NoError(t, err)

	sid, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, "abc123", sid)
}

func TestCookieCodecRejectsWrongSecret(t *testing.T) {
	value, err := NewCookieCodec("secret-a", time.Hour).Encode("abc123")
	require.NoError(t, err)

	_, err = NewCookieCodec("secret-b", time.Hour).Decode(value)
	assert.Error(t, err)
}

func TestCookieCodecRejectsGarbage(t *testing.T) {
	codec := NewCookieCodec("test-secret", time.Hour)

	_, err := codec.Decode("not-a-token")
	assert.Error(t, err)

	_, err = codec.Decode("")
	assert.Error(t, err)
}

func TestCookieCodecRejectsExpired(t *testing.T) {
	codec := NewCookieCodec("test-secret", time.Nanosecond)

	value, err := codec.Encode("abc123")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = codec.Decode(value)
	assert.Error(t, err)
}
