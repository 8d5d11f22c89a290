package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-image-generator/internal/domain"
)

func TestParseUniversalOptions(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		expectedAddrs []string
		expectedDB    int
		expectedPass  string
		expectErr     bool
	}{
		{
			name:          "single url",
			raw:           "redis://:secret@localhost:6379/2",
			expectedAddrs: []string{"localhost:6379"},
			expectedDB:    2,
			expectedPass:  "secret",
		},
		{
			name:          "plain address",
			raw:           "cache:6379",
			expectedAddrs: []string{"cache:6379"},
		},
		{
			name:          "cluster forces database zero",
			raw:           "redis://a:6379/3, redis://b:6379/3",
			expectedAddrs: []string{"a:6379", "b:6379"},
			expectedDB:    0,
		},
		{
			name:      "empty",
			raw:       " , ",
			expectErr: true,
		},
		{
			name:      "bad scheme",
			raw:       "http://localhost:6379",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseUniversalOptions(tt.raw)

			if tt.expectErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddrs, opts.Addrs)
			assert.Equal(t, tt.expectedDB, opts.DB)
			assert.Equal(t, tt.expectedPass, opts.Password)
		})
	}
}

func TestMapRedisError(t *testing.T) {
	err := mapRedisError(redis.Nil, "quote:abc")
	assert.True(t, domain.IsNotFound(err))

	err = mapRedisError(errors.New("dial tcp: connection refused"), "quote:abc")
	assert.True(t, domain.IsUnavailable(err))
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	c, err := NewRedisCache(context.Background(), "")

	require.Error(t, err)
	assert.Nil(t, c)
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	c := NewRedisCacheWithClient(client)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	assert.True(t, domain.IsUnavailable(err))
	assert.True(t, domain.IsUnavailable(c.Set(ctx, "k", []byte("v"), 10)))
	assert.Error(t, c.Check(ctx))
	assert.Equal(t, "entry-cache", c.Name())
}
