package apikey_test

import (
	"crypto/rand"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikeys/pkg/apikey"
	"github.com/dmitrymomot/apikeys/pkg/validator"
)

func newHMACKey(t testing.TB) []byte {
	t.Helper()
	key := make([]byte, apikey.HMACKeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestCreate(t *testing.T) {
	t.Parallel()
	hmacKey := newHMACKey(t)

	res, err := apikey.Create("mycompany_key", hmacKey)
	require.NoError(t, err)

	keyPattern := regexp.MustCompile(`^mycompany_key_[0-9A-HJKMNP-TV-Z]{26}_[1-9A-HJ-NP-Za-km-z]+$`)
	assert.Regexp(t, keyPattern, res.Key)

	segments := strings.Split(res.Key, "_")
	assert.Equal(t, segments[2], res.Server.ID)
	assert.Len(t, res.Server.Verifier, apikey.VerifierSize)
	assert.WithinDuration(t, time.Now(), res.Server.Timestamp, 5*time.Second)

	created, err := apikey.IDTime(res.Server.ID)
	require.NoError(t, err)
	assert.True(t, created.Equal(res.Server.Timestamp))

	id, err := apikey.GetID(res.Key)
	require.NoError(t, err)
	assert.Equal(t, res.Server.ID, id)

	ok, err := apikey.Verify(res.Key, res.Server.Verifier, hmacKey)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = apikey.Verify(res.Key, newHMACKey(t), hmacKey)
	require.NoError(t, err)
	assert.False(t, ok, "random verifier must not match")
}

func TestCreate_Prefixes(t *testing.T) {
	t.Parallel()
	hmacKey := newHMACKey(t)

	tests := []struct {
		name    string
		prefix  string
		wantErr bool
	}{
		{"single group", "acme", false},
		{"two groups", "acme_live", false},
		{"three groups", "acme_live_1", false},
		{"max group length", strings.Repeat("a", 16), false},
		{"digits only", "123", false},
		{"empty", "", true},
		{"uppercase", "Acme", true},
		{"dash", "Foo-Bar", true},
		{"four groups", "a_b_c_d", true},
		{"group too long", strings.Repeat("a", 17), true},
		{"leading separator", "_acme", true},
		{"trailing separator", "acme_", true},
		{"double separator", "acme__live", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := apikey.Create(tt.prefix, hmacKey)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apikey.ErrInputShape)
				assert.ErrorIs(t, err, apikey.ErrInvalidPrefix)
				assert.True(t, validator.ExtractValidationErrors(err).Has("prefix"))
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(res.Key, tt.prefix+"_"))

			c, err := apikey.Parse(res.Key)
			require.NoError(t, err)
			assert.Equal(t, tt.prefix, c.Prefix)
		})
	}
}

func TestCreate_InvalidHMACKey(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 16, 31, 33, 64} {
		_, err := apikey.Create("acme", make([]byte, size))
		require.Error(t, err, "size %d", size)
		assert.ErrorIs(t, err, apikey.ErrInputShape)
		assert.True(t, validator.ExtractValidationErrors(err).Has("hmac_key"))
	}

	_, err := apikey.Create("acme", nil)
	assert.ErrorIs(t, err, apikey.ErrInputShape)
}

func TestCreate_Unique(t *testing.T) {
	t.Parallel()
	hmacKey := newHMACKey(t)

	const n = 200
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		keys = make(map[string]struct{}, n)
		ids  = make(map[string]struct{}, n)
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := apikey.Create("acme", hmacKey)
			assert.NoError(t, err)

			mu.Lock()
			keys[res.Key] = struct{}{}
			ids[res.Server.ID] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, keys, n)
	assert.Len(t, ids, n)
}

func TestVerify_WrongHMACKey(t *testing.T) {
	t.Parallel()
	hmacKey := newHMACKey(t)

	res, err := apikey.Create("acme", hmacKey)
	require.NoError(t, err)

	ok, err := apikey.Verify(res.Key, res.Server.Verifier, newHMACKey(t))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_MutatedSecret(t *testing.T) {
	t.Parallel()
	hmacKey := newHMACKey(t)

	res, err := apikey.Create("acme", hmacKey)
	require.NoError(t, err)

	c, err := apikey.Parse(res.Key)
	require.NoError(t, err)

	const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	for i := range len(c.Secret) {
		replacement := alphabet[(strings.IndexByte(alphabet, c.Secret[i])+1)%len(alphabet)]
		mutated := c.Secret[:i] + string(replacement) + c.Secret[i+1:]
		key := apikey.Serialize(c.Prefix, c.ID, mutated)

		ok, err := apikey.Verify(key, res.Server.Verifier, hmacKey)
		if err != nil {
			assert.ErrorIs(t, err, apikey.ErrParse, "position %d", i)
			continue
		}
		assert.False(t, ok, "position %d", i)
	}
}

func TestVerify_MutatedID(t *testing.T) {
	t.Parallel()
	hmacKey := newHMACKey(t)

	res, err := apikey.Create("acme", hmacKey)
	require.NoError(t, err)

	c, err := apikey.Parse(res.Key)
	require.NoError(t, err)

	// flip the last character of the random part
	last := c.ID[len(c.ID)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	id := c.ID[:len(c.ID)-1] + string(replacement)

	ok, err := apikey.Verify(apikey.Serialize(c.Prefix, id, c.Secret), res.Server.Verifier, hmacKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_PrefixNotBound(t *testing.T) {
	t.Parallel()
	hmacKey := newHMACKey(t)

	res, err := apikey.Create("acme", hmacKey)
	require.NoError(t, err)

	c, err := apikey.Parse(res.Key)
	require.NoError(t, err)

	// The prefix is a namespace tag only; the verifier covers id and secret.
	ok, err := apikey.Verify(apikey.Serialize("other", c.ID, c.Secret), res.Server.Verifier, hmacKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_WithPrefix(t *testing.T) {
	t.Parallel()
	hmacKey := newHMACKey(t)

	res, err := apikey.Create("acme_live", hmacKey)
	require.NoError(t, err)

	ok, err := apikey.Verify(res.Key, res.Server.Verifier, hmacKey, apikey.WithPrefix("acme_live"))
	require.NoError(t, err)
	assert.True(t, ok)

	for _, prefix := range []string{"acme", "acme_test", "acme_live_eu", ""} {
		ok, err := apikey.Verify(res.Key, res.Server.Verifier, hmacKey, apikey.WithPrefix(prefix))
		require.NoError(t, err, "prefix %q", prefix)
		assert.False(t, ok, "prefix %q", prefix)
	}

	// a malformed key is still a parse error
	_, err = apikey.Verify("bad_key", res.Server.Verifier, hmacKey, apikey.WithPrefix("acme_live"))
	assert.ErrorIs(t, err, apikey.ErrParse)
}

func TestVerify_InputShape(t *testing.T) {
	t.Parallel()
	hmacKey := newHMACKey(t)

	res, err := apikey.Create("acme", hmacKey)
	require.NoError(t, err)

	tests := []struct {
		name     string
		verifier []byte
		hmacKey  []byte
		field    string
	}{
		{"short verifier", res.Server.Verifier[:31], hmacKey, "verifier"},
		{"nil verifier", nil, hmacKey, "verifier"},
		{"short hmac key", res.Server.Verifier, hmacKey[:16], "hmac_key"},
		{"long hmac key", res.Server.Verifier, append(append([]byte{}, hmacKey...), 0), "hmac_key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := apikey.Verify(res.Key, tt.verifier, tt.hmacKey)
			require.Error(t, err)
			assert.False(t, ok)
			assert.ErrorIs(t, err, apikey.ErrInputShape)
			assert.True(t, validator.ExtractValidationErrors(err).Has(tt.field))
		})
	}
}

func TestVerify_MalformedKey(t *testing.T) {
	t.Parallel()
	hmacKey := newHMACKey(t)
	verifier := make([]byte, apikey.VerifierSize)

	ok, err := apikey.Verify("bad_key", verifier, hmacKey)
	assert.False(t, ok)
	assert.ErrorIs(t, err, apikey.ErrParse)
	assert.ErrorIs(t, err, apikey.ErrSegmentCount)
}

func TestVerify_TimeWindow(t *testing.T) {
	t.Parallel()
	hmacKey := newHMACKey(t)

	res, err := apikey.Create("acme", hmacKey)
	require.NoError(t, err)
	created := res.Server.Timestamp

	tests := []struct {
		name    string
		opts    []apikey.VerifyOption
		want    bool
		wantErr error
	}{
		{
			name: "after lower bound",
			opts: []apikey.VerifyOption{apikey.WithIsAfter(created.Add(-time.Second))},
			want: true,
		},
		{
			name: "lower bound equals creation time",
			opts: []apikey.VerifyOption{apikey.WithIsAfter(created)},
			want: true,
		},
		{
			name: "before upper bound",
			opts: []apikey.VerifyOption{apikey.WithIsBefore(created.Add(time.Second))},
			want: true,
		},
		{
			name: "created after upper bound",
			opts: []apikey.VerifyOption{apikey.WithIsBefore(created.Add(-time.Second))},
			want: false,
		},
		{
			name: "inside window",
			opts: []apikey.VerifyOption{
				apikey.WithIsAfter(created.Add(-time.Hour)),
				apikey.WithIsBefore(created.Add(time.Hour)),
			},
			want: true,
		},
		{
			name: "window is inverted",
			opts: []apikey.VerifyOption{
				apikey.WithIsAfter(created.Add(-time.Second)),
				apikey.WithIsBefore(created.Add(-time.Hour)),
			},
			wantErr: apikey.ErrTemporalConstraint,
		},
		{
			name: "window is empty",
			opts: []apikey.VerifyOption{
				apikey.WithIsAfter(created.Add(-time.Second)),
				apikey.WithIsBefore(created.Add(-time.Second)),
			},
			wantErr: apikey.ErrTemporalConstraint,
		},
		{
			name:    "lower bound in the future",
			opts:    []apikey.VerifyOption{apikey.WithIsAfter(time.Now().Add(time.Hour))},
			wantErr: apikey.ErrTemporalConstraint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := apikey.Verify(res.Key, res.Server.Verifier, hmacKey, tt.opts...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, validator.IsValidationError(err))
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestVerify_WindowCheckedAfterParse(t *testing.T) {
	t.Parallel()

	_, err := apikey.Verify("not a key", make([]byte, 32), make([]byte, 32),
		apikey.WithIsAfter(time.Now().Add(time.Hour)),
	)
	assert.ErrorIs(t, err, apikey.ErrParse)
	assert.NotErrorIs(t, err, apikey.ErrTemporalConstraint)
}

func TestConstantTimeEqual(t *testing.T) {
	t.Parallel()

	a := []byte{1, 2, 3, 4}
	assert.True(t, apikey.ConstantTimeEqual(a, []byte{1, 2, 3, 4}))
	assert.False(t, apikey.ConstantTimeEqual(a, []byte{0, 2, 3, 4}))
	assert.False(t, apikey.ConstantTimeEqual(a, []byte{1, 2, 3, 5}))
	assert.False(t, apikey.ConstantTimeEqual(a, []byte{1, 2, 3}))
	assert.True(t, apikey.ConstantTimeEqual(nil, []byte{}))
}
