package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashNeverEqualsPlaintext(t *testing.T) {
	h := BcryptHasher{}

	hash, err := h.Hash([]byte("Abcd1234"))
	assert.NoError(t, err)
	assert.NotEqual(t, "Abcd1234", string(hash))

	cost, err := bcrypt.Cost(hash)
	assert.NoError(t, err)
	assert.Equal(t, Cost, cost)
}

func TestCompareAcceptsOnlyExactPlaintext(t *testing.T) {
	h := BcryptHasher{}

	hash, err := h.Hash([]byte("Abcd1234"))
	assert.NoError(t, err)

	assert.NoError(t, h.Compare(hash, []byte("Abcd1234")))
	assert.Error(t, h.Compare(hash, []byte("abcd1234")))
	assert.Error(t, h.Compare(hash, []byte("Abcd12345")))
	assert.Error(t, h.Compare(hash, []byte("")))
}
