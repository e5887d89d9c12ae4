package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeGenres(t *testing.T) {
	s, err := encodeGenres([]string{"Jazz", "R&B"})
	require.NoError(t, err)
	assert.Equal(t, `["Jazz","R\u0026B"]`, s)

	s, err = encodeGenres(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", s)
}

func TestDecodeGenres(t *testing.T) {
	genres, err := decodeGenres(`["Jazz","Folk"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz", "Folk"}, genres)

	genres, err = decodeGenres("")
	require.NoError(t, err)
	assert.Equal(t, []string{}, genres)

	genres, err = decodeGenres("null")
	require.NoError(t, err)
	assert.Equal(t, []string{}, genres)

	_, err = decodeGenres("{not json")
	assert.Error(t, err)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\temp`, escapeLike(`c:\temp`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
