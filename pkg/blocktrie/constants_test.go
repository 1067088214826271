package blocktrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAlgoIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"md5", "MD5", "Md5", "mD5"} {
		algo, err := ParseAlgo(name)
		require.NoError(t, err)
		require.Equal(t, MD5, algo)
	}
	for _, name := range []string{"sha256", "SHA256", "Sha256", "ShA256"} {
		algo, err := ParseAlgo(name)
		require.NoError(t, err)
		require.Equal(t, SHA256, algo)
	}
}

func TestParseAlgoRejectsUnknownName(t *testing.T) {
	_, err := ParseAlgo("crc32")
	require.Error(t, err)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
}
