package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintStable(t *testing.T) {
	body := []byte("a pretend datagram body")

	require.Equal(t, Fingerprint(body), Fingerprint(body))
}

func TestFingerprintDiffersOnContent(t *testing.T) {
	require.NotEqual(t, Fingerprint([]byte("a")), Fingerprint([]byte("b")))
}
