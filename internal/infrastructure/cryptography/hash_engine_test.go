//go:build unit
// +build unit

package cryptography

import (
	"crypto/sha256"
	"testing"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/engines"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEngine(t *testing.T) {
	registry := setupRegistry(t)

	t.Run("UnkeyedDigestMatchesStandardLibrary", func(t *testing.T) {
		engine, err := registry.ResolveHash(engines.AlgorithmSpec{Algorithm: engines.HashSHA256})
		require.NoError(t, err)
		defer engine.Close()

		message := []byte("segment one, segment two")
		engine.Init()
		require.NoError(t, engine.Update(message[:12]))
		require.NoError(t, engine.Update(message[12:]))
		digest, err := engine.Final()
		require.NoError(t, err)

		want := sha256.Sum256(message)
		assert.Equal(t, want[:], digest)
	})

	t.Run("InitResetsState", func(t *testing.T) {
		engine, err := registry.ResolveHash(engines.AlgorithmSpec{Algorithm: engines.HashSHA256})
		require.NoError(t, err)
		defer engine.Close()

		engine.Init()
		require.NoError(t, engine.Update([]byte("stale state")))

		engine.Init()
		require.NoError(t, engine.Update([]byte("fresh")))
		digest, err := engine.Final()
		require.NoError(t, err)

		want := sha256.Sum256([]byte("fresh"))
		assert.Equal(t, want[:], digest)
	})

	t.Run("DigestSizes", func(t *testing.T) {
		sizes := map[string]int{
			engines.HashMD5:       16,
			engines.HashSHA1:      20,
			engines.HashSHA256:    32,
			engines.HashSHA384:    48,
			engines.HashSHA512:    64,
			engines.HashRIPEMD160: 20,
		}

		for algorithm, size := range sizes {
			engine, err := registry.ResolveHash(engines.AlgorithmSpec{Algorithm: algorithm})
			require.NoError(t, err, algorithm)
			assert.Equal(t, size, engine.DigestSize(), algorithm)
			engine.Close()
		}
	})
}
