//go:build unit
// +build unit

package cryptography

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/engines"
	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"
	pkgTesting "github.com/MGTheTrain/crypto-session-service/internal/pkg/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRegistry(t *testing.T) engines.Registry {
	t.Helper()
	log := pkgTesting.SetupTestLogger(t)
	registry, err := NewRegistry(log)
	require.NoError(t, err)
	return registry
}

func TestRegistryResolveCipher(t *testing.T) {
	registry := setupRegistry(t)

	t.Run("ValidKeyLengths", func(t *testing.T) {
		specs := []engines.AlgorithmSpec{
			{Algorithm: engines.CipherAESCBC, Key: make([]byte, 16)},
			{Algorithm: engines.CipherAESCBC, Key: make([]byte, 24)},
			{Algorithm: engines.CipherAESCBC, Key: make([]byte, 32)},
			{Algorithm: engines.CipherDESCBC, Key: make([]byte, 8)},
			{Algorithm: engines.Cipher3DESCBC, Key: make([]byte, 24)},
			{Algorithm: engines.CipherBlowfishCBC, Key: make([]byte, 16)},
		}

		for _, spec := range specs {
			engine, err := registry.ResolveCipher(spec)
			require.NoError(t, err, spec.Algorithm)
			assert.Greater(t, engine.BlockSize(), 0)
			assert.Equal(t, engine.BlockSize(), engine.IVSize())
			engine.Close()
		}
	})

	t.Run("InvalidKeyLength", func(t *testing.T) {
		specs := []engines.AlgorithmSpec{
			{Algorithm: engines.CipherAESCBC, Key: make([]byte, 15)},
			{Algorithm: engines.CipherAESCBC, Key: make([]byte, 20)},
			{Algorithm: engines.CipherDESCBC, Key: make([]byte, 7)},
			{Algorithm: engines.Cipher3DESCBC, Key: make([]byte, 16)},
			{Algorithm: engines.CipherBlowfishCBC, Key: nil},
			{Algorithm: engines.CipherBlowfishCBC, Key: make([]byte, 57)},
		}

		for _, spec := range specs {
			_, err := registry.ResolveCipher(spec)
			require.Error(t, err, spec.Algorithm)
			assert.True(t, errors.Is(err, sessions.ErrInvalidKeyLength))
		}
	})

	t.Run("UnknownAlgorithm", func(t *testing.T) {
		_, err := registry.ResolveCipher(engines.AlgorithmSpec{Algorithm: "rot13-cbc", Key: make([]byte, 16)})
		require.Error(t, err)
		assert.True(t, errors.Is(err, sessions.ErrUnknownAlgorithm))
	})

	t.Run("NoLeakOnError", func(t *testing.T) {
		baseline := ActiveEngines()
		_, err := registry.ResolveCipher(engines.AlgorithmSpec{Algorithm: engines.CipherAESCBC, Key: make([]byte, 20)})
		require.Error(t, err)
		assert.Equal(t, baseline, ActiveEngines())
	})
}

func TestRegistryResolveHash(t *testing.T) {
	registry := setupRegistry(t)

	t.Run("UnkeyedDigests", func(t *testing.T) {
		algorithms := []string{
			engines.HashMD5,
			engines.HashSHA1,
			engines.HashSHA256,
			engines.HashSHA384,
			engines.HashSHA512,
			engines.HashRIPEMD160,
		}

		for _, algorithm := range algorithms {
			engine, err := registry.ResolveHash(engines.AlgorithmSpec{Algorithm: algorithm})
			require.NoError(t, err, algorithm)
			assert.Greater(t, engine.DigestSize(), 0)
			engine.Close()
		}
	})

	t.Run("KeyedHMAC", func(t *testing.T) {
		key := pkgTesting.RandomBytes(t, 32)
		engine, err := registry.ResolveHash(engines.AlgorithmSpec{
			Algorithm: engines.HashSHA256,
			Key:       key,
			HMAC:      true,
		})
		require.NoError(t, err)
		defer engine.Close()

		message := []byte("keyed digest input")
		engine.Init()
		require.NoError(t, engine.Update(message))
		digest, err := engine.Final()
		require.NoError(t, err)

		mac := hmac.New(sha256.New, key)
		mac.Write(message)
		assert.True(t, bytes.Equal(mac.Sum(nil), digest))
	})

	t.Run("HMACWithoutKey", func(t *testing.T) {
		_, err := registry.ResolveHash(engines.AlgorithmSpec{Algorithm: engines.HashSHA256, HMAC: true})
		require.Error(t, err)
		assert.True(t, errors.Is(err, sessions.ErrInvalidKeyLength))
	})

	t.Run("HMACKeyTooLong", func(t *testing.T) {
		_, err := registry.ResolveHash(engines.AlgorithmSpec{
			Algorithm: engines.HashSHA256,
			Key:       make([]byte, engines.MaxHMACKeyLength+1),
			HMAC:      true,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, sessions.ErrInvalidKeyLength))
	})

	t.Run("UnknownAlgorithm", func(t *testing.T) {
		_, err := registry.ResolveHash(engines.AlgorithmSpec{Algorithm: "crc32"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, sessions.ErrUnknownAlgorithm))
	})
}
