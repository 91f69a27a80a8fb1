package commands

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/crypto-session-service/internal/app"
	"github.com/MGTheTrain/crypto-session-service/internal/domain/engines"
	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"
	"github.com/MGTheTrain/crypto-session-service/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-session-service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// SessionCommandHandler encapsulates logic for streaming files through
// one-shot cryptographic sessions via CLI.
type SessionCommandHandler struct {
	sessionService  sessions.SessionService
	pipelineService sessions.PipelineService
	logger          logger.Logger
}

// NewSessionCommandHandler initializes and returns a SessionCommandHandler
// instance with configured logger, registry and session services.
func NewSessionCommandHandler() (*SessionCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	registry, err := cryptography.NewRegistry(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	sessionService, pipelineService, err := app.NewSessionServices(registry, nil, loggerInstance, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create session services: %w", err)
	}

	return &SessionCommandHandler{
		sessionService:  sessionService,
		pipelineService: pipelineService,
		logger:          loggerInstance,
	}, nil
}

// runSingle streams one buffer through the session as a single segment with
// both the cipher and the hash flag set. Flags for transforms the session does
// not hold are ignored by the pipeline.
func (commandHandler *SessionCommandHandler) runSingle(sessionID string, kind sessions.OperationKind, src, dst, mac, iv []byte) error {
	request := &sessions.OperationRequest{
		Kind:      kind,
		SessionID: sessionID,
		Segments:  []sessions.Segment{{Src: src, Flags: sessions.SegmentCipher | sessions.SegmentHash}},
		IV:        iv,
		Dst:       dst,
		MAC:       mac,
	}
	return commandHandler.pipelineService.Run(context.Background(), request)
}

// pkcs7Pad pads data up to the next multiple of blockSize.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// pkcs7Unpad strips the padding applied by pkcs7Pad.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded data length %d", len(data))
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", padding)
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("corrupt padding")
		}
	}
	return data[:len(data)-padding], nil
}

// EncryptFileCmd encrypts a file through a one-shot cipher session. The random
// IV is prepended to the output file.
func (commandHandler *SessionCommandHandler) EncryptFileCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag ", err)
		return
	}
	keyFilePath, err := cmd.Flags().GetString("key-file")
	if err != nil {
		commandHandler.logger.Error("invalid key-file flag ", err)
		return
	}
	algorithm, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag ", err)
		return
	}

	plainText, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	key, err := os.ReadFile(filepath.Clean(keyFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	ctx := context.Background()
	sessionID, err := commandHandler.sessionService.Create(ctx, &engines.AlgorithmSpec{Algorithm: algorithm, Key: key}, nil)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := commandHandler.sessionService.Destroy(ctx, sessionID); err != nil {
			commandHandler.logger.Warn("failed to destroy session ", sessionID, " ", err)
		}
	}()

	info, err := commandHandler.sessionService.Info(ctx, sessionID)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	iv := make([]byte, info.IVSize)
	if _, err := rand.Read(iv); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	padded := pkcs7Pad(plainText, info.BlockSize)
	cipherText := make([]byte, len(padded))
	if err := commandHandler.runSingle(sessionID, sessions.OpEncrypt, padded, cipherText, nil, iv); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	// IV first, ciphertext after
	output := append(iv, cipherText...)
	if err := os.WriteFile(outputFilePath, output, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Encrypted data saved to ", outputFilePath)
}

// DecryptFileCmd decrypts a file produced by EncryptFileCmd, reading the IV
// from the beginning of the input file.
func (commandHandler *SessionCommandHandler) DecryptFileCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag ", err)
		return
	}
	keyFilePath, err := cmd.Flags().GetString("key-file")
	if err != nil {
		commandHandler.logger.Error("invalid key-file flag ", err)
		return
	}
	algorithm, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag ", err)
		return
	}

	input, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	key, err := os.ReadFile(filepath.Clean(keyFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	ctx := context.Background()
	sessionID, err := commandHandler.sessionService.Create(ctx, &engines.AlgorithmSpec{Algorithm: algorithm, Key: key}, nil)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := commandHandler.sessionService.Destroy(ctx, sessionID); err != nil {
			commandHandler.logger.Warn("failed to destroy session ", sessionID, " ", err)
		}
	}()

	info, err := commandHandler.sessionService.Info(ctx, sessionID)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if len(input) < info.IVSize {
		commandHandler.logger.Error("input file too short to carry an IV")
		return
	}
	iv, cipherText := input[:info.IVSize], input[info.IVSize:]

	padded := make([]byte, len(cipherText))
	if err := commandHandler.runSingle(sessionID, sessions.OpDecrypt, cipherText, padded, nil, iv); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	plainText, err := pkcs7Unpad(padded, info.BlockSize)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := os.WriteFile(outputFilePath, plainText, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Decrypted data saved to ", outputFilePath)
}

// DigestFileCmd hashes a file through a one-shot hash session. With a key file
// the digest is an HMAC.
func (commandHandler *SessionCommandHandler) DigestFileCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	algorithm, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag ", err)
		return
	}
	keyFilePath, err := cmd.Flags().GetString("key-file")
	if err != nil {
		commandHandler.logger.Error("invalid key-file flag ", err)
		return
	}

	data, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	hashSpec := &engines.AlgorithmSpec{Algorithm: algorithm}
	if keyFilePath != "" {
		key, err := os.ReadFile(filepath.Clean(keyFilePath))
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}
		hashSpec.Key = key
		hashSpec.HMAC = true
	}

	ctx := context.Background()
	sessionID, err := commandHandler.sessionService.Create(ctx, nil, hashSpec)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := commandHandler.sessionService.Destroy(ctx, sessionID); err != nil {
			commandHandler.logger.Warn("failed to destroy session ", sessionID, " ", err)
		}
	}()

	info, err := commandHandler.sessionService.Info(ctx, sessionID)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	mac := make([]byte, info.DigestSize)
	if err := commandHandler.runSingle(sessionID, sessions.OpEncrypt, data, nil, mac, nil); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Digest ", hex.EncodeToString(mac))
}

// InitSessionCommands registers session-related commands
func InitSessionCommands(rootCmd *cobra.Command) error {
	handler, err := NewSessionCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create session command handler %w", err)
	}

	var encryptFileCmd = &cobra.Command{
		Use:   "encrypt-file",
		Short: "Encrypt a file through a one-shot cipher session",
		Run:   handler.EncryptFileCmd,
	}
	encryptFileCmd.Flags().StringP("input-file", "", "", "Path to input file that needs to be encrypted")
	encryptFileCmd.Flags().StringP("output-file", "", "", "Path to encrypted output file (IV is prepended)")
	encryptFileCmd.Flags().StringP("key-file", "", "", "Path to the cipher key")
	encryptFileCmd.Flags().StringP("algorithm", "", engines.CipherAESCBC, "Cipher algorithm (aes-cbc, des-cbc, 3des-cbc, blowfish-cbc)")
	rootCmd.AddCommand(encryptFileCmd)

	var decryptFileCmd = &cobra.Command{
		Use:   "decrypt-file",
		Short: "Decrypt a file through a one-shot cipher session",
		Run:   handler.DecryptFileCmd,
	}
	decryptFileCmd.Flags().StringP("input-file", "", "", "Input encrypted file path (IV is read from the beginning)")
	decryptFileCmd.Flags().StringP("output-file", "", "", "Path to decrypted output file")
	decryptFileCmd.Flags().StringP("key-file", "", "", "Path to the cipher key")
	decryptFileCmd.Flags().StringP("algorithm", "", engines.CipherAESCBC, "Cipher algorithm (aes-cbc, des-cbc, 3des-cbc, blowfish-cbc)")
	rootCmd.AddCommand(decryptFileCmd)

	var digestFileCmd = &cobra.Command{
		Use:   "digest-file",
		Short: "Compute a digest or HMAC of a file through a one-shot hash session",
		Run:   handler.DigestFileCmd,
	}
	digestFileCmd.Flags().StringP("input-file", "", "", "Path to input file that needs to be hashed")
	digestFileCmd.Flags().StringP("algorithm", "", engines.HashSHA256, "Hash algorithm (md5, sha1, sha256, sha384, sha512, ripemd160)")
	digestFileCmd.Flags().StringP("key-file", "", "", "Optional path to an HMAC key")
	rootCmd.AddCommand(digestFileCmd)

	return nil
}
