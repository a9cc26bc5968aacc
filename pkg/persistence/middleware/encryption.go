package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/ports"
)

// envelopeMarker is the first consumed entry of an encrypted computation.
const envelopeMarker = "__encrypted__"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.ComputationStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts computations using AES-GCM.
// The stored envelope keeps the ID, status and timestamps readable; the active set,
// the consumed word and the rejection reason are only available after decryption.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, errors.New("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.ComputationStore) ports.ComputationStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, c *domain.Computation) error {
	plainText, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal computation: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt computation: %w", err)
	}

	envelope := &domain.Computation{
		ID:        c.ID,
		Active:    domain.NewStateSet(),
		Consumed:  []string{envelopeMarker, base64.StdEncoding.EncodeToString(ciphertext)},
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	return m.next.Save(ctx, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, id string) (*domain.Computation, error) {
	envelope, err := m.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(envelope.Consumed) != 2 || envelope.Consumed[0] != envelopeMarker {
		// Fail secure: a plain computation is not trusted once encryption is on.
		return nil, fmt.Errorf("computation %s is missing its encrypted envelope", id)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Consumed[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt computation: %w", err)
	}

	var c domain.Computation
	if err := json.Unmarshal(plainText, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted computation: %w", err)
	}
	return &c, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}
