package cryptography

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"veriface.io/application/utils"
)

var CryptoHahser Hasher = argonHasher{}

// DecryptData decrypts an AES-CFB payload produced by EncryptData. A nil
// keyString falls back to the service encryption key.
func DecryptData(stringToDecrypt string, keyString *string) ([]byte, error) {
	if keyString == nil {
		keyString = utils.GetStringPointer(os.Getenv("ENC_KEY"))
	}

	key, err := hex.DecodeString(*keyString)
	if err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}

	ciphertext, err := base64.URLEncoding.DecodeString(stringToDecrypt)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 input: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(ciphertext) < aes.BlockSize {
		return nil, fmt.Errorf("ciphertext too short: must be at least %d bytes", aes.BlockSize)
	}

	iv := ciphertext[:aes.BlockSize]
	ciphertext = ciphertext[aes.BlockSize:]

	stream := cipher.NewCFBDecrypter(block, iv)
	plaintext := make([]byte, len(ciphertext))
	stream.XORKeyStream(plaintext, ciphertext)

	return plaintext, nil
}

// EncryptData encrypts a payload with AES-CFB under the service encryption
// key unless one is provided. Used for secrets stored at rest, such as
// per-user TOTP seeds.
func EncryptData(payload []byte, keyString *string) (*string, error) {
	if keyString == nil {
		keyString = utils.GetStringPointer(os.Getenv("ENC_KEY"))
	}

	key, err := hex.DecodeString(*keyString)
	if err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	ciphertext := make([]byte, aes.BlockSize+len(payload))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], payload)

	encoded := base64.URLEncoding.EncodeToString(ciphertext)
	return utils.GetStringPointer(encoded), nil
}
