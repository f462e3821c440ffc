package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SaltSize - размер соли в байтах
const SaltSize = 16

// RandomBytes возвращает n криптографически случайных байт
func RandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid random length %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return b, nil
}

// RandomBase64 возвращает n случайных байт в стандартной Base64 кодировке
func RandomBase64(n int) (string, error) {
	b, err := RandomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// GenerateSalt генерирует соль для хеширования паролей
func GenerateSalt() ([]byte, error) {
	return RandomBytes(SaltSize)
}
