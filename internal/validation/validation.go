// Package validation checks user input before it reaches the session service.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"unicode/utf8"
)

// UsernamePattern определяет допустимый формат username
// Только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// RoleNamePattern допускает буквы, цифры, пробел, дефис и подчеркивание
var RoleNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\- ]{1,64}$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// MinPasswordLen минимальная длина пароля в символах
	MinPasswordLen = 8
	// MaxPasswordLen ограничивает работу argon2 на заведомо мусорном вводе
	MaxPasswordLen = 256
	// MaxEmailLen максимальная длина email (RFC 5321)
	MaxEmailLen = 254
)

// ValidateUsername проверяет, что username соответствует требованиям
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю при регистрации
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	n := utf8.RuneCountInString(password)
	if n < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	if n > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}

	return nil
}

// ValidateEmail проверяет, что строка является одиночным адресом без display name
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email is not a valid address")
	}

	return nil
}

// ValidateRoleName проверяет имя роли
func ValidateRoleName(role string) error {
	if role == "" {
		return fmt.Errorf("role cannot be empty")
	}

	if !RoleNamePattern.MatchString(role) {
		return fmt.Errorf("role can only contain letters, numbers, spaces, hyphens and underscores (max 64)")
	}

	return nil
}
