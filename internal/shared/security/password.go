package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost 与线上已有账号的哈希成本保持一致。
const PasswordCost = 12

var ErrPasswordEmpty = errors.New("password is empty")

func HashPassword(pwd string) (string, error) {
	return HashPasswordCost(pwd, PasswordCost)
}

func HashPasswordCost(pwd string, cost int) (string, error) {
	if pwd == "" {
		return "", ErrPasswordEmpty
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pwd), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, pwd string) bool {
	if hash == "" || pwd == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pwd)) == nil
}
