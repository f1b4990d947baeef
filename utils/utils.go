package utils

import (
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

// BcryptCost: переменная, чтобы тесты могли понизить стоимость хеширования.
var BcryptCost = 12

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
