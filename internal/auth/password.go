package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// hashCost - стоимость bcrypt (фактор 10)
const hashCost = bcrypt.DefaultCost

// HashPassword создает bcrypt хеш пароля
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(bytes), err
}

// CheckPasswordHash проверяет пароль против хеша.
// Несовпадение - это false, а не ошибка.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
