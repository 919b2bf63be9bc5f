package util

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost bcrypt 计算强度
const PasswordCost = bcrypt.DefaultCost

// GeneratePasswordHash 生成密码的 bcrypt 哈希值
func GeneratePasswordHash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches hash
// CheckPasswordHash 验证密码与哈希值是否匹配
func CheckPasswordHash(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
