package model

type User struct {
	ID           int64
	Username     string
	PasswordHash string // never the plaintext
}
