package httpapi

import (
	"crypto/rand"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const jwtTokenExpiry = 24 * time.Hour

var jwtSigningKey []byte

func initJWTKey(secret string) {
	if secret != "" {
		jwtSigningKey = []byte(secret)
		return
	}
	// Generate a random key if no secret is configured. Tokens stop
	// verifying across restarts, which is fine for a dev setup.
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate JWT key: " + err.Error())
	}
	jwtSigningKey = b
}

func generateJWT(userID int64, username string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(userID, 10),
		"username": username,
		"exp":      time.Now().Add(jwtTokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSigningKey)
}

func parseJWT(tokenStr string) (userID int64, username string, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSigningKey, nil
	})
	if err != nil {
		return 0, "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", jwt.ErrSignatureInvalid
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, "", jwt.ErrTokenInvalidSubject
	}
	uname, _ := claims["username"].(string)
	return id, uname, nil
}
