package utils

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = bcrypt.DefaultCost

const (
	referenceLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	referenceDigits  = "0123456789"
	hexAlphabet      = "0123456789abcdef"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateReferenceID returns 4 letters A-Z and 4 digits in shuffled order.
func GenerateReferenceID() (string, error) {
	letters, err := gonanoid.Generate(referenceLetters, 4)
	if err != nil {
		return "", fmt.Errorf("failed to generate reference letters: %w", err)
	}
	digits, err := gonanoid.Generate(referenceDigits, 4)
	if err != nil {
		return "", fmt.Errorf("failed to generate reference digits: %w", err)
	}

	chars := []rune(letters + digits)
	rand.Shuffle(len(chars), func(i, j int) { chars[i], chars[j] = chars[j], chars[i] })
	return string(chars), nil
}

// RandomPassword returns a 12 character hex string for placeholder accounts.
func RandomPassword() (string, error) {
	return gonanoid.Generate(hexAlphabet, 12)
}

// TeamLink builds the public path of a team page.
func TeamLink(teamID int, teamName string) string {
	return fmt.Sprintf("/teams/%d-%s", teamID, slug.Make(teamName))
}

// NormalizeGender maps free-form input onto Male, Female or Other.
func NormalizeGender(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male":
		return "Male"
	case "female":
		return "Female"
	default:
		return "Other"
	}
}
