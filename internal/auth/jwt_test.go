package auth

import (
	"testing"

	"github.com/mgavilanes/campline-be/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	SetSecret("test-secret")

	user := models.User{ID: "user-1", Name: "Ana Ruiz"}
	token, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != user.ID || claims.Name != user.Name {
		t.Errorf("claims = %+v, want ID %s and name %s", claims, user.ID, user.Name)
	}
}

func TestValidateJWTRejectsWrongKey(t *testing.T) {
	SetSecret("key-one")
	token, err := GenerateJWT(models.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	SetSecret("key-two")
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("token signed with a different key must not validate")
	}
}
