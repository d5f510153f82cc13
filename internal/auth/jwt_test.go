package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testJWTSecret = "k9f2Lm8xQp4Rv7Tz1Wc5Yb3Ne6Hj0Gd2"

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService(testJWTSecret, time.Hour)

	userID := uuid.New()
	orgID := uuid.New()

	token, err := svc.Generate(userID, orgID, "user@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, orgID, claims.OrganizationID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService(testJWTSecret, time.Hour)
	other := NewJWTService("z1Xw9Vu7Ts5Rq3Po1Nm9Lk7Ji5Hg3Fe1", time.Hour)

	token, err := svc.Generate(uuid.New(), uuid.New(), "user@example.com")
	assert.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(testJWTSecret, -time.Minute)

	token, err := svc.Generate(uuid.New(), uuid.New(), "user@example.com")
	assert.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(testJWTSecret, time.Hour)

	_, err := svc.Verify("not.a.token")
	assert.Error(t, err)
}
