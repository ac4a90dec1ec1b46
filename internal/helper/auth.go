package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Auth struct {
	Secret string
	TTL    time.Duration
}

func SetupAuth(s string, ttl time.Duration) Auth {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return Auth{
		Secret: s,
		TTL:    ttl,
	}
}

func (a Auth) GenerateToken(subjectID, email string, emailVerified bool) (string, error) {
	if subjectID == "" || email == "" {
		return "", errors.New("required inputs are missing to generate token")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            subjectID,
		"email":          email,
		"email_verified": emailVerified,
		"iat":            now.Unix(),
		"exp":            now.Add(a.TTL).Unix(),
	})

	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}

	return tokenStr, nil
}

// VerifyToken accepts "Bearer <token>" or a bare token.
func (a Auth) VerifyToken(tokenString string) (dto.AuthResponse, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.AuthResponse{}, domain.ErrUnauthenticated
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return dto.AuthResponse{}, domain.ErrUnauthenticated
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	})
	if err != nil {
		return dto.AuthResponse{}, domain.ErrInvalidCredential.Wrap(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return dto.AuthResponse{}, domain.ErrInvalidCredential.WithMessage("invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return dto.AuthResponse{}, domain.ErrInvalidCredential.WithMessage("missing expiry")
	}
	if float64(time.Now().Unix()) > exp {
		return dto.AuthResponse{}, domain.ErrInvalidCredential.WithMessage("token expired")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return dto.AuthResponse{}, domain.ErrInvalidCredential.WithMessage("missing subject")
	}
	verified, _ := claims["email_verified"].(bool)
	iat, _ := claims["iat"].(float64)

	return dto.AuthResponse{
		SubjectID:     sub,
		Email:         email,
		EmailVerified: verified,
		Iat:           int64(iat),
		Expiry:        int64(exp),
	}, nil
}

func (a Auth) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrValidation.WithMessage("password longer than 72 bytes").WithFields("password")
	}
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(hashed), nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword(
		[]byte(hashed),
		[]byte(plain),
	); err != nil {
		return domain.ErrInvalidCredential.WithMessage("invalid email or password")
	}
	return nil
}
