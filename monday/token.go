package monday

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read from a Monday.com API token without calling the API.
type TokenInfo struct {
	Format    string `json:"format"`
	UserID    string `json:"userId,omitempty"`
	AccountID string `json:"accountId,omitempty"`
	Region    string `json:"region,omitempty"`
	Scope     string `json:"scope,omitempty"`
	IssuedAt  string `json:"issuedAt,omitempty"`
	Masked    string `json:"masked"`
}

// InspectToken decodes the claims of a personal API token. Monday.com issues
// these as HS256 JWTs; the signature can't be checked here and isn't. Tokens
// that are not JWTs are reported as opaque.
func InspectToken(token string) TokenInfo {
	info := TokenInfo{Format: "opaque", Masked: MaskToken(token)}
	if token == "" {
		info.Format = "missing"
		return info
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return info
	}

	info.Format = "jwt"
	info.UserID = claimString(claims, "uid")
	info.AccountID = claimString(claims, "actid")
	info.Region = claimString(claims, "rgn")
	info.Scope = claimString(claims, "per")
	info.IssuedAt = claimString(claims, "iad")
	return info
}

// MaskToken keeps the first and last four characters of a token.
func MaskToken(token string) string {
	if len(token) <= 12 {
		if token == "" {
			return ""
		}
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
