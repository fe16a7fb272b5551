package auth

import (
	"errors"
	"strings"

	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/utils/response"
	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GoogleSignInRequest carries a Google ID token obtained client-side
type GoogleSignInRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// GoogleSignIn verifies a Google ID token and bridges the identity into
// a local account. First sign-in creates a GUEST user keyed by the
// provider subject, later sign-ins reuse it and refresh name and avatar.
func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	if h.googleClientID == "" {
		return response.ServiceUnavailable(c, "Google sign-in is not configured")
	}

	var req GoogleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{h.googleClientID}); err != nil {
		return response.Unauthorized(c, "Invalid Google ID token")
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return response.Unauthorized(c, "Invalid Google ID token")
	}
	if claimSet.Sub == "" || claimSet.Email == "" {
		return response.Unauthorized(c, "Google token is missing subject or email")
	}

	user, err := h.findOrCreateGoogleUser(claimSet)
	if err != nil {
		return response.InternalServerError(c, "Failed to bridge Google account")
	}

	return h.issueTokens(c, user, fiber.StatusOK)
}

// findOrCreateGoogleUser resolves the provider subject to a local user.
// Match order: external id first, then email (linking an existing local
// account to the provider), then a fresh GUEST account.
func (h *AuthHandler) findOrCreateGoogleUser(claimSet *googleAuthIDTokenVerifier.ClaimSet) (*model.User, error) {
	var user model.User

	err := h.db.Where("external_id = ?", claimSet.Sub).First(&user).Error
	if err == nil {
		user.Name = claimSet.Name
		user.AvatarURL = claimSet.Picture
		if err := h.db.Save(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = h.db.Where("email = ?", claimSet.Email).First(&user).Error
	if err == nil {
		sub := claimSet.Sub
		user.ExternalID = &sub
		if user.AvatarURL == "" {
			user.AvatarURL = claimSet.Picture
		}
		if err := h.db.Save(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub := claimSet.Sub
	user = model.User{
		ExternalID: &sub,
		Email:      claimSet.Email,
		Name:       claimSet.Name,
		AvatarURL:  claimSet.Picture,
		UserType:   model.UserTypeGuest,
	}
	if user.Name == "" {
		user.Name = claimSet.Email
	}
	if err := h.db.Create(&user).Error; err != nil {
		// Concurrent first sign-ins race between the lookups above and
		// this insert. The unique indexes arbitrate: the loser re-fetches
		// the row the winner committed.
		if isDuplicateKey(err) {
			var existing model.User
			ferr := h.db.Where("external_id = ? OR email = ?", claimSet.Sub, claimSet.Email).
				First(&existing).Error
			if ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &user, nil
}

// isDuplicateKey recognizes the postgres unique-violation error without
// depending on driver internals
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
