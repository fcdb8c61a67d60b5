package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/veon-api/internal/application/dto"
	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/pkg/logger"
	"github.com/jhoicas/veon-api/pkg/validation"
)

// AuthHandler operaciones sobre la identidad del usuario. El alta y el login viven en el
// proveedor de identidad; aquí solo se verifican tokens.
type AuthHandler struct {
	verifier TokenVerifier
	log      *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(verifier TokenVerifier, log *logger.Logger) *AuthHandler {
	return &AuthHandler{verifier: verifier, log: log}
}

// VerifyToken godoc
// @Summary      Verificar token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyTokenRequest  true  "token"
// @Success      200   {object}  dto.SuccessResponse{data=dto.TokenInfo}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-token [post]
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	var in dto.VerifyTokenRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validation.Required(in.Token, "Token"); err != nil {
		return respondError(c, h.log, err)
	}
	claims, err := h.verifier.Verify(in.Token)
	if err != nil {
		return respondError(c, h.log, domain.NewUnauthorizedError("Invalid or expired token"))
	}
	return c.JSON(dto.OK(dto.TokenInfo{
		UID:           claims.UID,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
	}))
}

// Me godoc
// @Summary      Usuario actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse{data=dto.UserProfile}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := GetClaims(c)
	if claims == nil {
		return respondError(c, h.log, domain.NewUnauthorizedError("Unauthorized"))
	}
	return c.JSON(dto.OK(dto.UserProfile{
		UID:           claims.UID,
		Email:         claims.Email,
		DisplayName:   claims.Name,
		PhotoURL:      claims.Picture,
		EmailVerified: claims.EmailVerified,
	}))
}
