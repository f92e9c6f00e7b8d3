package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"

	"pixdrop/internal/adapters/googleauth"
	"pixdrop/internal/delivery/http/helpers"
)

const stateCookieName = "oauth_state"

// TokenGrantResponse carries the result of the one-time authorization flow
// back to the operator. The refresh token is meant to be copied into the
// GOOGLE_REFRESH_TOKEN environment variable.
type TokenGrantResponse struct {
	RefreshToken string `json:"refreshToken"`
	AccessToken  string `json:"accessToken"`
	Message      string `json:"message"`
}

type OAuthController struct {
	Logger *slog.Logger
	Config googleauth.Config
}

func NewOAuthController(logger *slog.Logger, cfg googleauth.Config) *OAuthController {
	return &OAuthController{
		Logger: logger,
		Config: cfg,
	}
}

// Authorize godoc
// @Summary Start the Google authorization flow
// @Description Redirects the operator to the Google consent screen. Run once to obtain a refresh token.
// @Tags oauth
// @Success 307 "Redirect to the Google consent screen"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error (OAuth client not configured)"
// @Router /api/oauth/authorize [get]
func (c *OAuthController) Authorize(w http.ResponseWriter, r *http.Request) {
	if c.Config.ClientID == "" || c.Config.ClientSecret == "" {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError,
			"GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
		return
	}
	state, err := randomState()
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/api/oauth",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, googleauth.AuthCodeURL(c.Config, state), http.StatusTemporaryRedirect)
}

// Callback godoc
// @Summary Complete the Google authorization flow
// @Description Exchanges the authorization code and returns the refresh token for the operator to store.
// @Tags oauth
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the granted tokens"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (missing code or state mismatch)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/oauth/callback [get]
func (c *OAuthController) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if errMsg := query.Get("error"); errMsg != "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "authorization denied: "+errMsg)
		return
	}
	code := query.Get("code")
	if code == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing authorization code")
		return
	}
	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "state mismatch")
		return
	}

	tok, err := googleauth.Exchange(r.Context(), c.Config, code)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if tok.RefreshToken == "" {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError,
			"no refresh token granted; revoke the app's access in your Google account and try again")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, TokenGrantResponse{
		RefreshToken: tok.RefreshToken,
		AccessToken:  tok.AccessToken,
		Message:      "set GOOGLE_REFRESH_TOKEN to the refresh token and restart the server",
	})
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
