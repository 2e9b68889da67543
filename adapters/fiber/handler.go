package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/sardor-dev/myid-auth/core"
)

// begin redirects the caller to the provider's authorization endpoint.
func (a *Adapter) begin(c fiber.Ctx) error {
	url, err := a.auth.Begin()
	if err != nil {
		return handleFlowError(c, err)
	}

	return c.Redirect().Status(http.StatusFound).To(url)
}

// callback handles the provider redirect carrying the authorization
// code and completes the enrollment.
func (a *Adapter) callback(c fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		// The provider redirected back without a code (denied or
		// errored); restart the flow.
		return redirectToStart(c, "missing_code")
	}

	if _, err := a.auth.Complete(c.Context(), code, c.Query("state")); err != nil {
		return handleFlowError(c, err)
	}

	return c.JSON([]string{"ok"})
}

// userInfo serves the local identity, local token and current provider
// profile for a PINFL.
func (a *Adapter) userInfo(c fiber.Ctx) error {
	info, err := a.auth.GetUserInfo(c.Context(), c.Params("pinfl"))
	if err != nil {
		return handleFlowError(c, err)
	}

	return c.JSON([]any{info.UserID, info.Token, info.Profile})
}

// me returns the user resolved by the requireToken middleware.
func (a *Adapter) me(c fiber.Ctx) error {
	user := c.Locals("user").(*core.User)
	return c.JSON(user)
}

// handleFlowError converts an error into a response. Errors from the
// defined taxonomy are a recovery condition: the caller is bounced back
// to the start of the flow with a machine-readable code, on the
// assumption that re-running enrollment fixes expired or missing
// credentials. Anything else surfaces as a distinct 500 so programming
// errors are not confused with expected recovery paths.
func handleFlowError(c fiber.Ctx, err error) error {
	if code := errorCode(err); code != "" {
		return redirectToStart(c, code)
	}

	return c.Status(http.StatusInternalServerError).JSON(map[string]string{
		"error": "internal server error",
	})
}

func redirectToStart(c fiber.Ctx, code string) error {
	return c.Redirect().Status(http.StatusFound).To("/?error=" + code)
}

// errorCode maps taxonomy errors to stable machine-readable codes.
// Unknown errors map to the empty string.
func errorCode(err error) string {
	switch {
	case errors.Is(err, core.ErrStateMismatch):
		return "state_mismatch"
	case errors.Is(err, core.ErrExchangeFailed):
		return "exchange_failed"
	case errors.Is(err, core.ErrProfileFetchFailed):
		return "profile_fetch_failed"
	case errors.Is(err, core.ErrMalformedProfile):
		return "malformed_profile"
	case errors.Is(err, core.ErrNoCredential):
		return "no_credential"
	default:
		return ""
	}
}
