package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// respondError and respondMessage keep every JSON envelope in the API down to
// a single key, so clients never branch on response shape.
func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyMessage: message})
}

func handleHTTPError(c echo.Context, err error) error {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return respondError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}

	msg, _ := he.Message.(string)
	if msg == "" {
		msg = http.StatusText(he.Code)
	}
	return respondError(c, he.Code, msg)
}
