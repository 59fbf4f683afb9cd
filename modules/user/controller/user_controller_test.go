package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	corecontroller "agenda-api/core/controller"
	"agenda-api/modules/user/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupReportsMissingFields(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/users/signup", strings.NewReader(`{"email":"alice@x.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	// The field checks run before the service is touched.
	c := NewUserController(service.NewUserService(nil))
	err := c.Signup(ctx)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	resp, ok := httpErr.Message.(*corecontroller.ErrorResponse)
	require.True(t, ok)
	details, ok := resp.Details.([]corecontroller.ValidationError)
	require.True(t, ok)

	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"username", "password"}, fields)
}
