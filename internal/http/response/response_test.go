package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videonest/backend/internal/lib/apperror"
)

func TestOK(t *testing.T) {
	resp := OK(http.StatusCreated, map[string]string{"username": "ann"}, "user registered successfully")

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, resp.Success)
	assert.Equal(t, "user registered successfully", resp.Message)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"statusCode": 201,
		"data": {"username": "ann"},
		"message": "user registered successfully",
		"success": true
	}`, string(body))
}

func TestErr_AlwaysCarriesErrorsField(t *testing.T) {
	resp := Err(apperror.Unauthorized("invalid access token"))

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"statusCode": 401,
		"data": null,
		"message": "invalid access token",
		"success": false,
		"errors": []
	}`, string(body))
}

func TestRenderError_UnknownErrorBecomes500(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	RenderError(w, r, errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestValidationError(t *testing.T) {
	type req struct {
		Fullname string `validate:"required"`
		Email    string `validate:"required,email"`
	}

	err := validator.New().Struct(req{Email: "not-an-email"})
	require.Error(t, err)

	appErr := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, appErr.Errs, "field Fullname is a required field")
	assert.Contains(t, appErr.Errs, "field Email must be a valid email")
}
