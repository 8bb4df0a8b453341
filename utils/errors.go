package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// CreateError writes the standard response envelope for a failed request:
// 4xx carries status "fail", 5xx carries status "error".
func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	status := "fail"
	if statusCode >= iris.StatusInternalServerError {
		status = "error"
	}
	ctx.StopWithJSON(statusCode, iris.Map{
		"status":  status,
		"message": detail,
	})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(
		iris.StatusInternalServerError,
		"Internal Server Error",
		"Something went wrong", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(
		iris.StatusNotFound,
		"Not Found",
		"Resource not found", ctx)
}

func CreateForbidden(ctx iris.Context) {
	CreateError(
		iris.StatusForbidden,
		"Forbidden",
		"You do not have permission to perform this action", ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateError(
		iris.StatusBadRequest,
		"Conflicting Credentials",
		"email already exists", ctx)
}

// HandleValidationErrors maps ReadJSON/validator failures onto a 400 that names
// the offending fields.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(errs))
		for _, fieldErr := range errs {
			fields = append(fields, fieldErr.Field())
		}
		CreateError(
			iris.StatusBadRequest,
			"Validation Error",
			"Invalid value for: "+strings.Join(fields, ", "), ctx)
		return
	}

	CreateError(
		iris.StatusBadRequest,
		"Validation Error",
		"Invalid request payload", ctx)
}
