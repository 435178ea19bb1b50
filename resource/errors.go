package resource

import (
	"net/http"

	"github.com/galaxylms/backend/srvcerror"
)

const ErrCodeSignInRequired = "sign_in_required"

func newErrSignInRequired() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSignInRequired,
		"please sign in before uploading a resource",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

const ErrCodeMissingFields = "missing_fields"

func newErrMissingFields() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingFields,
		"please fill in all fields and select a file",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeResourceNotFound = "resource_not_found"

func newErrResourceNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeResourceNotFound,
		"resource not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeResourceFileMissing = "resource_file_missing"

func newErrResourceFileMissing() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeResourceFileMissing,
		"the file behind this resource is no longer available",
	).SetHttpStatusCode(http.StatusNotFound)
}
