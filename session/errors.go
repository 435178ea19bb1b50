package session

import (
	"net/http"

	"github.com/galaxylms/backend/srvcerror"
)

const ErrCodeAdminAlreadyExists = "admin_already_exists"

func newErrAdminAlreadyExists() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAdminAlreadyExists,
		"an admin account has already been set up",
	).SetHttpStatusCode(http.StatusConflict)
}
