// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/danielhkuo/vanarsena/i18n"
	"github.com/danielhkuo/vanarsena/models"
)

// parseID reads a positive integer {id} path value
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// fieldMessage renders a validation error in loc. Admin callers pass
// English and get the field name prefixed.
func fieldMessage(loc i18n.Locale, err error) string {
	var fe *models.FieldError
	if !errors.As(err, &fe) {
		return err.Error()
	}
	msg := i18n.T(loc, fe.Key)
	if loc == i18n.English {
		return fe.Field + ": " + msg
	}
	return msg
}
