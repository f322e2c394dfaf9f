package controllers

import (
	"net/http"

	"github.com/angelmondragon/keepers-bakery/api/responses"
	"github.com/angelmondragon/keepers-bakery/internal/admin"
)

// AdminNavigation lists the admin side-nav sections, flagging the one that
// matches the "path" query parameter.
func AdminNavigation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, admin.Navigation(r.URL.Query().Get("path")))
	}
}
