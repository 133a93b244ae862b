package admin

import (
	"context"
	"encoding/csv"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jszwec/csvutil"

	apperrors "github.com/travelagency/admin/internal/platform/errors"
	"github.com/travelagency/admin/internal/platform/timeouts"
	"github.com/travelagency/admin/internal/services/admin/routepath"
	"github.com/travelagency/admin/internal/services/admin/storage"
	"github.com/travelagency/admin/internal/services/admin/templates"
	"github.com/travelagency/admin/internal/services/shared/htmx"
)

// userJoinedLayout formats the joined date in the users table.
const userJoinedLayout = "Jan 02, 2006"

func (h *Handler) listUsers(ctx context.Context) ([]storage.User, error) {
	if h.store == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.DashboardQuery)
	defer cancel()
	return h.store.ListUsers(ctx)
}

func (h *Handler) handleUsersPage(w http.ResponseWriter, r *http.Request) {
	users, err := h.listUsers(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list users", "error", err)
		h.renderError(w, r, err)
		return
	}
	loc, lang := h.localizer(w, r)
	view := templates.UsersView{
		PageContext: h.pageContext(lang, loc, r, "users.title"),
		Rows:        userRows(users),
		ExportURL:   routepath.UsersExport,
	}
	htmx.RenderPage(w, r, nil, templates.UsersPage(view), htmx.TitleTag(view.Title()))
}

func (h *Handler) handleUsersExport(w http.ResponseWriter, r *http.Request) {
	users, err := h.listUsers(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "export users", "error", err)
		http.Error(w, http.StatusText(apperrors.CodeOf(err).HTTPStatus()), apperrors.CodeOf(err).HTTPStatus())
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)

	writer := csv.NewWriter(w)
	enc := csvutil.NewEncoder(writer)
	if err := enc.EncodeHeader(storage.User{}); err != nil {
		slog.ErrorContext(r.Context(), "encode users header", "error", err)
		return
	}
	for _, user := range users {
		if err := enc.Encode(user); err != nil {
			slog.ErrorContext(r.Context(), "encode user row", "user_id", user.ID, "error", err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.ErrorContext(r.Context(), "flush users csv", "error", err)
	}
}

func userRows(users []storage.User) []templates.UserRow {
	rows := make([]templates.UserRow, 0, len(users))
	for _, user := range users {
		rows = append(rows, templates.UserRow{
			Name:     user.Name,
			Email:    user.Email,
			ImageURL: user.ImageURL,
			Joined:   user.JoinedAt.Format(userJoinedLayout),
			Trips:    user.ItineraryCount,
			Status:   user.Status,
			IsAdmin:  user.Status == storage.StatusAdmin,
			Initials: initials(user.Name),
		})
	}
	return rows
}

func initials(name string) string {
	letters := make([]rune, 0, 2)
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			letters = append(letters, r)
			break
		}
		if len(letters) == 2 {
			break
		}
	}
	return strings.ToUpper(string(letters))
}
