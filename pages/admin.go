// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pages

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/vanarsena/auth"
	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/middleware"
	"github.com/danielhkuo/vanarsena/models"
)

const dashboardPath = "/admin/dashboard"

// adminPage is the data every admin template receives. The admin panel
// is English only.
type adminPage struct {
	Title  string
	Active string
	Admin  auth.Session
	Filter string
}

func newAdminPage(r *http.Request, title, active string) adminPage {
	admin, _ := middleware.AdminFromContext(r.Context())
	return adminPage{Title: title, Active: active, Admin: admin}
}

func (p *Pages) adminError(w http.ResponseWriter, r *http.Request, err error) {
	p.logError(r, "failed to load admin page", err)
	http.Error(w, "Failed to load page", http.StatusInternalServerError)
}

type loginPage struct {
	adminPage
	Callback string
}

// Login handles GET /admin/login. Admins with a valid session skip the
// form.
func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	callback := middleware.SafeCallback(r.URL.Query().Get("callbackUrl"), dashboardPath)
	if _, ok := middleware.Authenticate(r, p.signer, p.revocations); ok {
		http.Redirect(w, r, callback, http.StatusSeeOther)
		return
	}
	p.views.render(w, http.StatusOK, "admin/login", loginPage{
		adminPage: adminPage{Title: "Sign in"},
		Callback:  callback,
	})
}

// AdminHome handles GET /admin
func (p *Pages) AdminHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

type dashboardPage struct {
	adminPage
	Stats    models.DashboardStats
	Contacts []models.ContactSubmission
}

// recentContacts is the number of unread messages shown on the dashboard
const recentContacts = 5

func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := db.GetDashboardStats(r.Context(), p.db)
	if err != nil {
		p.adminError(w, r, err)
		return
	}
	unread, err := db.ListContactSubmissions(r.Context(), p.db, models.ContactUnread)
	if err != nil {
		p.adminError(w, r, err)
		return
	}
	if len(unread) > recentContacts {
		unread = unread[:recentContacts]
	}

	p.views.render(w, http.StatusOK, "admin/dashboard", dashboardPage{
		adminPage: newAdminPage(r, "Dashboard", "dashboard"),
		Stats:     stats,
		Contacts:  unread,
	})
}

type adminEventsPage struct {
	adminPage
	Events []models.AdminEvent
}

// AdminEvents handles GET /admin/events?filter=
func (p *Pages) AdminEvents(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter != models.VisibilityPublished && filter != models.VisibilityDraft {
		filter = "all"
	}

	events, err := db.ListAdminEvents(r.Context(), p.db, filter)
	if err != nil {
		p.adminError(w, r, err)
		return
	}

	data := adminEventsPage{adminPage: newAdminPage(r, "Events", "events"), Events: events}
	data.Filter = filter
	p.views.render(w, http.StatusOK, "admin/events", data)
}

type eventFormPage struct {
	adminPage
	Event models.AdminEvent
	IsNew bool
}

// NewEvent handles GET /admin/events/new
func (p *Pages) NewEvent(w http.ResponseWriter, r *http.Request) {
	p.views.render(w, http.StatusOK, "admin/event_form", eventFormPage{
		adminPage: newAdminPage(r, "New event", "events"),
		IsNew:     true,
	})
}

// EditEvent handles GET /admin/events/{id}/edit
func (p *Pages) EditEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	event, err := db.GetAdminEvent(r.Context(), p.db, id)
	if errors.Is(err, db.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		p.adminError(w, r, err)
		return
	}

	p.views.render(w, http.StatusOK, "admin/event_form", eventFormPage{
		adminPage: newAdminPage(r, "Edit event", "events"),
		Event:     *event,
	})
}

type mediaPage struct {
	adminPage
	Files     []models.MediaFile
	Enabled   bool
	MaxUpload int64
}

// Media handles GET /admin/media?filter=
func (p *Pages) Media(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	switch filter {
	case models.MediaImage, models.MediaVideo, models.MediaDocument:
	default:
		filter = "all"
	}

	files, err := db.ListMediaFiles(r.Context(), p.db, filter)
	if err != nil {
		p.adminError(w, r, err)
		return
	}

	data := mediaPage{
		adminPage: newAdminPage(r, "Media", "media"),
		Files:     files,
		Enabled:   p.mediaEnabled,
		MaxUpload: p.maxUpload,
	}
	data.Filter = filter
	p.views.render(w, http.StatusOK, "admin/media", data)
}

type contactsPage struct {
	adminPage
	Contacts []models.ContactSubmission
}

// Contacts handles GET /admin/contacts?status=
func (p *Pages) Contacts(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if !models.IsValidContactStatus(status) {
		status = ""
	}

	contacts, err := db.ListContactSubmissions(r.Context(), p.db, status)
	if err != nil {
		p.adminError(w, r, err)
		return
	}

	data := contactsPage{adminPage: newAdminPage(r, "Contact messages", "contacts"), Contacts: contacts}
	data.Filter = status
	p.views.render(w, http.StatusOK, "admin/contacts", data)
}

type settingsPage struct {
	adminPage
	Settings models.SiteSettings
}

// Settings handles GET /admin/settings
func (p *Pages) Settings(w http.ResponseWriter, r *http.Request) {
	stored, err := db.GetSettings(r.Context(), p.db)
	if err != nil {
		p.adminError(w, r, err)
		return
	}
	p.views.render(w, http.StatusOK, "admin/settings", settingsPage{
		adminPage: newAdminPage(r, "Settings", "settings"),
		Settings:  models.SettingsFromMap(stored),
	})
}
