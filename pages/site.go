// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pages

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/i18n"
	"github.com/danielhkuo/vanarsena/models"
	"github.com/danielhkuo/vanarsena/seo"
)

const (
	homeEventCount = 3
	// listingLimit is the page size of the events listing
	listingLimit = 100
)

type homePage struct {
	page
	Upcoming []models.Event
	Recent   []models.Event
}

// Home handles GET /{locale}
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	loc, ok := p.locale(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	upcoming, _, err := db.ListPublishedEvents(ctx, p.db, db.EventQuery{
		Locale: loc.String(), Type: db.EventsUpcoming, Limit: homeEventCount,
	})
	if err != nil {
		p.serverError(w, r, loc, err)
		return
	}
	recent, _, err := db.ListPublishedEvents(ctx, p.db, db.EventQuery{
		Locale: loc.String(), Type: db.EventsPast, Limit: homeEventCount,
	})
	if err != nil {
		p.serverError(w, r, loc, err)
		return
	}

	data := homePage{page: p.newPage(r, loc, "/"), Upcoming: upcoming, Recent: recent}
	data.Meta = seo.PageMeta(data.site, loc, "/", i18n.T(loc, "site.title"), i18n.T(loc, "site.description"))
	p.views.render(w, http.StatusOK, "home", data)
}

// About handles GET /{locale}/about
func (p *Pages) About(w http.ResponseWriter, r *http.Request) {
	loc, ok := p.locale(w, r)
	if !ok {
		return
	}

	data := p.newPage(r, loc, "/about")
	data.Meta = seo.PageMeta(data.site, loc, "/about", i18n.T(loc, "about.title"), i18n.T(loc, "about.subtitle"))
	p.views.render(w, http.StatusOK, "about", data)
}

type eventsPage struct {
	page
	Categories []string
	Category   string
	Upcoming   []models.Event
	Past       []models.Event
	// PrevURL and NextURL link neighbouring pages; empty when absent
	PrevURL string
	NextURL string
}

// Events handles GET /{locale}/events?category=&page=
func (p *Pages) Events(w http.ResponseWriter, r *http.Request) {
	loc, ok := p.locale(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	pageNum, err := strconv.Atoi(query.Get("page"))
	if err != nil || pageNum < 1 {
		pageNum = 1
	}

	all, total, err := db.ListPublishedEvents(r.Context(), p.db, db.EventQuery{
		Locale: loc.String(), Type: db.EventsAll, Limit: listingLimit, Offset: (pageNum - 1) * listingLimit,
	})
	if err != nil {
		p.serverError(w, r, loc, err)
		return
	}

	category := strings.TrimSpace(query.Get("category"))
	data := eventsPage{page: p.newPage(r, loc, "/events"), Categories: categories(all), Category: category}
	if pageNum > 1 {
		data.PrevURL = listingURL(loc, pageNum-1, category)
	}
	if pageNum*listingLimit < total {
		data.NextURL = listingURL(loc, pageNum+1, category)
	}

	// all is newest first; upcoming events read soonest first
	today := p.now().Format(time.DateOnly)
	for _, e := range all {
		if category != "" && !slices.Contains(e.Tags, category) {
			continue
		}
		if e.EventDate >= today {
			data.Upcoming = append([]models.Event{e}, data.Upcoming...)
		} else {
			data.Past = append(data.Past, e)
		}
	}

	data.Meta = seo.PageMeta(data.site, loc, "/events", i18n.T(loc, "events.title"), i18n.T(loc, "events.description"))
	data.Meta.StructuredData = seo.EventListStructuredData(data.site, loc, append(slices.Clone(data.Upcoming), data.Past...))
	p.views.render(w, http.StatusOK, "events", data)
}

// listingURL addresses page n of the events listing
func listingURL(loc i18n.Locale, n int, category string) string {
	v := url.Values{}
	if category != "" {
		v.Set("category", category)
	}
	if n > 1 {
		v.Set("page", strconv.Itoa(n))
	}
	u := i18n.LocalizedPath(loc, "/events")
	if len(v) > 0 {
		u += "?" + v.Encode()
	}
	return u
}

// categories returns the distinct tags of events in first-seen order
func categories(events []models.Event) []string {
	out := []string{}
	for _, e := range events {
		for _, tag := range e.Tags {
			if !slices.Contains(out, tag) {
				out = append(out, tag)
			}
		}
	}
	return out
}

type eventPage struct {
	page
	Event    models.Event
	Upcoming bool
}

// Event handles GET /{locale}/events/{slug}
func (p *Pages) Event(w http.ResponseWriter, r *http.Request) {
	loc, ok := p.locale(w, r)
	if !ok {
		return
	}

	slug := r.PathValue("slug")
	event, err := db.GetPublishedEventBySlug(r.Context(), p.db, slug, loc.String())
	if errors.Is(err, db.ErrNotFound) {
		p.NotFound(w, r)
		return
	}
	if err != nil {
		p.serverError(w, r, loc, err)
		return
	}

	data := eventPage{
		page:     p.newPage(r, loc, seo.EventPath(slug)),
		Event:    *event,
		Upcoming: event.EventDate >= p.now().Format(time.DateOnly),
	}
	data.Meta = seo.EventMeta(data.site, loc, *event)
	p.views.render(w, http.StatusOK, "event", data)
}

type contactPage struct {
	page
	Form    models.ContactRequest
	Field   string
	Error   string
	Success bool
}

// Contact handles GET /{locale}/contact
func (p *Pages) Contact(w http.ResponseWriter, r *http.Request) {
	loc, ok := p.locale(w, r)
	if !ok {
		return
	}

	data := contactPage{page: p.newPage(r, loc, "/contact"), Success: r.URL.Query().Get("sent") == "1"}
	data.Meta = seo.PageMeta(data.site, loc, "/contact", i18n.T(loc, "contact.title"), i18n.T(loc, "contact.subtitle"))
	p.views.render(w, http.StatusOK, "contact", data)
}

// SubmitContact handles the POST /{locale}/contact form. Success
// redirects back to the page so a reload does not resubmit.
func (p *Pages) SubmitContact(w http.ResponseWriter, r *http.Request) {
	loc, ok := p.locale(w, r)
	if !ok {
		return
	}

	data := contactPage{page: p.newPage(r, loc, "/contact")}
	data.Meta = seo.PageMeta(data.site, loc, "/contact", i18n.T(loc, "contact.title"), i18n.T(loc, "contact.subtitle"))

	if err := r.ParseForm(); err != nil {
		data.Error = i18n.T(loc, "contact.form.errorMessage")
		p.views.render(w, http.StatusBadRequest, "contact", data)
		return
	}
	data.Form = models.ContactRequest{
		Name:              r.PostForm.Get("name"),
		Email:             r.PostForm.Get("email"),
		Phone:             r.PostForm.Get("phone"),
		Subject:           r.PostForm.Get("subject"),
		Message:           r.PostForm.Get("message"),
		VolunteerInterest: r.PostForm.Get("volunteer_interest") != "",
	}

	_, err := p.contacts.Accept(r.Context(), data.Form, loc)
	var fe *models.FieldError
	switch {
	case errors.As(err, &fe):
		data.Field = fe.Field
		data.Error = i18n.T(loc, fe.Key)
		p.views.render(w, http.StatusBadRequest, "contact", data)
		return
	case err != nil:
		p.logError(r, "failed to save contact form", err)
		data.Error = i18n.T(loc, "contact.form.errorMessage")
		p.views.render(w, http.StatusInternalServerError, "contact", data)
		return
	}

	http.Redirect(w, r, i18n.LocalizedPath(loc, "/contact")+"?sent=1", http.StatusSeeOther)
}
