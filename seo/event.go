// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seo

import (
	"strings"

	"github.com/danielhkuo/vanarsena/i18n"
	"github.com/danielhkuo/vanarsena/models"
)

const organizer = "VanarSena"

// EventPath is the unlocalized path of an event page
func EventPath(slug string) string {
	return "/events/" + slug
}

// EventTitle prefers the meta title over the title
func EventTitle(e models.Event) string {
	if e.MetaTitle != "" {
		return e.MetaTitle
	}
	return e.Title
}

// EventDescription prefers the meta description, then the first 160
// characters of the description text, then a generic invitation.
func EventDescription(loc i18n.Locale, e models.Event) string {
	if e.MetaDescription != "" {
		return e.MetaDescription
	}
	if text := StripHTML(e.Description); text != "" {
		return Truncate(text, MetaDescriptionLen)
	}
	return i18n.T(loc, "events.joinUs", e.Title, i18n.FormatDate(loc, e.EventDate))
}

// StartDate renders the ISO start of an event, with time when known
func StartDate(e models.Event) string {
	if e.EventTime == "" {
		return e.EventDate
	}
	return e.EventDate + "T" + e.EventTime + ":00"
}

// EventMeta builds the page metadata of an event detail page
func EventMeta(site Site, loc i18n.Locale, e models.Event) Meta {
	path := EventPath(e.Slug)
	title := EventTitle(e)

	m := Meta{
		Title:         title,
		Description:   EventDescription(loc, e),
		Canonical:     site.URL(i18n.LocalizedPath(loc, path)),
		Alternates:    Alternates(site, path),
		SiteName:      i18n.T(loc, "site.organization"),
		Locale:        loc.OpenGraph(),
		OGType:        "article",
		Image:         site.AbsoluteURL(e.FeaturedImage),
		ImageAlt:      e.Title,
		Tags:          e.Tags,
		PublishedTime: e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		ModifiedTime:  e.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		TwitterCard:   "summary_large_image",
		Robots:        "noindex, nofollow",
		Other: []Property{
			{"article:author", organizer},
			{"event:start_time", StartDate(e)},
			{"event:location", e.Location},
		},
		StructuredData: EventStructuredData(site, loc, e),
	}
	if e.Published() {
		m.Robots = "index, follow"
	}
	return m
}

// schema.org nodes

type Place struct {
	Type    string `json:"@type"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type Organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type Offer struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	Availability  string `json:"availability"`
	URL           string `json:"url,omitempty"`
}

// Event is a schema.org Event node
type Event struct {
	Context             string       `json:"@context,omitempty"`
	Type                string       `json:"@type"`
	Position            int          `json:"position,omitempty"`
	Name                string       `json:"name"`
	Description         string       `json:"description,omitempty"`
	StartDate           string       `json:"startDate"`
	InLanguage          string       `json:"inLanguage,omitempty"`
	Location            Place        `json:"location"`
	Organizer           Organization `json:"organizer"`
	Image               string       `json:"image,omitempty"`
	URL                 string       `json:"url"`
	EventStatus         string       `json:"eventStatus,omitempty"`
	EventAttendanceMode string       `json:"eventAttendanceMode,omitempty"`
	Offers              *Offer       `json:"offers,omitempty"`
	Keywords            string       `json:"keywords,omitempty"`
}

// ItemList is a schema.org ItemList of events
type ItemList struct {
	Context         string  `json:"@context"`
	Type            string  `json:"@type"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	URL             string  `json:"url"`
	NumberOfItems   int     `json:"numberOfItems"`
	ItemListElement []Event `json:"itemListElement"`
}

// EventStructuredData builds the JSON-LD Event for a detail page
func EventStructuredData(site Site, loc i18n.Locale, e models.Event) Event {
	url := site.URL(i18n.LocalizedPath(loc, EventPath(e.Slug)))
	keywords := strings.Join(e.Tags, ", ")

	return Event{
		Context:     "https://schema.org",
		Type:        "Event",
		Name:        e.Title,
		Description: Truncate(StripHTML(e.Description), StructuredDescriptionLen),
		StartDate:   StartDate(e),
		InLanguage:  loc.String(),
		Location: Place{
			Type:    "Place",
			Name:    e.Location,
			Address: e.Location,
		},
		Organizer: Organization{
			Type: "Organization",
			Name: organizer,
			URL:  site.URL(""),
		},
		Image:               site.AbsoluteURL(e.FeaturedImage),
		URL:                 url,
		EventStatus:         "https://schema.org/EventScheduled",
		EventAttendanceMode: "https://schema.org/OfflineEventAttendanceMode",
		Offers: &Offer{
			Type:          "Offer",
			Price:         "0",
			PriceCurrency: "INR",
			Availability:  "https://schema.org/InStock",
			URL:           url,
		},
		Keywords: keywords,
	}
}

// maxListItems caps the events embedded in the listing JSON-LD
const maxListItems = 10

// EventListStructuredData builds the JSON-LD ItemList for the events page
func EventListStructuredData(site Site, loc i18n.Locale, events []models.Event) ItemList {
	list := ItemList{
		Context:         "https://schema.org",
		Type:            "ItemList",
		Name:            i18n.T(loc, "events.title") + " | " + organizer,
		Description:     i18n.T(loc, "events.description"),
		URL:             site.URL(i18n.LocalizedPath(loc, "/events")),
		NumberOfItems:   len(events),
		ItemListElement: []Event{},
	}

	for i, e := range events {
		if i == maxListItems {
			break
		}
		list.ItemListElement = append(list.ItemListElement, Event{
			Type:      "Event",
			Position:  i + 1,
			Name:      e.Title,
			StartDate: StartDate(e),
			Location:  Place{Type: "Place", Name: e.Location},
			Organizer: Organization{Type: "Organization", Name: organizer},
			Image:     site.AbsoluteURL(e.FeaturedImage),
			URL:       site.URL(i18n.LocalizedPath(loc, EventPath(e.Slug))),
		})
	}
	return list
}
