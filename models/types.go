package models

import "time"

// Event visibility constants
const (
	VisibilityDraft     = "draft"
	VisibilityPublished = "published"
)

// Contact submission status constants
const (
	ContactUnread  = "unread"
	ContactRead    = "read"
	ContactReplied = "replied"
)

// Media categories, derived from the MIME type
const (
	MediaImage    = "image"
	MediaVideo    = "video"
	MediaDocument = "document"
)

const RoleAdmin = "admin"

// Domain types

// Event is the public single-locale view of an event
type Event struct {
	ID              int64     `json:"id"`
	Slug            string    `json:"slug"`
	Locale          string    `json:"locale"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	EventDate       string    `json:"event_date"`
	EventTime       string    `json:"event_time,omitempty"`
	Location        string    `json:"location"`
	Tags            []string  `json:"tags"`
	MediaURLs       []string  `json:"media_urls"`
	VideoURLs       []string  `json:"video_urls"`
	DocumentURLs    []string  `json:"document_urls"`
	FeaturedImage   string    `json:"featured_image,omitempty"`
	Visibility      string    `json:"visibility"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (e Event) Published() bool {
	return e.Visibility == VisibilityPublished
}

// EventTranslation holds the per-locale text of an event
type EventTranslation struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

// AdminEvent carries both translations for the admin panel
type AdminEvent struct {
	ID            int64            `json:"id"`
	Slug          string           `json:"slug"`
	EventDate     string           `json:"event_date"`
	EventTime     string           `json:"event_time,omitempty"`
	Location      string           `json:"location"`
	Tags          []string         `json:"tags"`
	MediaURLs     []string         `json:"media_urls"`
	VideoURLs     []string         `json:"video_urls"`
	DocumentURLs  []string         `json:"document_urls"`
	FeaturedImage string           `json:"featured_image,omitempty"`
	Visibility    string           `json:"visibility"`
	Published     bool             `json:"published"`
	Hi            EventTranslation `json:"hi"`
	En            EventTranslation `json:"en"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type ContactSubmission struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	Subject           string    `json:"subject"`
	Message           string    `json:"message"`
	VolunteerInterest bool      `json:"volunteer_interest"`
	Locale            string    `json:"locale"`
	Status            string    `json:"status"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

type MediaFile struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	URL          string    `json:"url"`
	Bucket       string    `json:"bucket"`
	ObjectKey    string    `json:"object_key"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Category returns image, video or document for the stored MIME type
func (m MediaFile) Category() string {
	return MediaCategory(m.FileType)
}

type AdminUser struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

type DashboardStats struct {
	TotalEvents        int `json:"total_events"`
	PublishedEvents    int `json:"published_events"`
	DraftEvents        int `json:"draft_events"`
	UpcomingEvents     int `json:"upcoming_events"`
	TotalMedia         int `json:"total_media"`
	ContactSubmissions int `json:"contact_submissions"`
	UnreadContacts     int `json:"unread_contacts"`
}

// Request types

// EventInput is the admin create/update body
type EventInput struct {
	Slug              string   `json:"slug"`
	EventDate         string   `json:"event_date"`
	EventTime         string   `json:"event_time"`
	Location          string   `json:"location"`
	Tags              []string `json:"tags"`
	MediaURLs         []string `json:"media_urls"`
	VideoURLs         []string `json:"video_urls"`
	DocumentURLs      []string `json:"document_urls"`
	FeaturedImage     string   `json:"featured_image"`
	Published         bool     `json:"published"`
	TitleHi           string   `json:"title_hi"`
	TitleEn           string   `json:"title_en"`
	DescriptionHi     string   `json:"description_hi"`
	DescriptionEn     string   `json:"description_en"`
	MetaTitleHi       string   `json:"meta_title_hi"`
	MetaTitleEn       string   `json:"meta_title_en"`
	MetaDescriptionHi string   `json:"meta_description_hi"`
	MetaDescriptionEn string   `json:"meta_description_en"`
}

// Visibility maps the published flag onto the stored visibility
func (in EventInput) Visibility() string {
	if in.Published {
		return VisibilityPublished
	}
	return VisibilityDraft
}

// Translation returns the per-locale text of the input
func (in EventInput) Translation(locale string) EventTranslation {
	if locale == "en" {
		return EventTranslation{
			Title:           in.TitleEn,
			Description:     in.DescriptionEn,
			MetaTitle:       in.MetaTitleEn,
			MetaDescription: in.MetaDescriptionEn,
		}
	}
	return EventTranslation{
		Title:           in.TitleHi,
		Description:     in.DescriptionHi,
		MetaTitle:       in.MetaTitleHi,
		MetaDescription: in.MetaDescriptionHi,
	}
}

type PublishEventRequest struct {
	Published bool `json:"published"`
}

type ContactRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Subject           string `json:"subject"`
	Message           string `json:"message"`
	VolunteerInterest bool   `json:"volunteer_interest"`
	Locale            string `json:"locale"`
}

type UpdateContactStatusRequest struct {
	Status string `json:"status"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response types

type EventListResponse struct {
	Events  []Event `json:"events"`
	Total   int     `json:"total"`
	HasMore bool    `json:"has_more"`
}

type CreateEventResponse struct {
	ID      int64  `json:"id"`
	Slug    string `json:"slug"`
	Message string `json:"message"`
}

type ContactResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type SessionResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SeedResponse struct {
	Events   int    `json:"events"`
	Media    int    `json:"media"`
	Contacts int    `json:"contacts"`
	Settings int    `json:"settings"`
	Message  string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
