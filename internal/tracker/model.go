package tracker

// Recognized categories. Anything else is stored as given but only counted under "all".
const (
	CategoryApplied   = "applied"
	CategoryWishlist  = "wishlist"
	CategoryInterview = "interview"
	CategoryOffer     = "offer"
	CategoryRejected  = "rejected"
)

// List filters that are not categories.
const (
	FilterAll      = "all"
	FilterInactive = "inactive"
)

var Categories = []string{
	CategoryApplied,
	CategoryWishlist,
	CategoryInterview,
	CategoryOffer,
	CategoryRejected,
}

// Job is one tracked application. Dates are calendar dates in DateLayout.
type Job struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"type:text;not null;default:''" json:"title"`
	Company      string `gorm:"type:text;not null;default:''" json:"company"`
	Notes        string `gorm:"type:text;not null;default:''" json:"notes"`
	Link         string `gorm:"type:text;not null;default:''" json:"link"`
	DateCreated  string `gorm:"type:text;not null" json:"date_created"`
	LastModified string `gorm:"type:text;not null" json:"last_modified"`
	Active       bool   `gorm:"not null" json:"active"`
	UserID       uint64 `gorm:"index;not null" json:"user_id"`
	Category     string `gorm:"type:text;not null" json:"category"`
}

func (Job) TableName() string { return "job" }

// JobInput is the payload for a new job.
type JobInput struct {
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Notes    string  `json:"notes"`
	Link     string  `json:"link"`
	Category *string `json:"category"`
}

// JobUpdate holds the fields to change. Nil fields are left alone.
// Active and LastModified are always overwritten by UpdateJob.
type JobUpdate struct {
	Title        *string `json:"title,omitempty"`
	Company      *string `json:"company,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Link         *string `json:"link,omitempty"`
	Category     *string `json:"category,omitempty"`
	Active       *bool   `json:"active,omitempty"`
	LastModified *string `json:"last_modified,omitempty"`
}

// Caller is who a request claims to come from.
type Caller struct {
	Username string
	SignedIn bool
}
