package domain

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

const DefaultSiteConfigID = "default"

type SiteConfig struct {
	ID                string            `json:"id"`
	SiteName          string            `json:"site_name"`
	Description       string            `json:"description"`
	Logo              string            `json:"logo"`
	PrimaryColor      string            `json:"primary_color"`
	AccentColor       string            `json:"accent_color"`
	FontFamily        string            `json:"font_family"`
	Email             *string           `json:"email"`
	Phone             *string           `json:"phone"`
	Address           *string           `json:"address"`
	SocialLinks       map[string]string `json:"social_links"`
	MetaTitle         *string           `json:"meta_title"`
	MetaDescription   *string           `json:"meta_description"`
	AllowRegistration bool              `json:"allow_registration"`
	RequireApproval   bool              `json:"require_approval"`
	CreatedAt         time.Time         `json:"created_at,omitzero"`
	UpdatedAt         time.Time         `json:"updated_at,omitzero"`
}

type ColorPreset struct {
	Name    string `json:"name"`
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

var FontOptions = []string{
	"Inter",
	"Roboto",
	"Open Sans",
	"Lato",
	"Montserrat",
	"Poppins",
	"Arial",
	"Georgia",
}

var ColorPresets = []ColorPreset{
	{Name: "Blue & Purple", Primary: "#3b82f6", Accent: "#8b5cf6"},
	{Name: "Green & Teal", Primary: "#10b981", Accent: "#14b8a6"},
	{Name: "Red & Orange", Primary: "#ef4444", Accent: "#f97316"},
	{Name: "Purple & Pink", Primary: "#8b5cf6", Accent: "#ec4899"},
	{Name: "Indigo & Blue", Primary: "#6366f1", Accent: "#3b82f6"},
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// DefaultSiteConfig is inserted the first time settings are requested.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		ID:                DefaultSiteConfigID,
		SiteName:          "Entrepreneur Marketplace",
		Description:       "A marketplace for entrepreneurs to sell their products",
		Logo:              "/logo.png",
		PrimaryColor:      "#3b82f6",
		AccentColor:       "#8b5cf6",
		FontFamily:        "Inter",
		SocialLinks:       map[string]string{},
		AllowRegistration: true,
		RequireApproval:   false,
	}
}

func FindColorPreset(name string) (ColorPreset, bool) {
	for _, p := range ColorPresets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return ColorPreset{}, false
}

func (c SiteConfig) Validate() error {
	switch {
	case strings.TrimSpace(c.SiteName) == "":
		return invalidSettings("site_name is required")
	case !hexColor.MatchString(c.PrimaryColor):
		return invalidSettings("primary_color must be a hex colour")
	case !hexColor.MatchString(c.AccentColor):
		return invalidSettings("accent_color must be a hex colour")
	case !slices.Contains(FontOptions, c.FontFamily):
		return invalidSettings("unsupported font_family " + c.FontFamily)
	}
	return nil
}

func (c SiteConfig) WithDefaults() SiteConfig {
	if c.ID == "" {
		c.ID = DefaultSiteConfigID
	}
	if c.SocialLinks == nil {
		c.SocialLinks = map[string]string{}
	}
	return c
}
