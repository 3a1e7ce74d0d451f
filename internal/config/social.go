package config

// Platform identifies a social network profile slot.
type Platform string

const (
	PlatformFacebook   Platform = "facebookPageUrl"
	PlatformTwitter    Platform = "twitterUrl"
	PlatformInstagram  Platform = "instagramUrl"
	PlatformPinterest  Platform = "pinterestUrl"
	PlatformYouTube    Platform = "youtubeUrl"
	PlatformLinkedIn   Platform = "linkedinUrl"
	PlatformTumblr     Platform = "tumblrUrl"
	PlatformYelp       Platform = "yelpPageUrl"
	PlatformSoundCloud Platform = "soundCloudUrl"
	PlatformWikipedia  Platform = "wikipediaUrl"
	PlatformMySpace    Platform = "myspaceUrl"
)

// Platforms lists every platform in declared order. Resolved profile lists keep this order.
var Platforms = []Platform{
	PlatformFacebook,
	PlatformTwitter,
	PlatformInstagram,
	PlatformPinterest,
	PlatformYouTube,
	PlatformLinkedIn,
	PlatformTumblr,
	PlatformYelp,
	PlatformSoundCloud,
	PlatformWikipedia,
	PlatformMySpace,
}

// Known reports whether p is a declared platform.
func (p Platform) Known() bool {
	for _, known := range Platforms {
		if known == p {
			return true
		}
	}
	return false
}

// SocialConfig holds the site-wide social profile settings.
type SocialConfig struct {
	SameUsername SameUsernameConfig `yaml:"same_username"`
	Profiles     ProfileURLs        `yaml:"profiles"`
	// Per-author toggles: when enabled, an author's own profile replaces the site profile
	// in that author's sameAs list; when disabled the platform is left out for authors.
	FacebookShowAuthor bool `yaml:"facebook_show_author"`
	TwitterShowAuthor  bool `yaml:"twitter_show_author"`
}

// SameUsernameConfig expands a single username across the included platforms.
type SameUsernameConfig struct {
	Enabled  bool       `yaml:"enabled"`
	Username string     `yaml:"username,omitempty" validate:"required_if=Enabled true"`
	Included []Platform `yaml:"included,omitempty" validate:"dive,platform"`
}

// ProfileURLs is the explicit per-platform profile configuration.
type ProfileURLs struct {
	FacebookPageURL string `yaml:"facebook_page_url,omitempty" validate:"omitempty,url"`
	TwitterURL      string `yaml:"twitter_url,omitempty" validate:"omitempty,url"`
	InstagramURL    string `yaml:"instagram_url,omitempty" validate:"omitempty,url"`
	PinterestURL    string `yaml:"pinterest_url,omitempty" validate:"omitempty,url"`
	YouTubeURL      string `yaml:"youtube_url,omitempty" validate:"omitempty,url"`
	LinkedInURL     string `yaml:"linkedin_url,omitempty" validate:"omitempty,url"`
	TumblrURL       string `yaml:"tumblr_url,omitempty" validate:"omitempty,url"`
	YelpPageURL     string `yaml:"yelp_page_url,omitempty" validate:"omitempty,url"`
	SoundCloudURL   string `yaml:"soundcloud_url,omitempty" validate:"omitempty,url"`
	WikipediaURL    string `yaml:"wikipedia_url,omitempty" validate:"omitempty,url"`
	MySpaceURL      string `yaml:"myspace_url,omitempty" validate:"omitempty,url"`
}

// URL returns the configured profile URL for a platform.
func (p ProfileURLs) URL(platform Platform) string {
	switch platform {
	case PlatformFacebook:
		return p.FacebookPageURL
	case PlatformTwitter:
		return p.TwitterURL
	case PlatformInstagram:
		return p.InstagramURL
	case PlatformPinterest:
		return p.PinterestURL
	case PlatformYouTube:
		return p.YouTubeURL
	case PlatformLinkedIn:
		return p.LinkedInURL
	case PlatformTumblr:
		return p.TumblrURL
	case PlatformYelp:
		return p.YelpPageURL
	case PlatformSoundCloud:
		return p.SoundCloudURL
	case PlatformWikipedia:
		return p.WikipediaURL
	case PlatformMySpace:
		return p.MySpaceURL
	default:
		return ""
	}
}
