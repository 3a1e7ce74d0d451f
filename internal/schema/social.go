package schema

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitegraph/internal/config"
	"git.home.luguber.info/inful/sitegraph/internal/content"
)

// profileTemplates expand a shared username; "{u}" is replaced by the username.
var profileTemplates = map[config.Platform]string{
	config.PlatformFacebook:   "https://facebook.com/{u}",
	config.PlatformTwitter:    "https://twitter.com/{u}",
	config.PlatformInstagram:  "https://instagram.com/{u}",
	config.PlatformPinterest:  "https://pinterest.com/{u}",
	config.PlatformYouTube:    "https://youtube.com/{u}",
	config.PlatformLinkedIn:   "https://linkedin.com/in/{u}",
	config.PlatformTumblr:     "https://{u}.tumblr.com",
	config.PlatformYelp:       "https://yelp.com/biz/{u}",
	config.PlatformSoundCloud: "https://soundcloud.com/{u}",
	config.PlatformWikipedia:  "https://wikipedia.com/wiki/{u}",
	config.PlatformMySpace:    "https://myspace.com/{u}",
}

// SocialResolver turns the social configuration into sameAs URL lists.
type SocialResolver struct {
	cfg config.SocialConfig
}

// NewSocialResolver returns a resolver over cfg.
func NewSocialResolver(cfg config.SocialConfig) SocialResolver {
	return SocialResolver{cfg: cfg}
}

// SiteURLs returns the site profiles. In shared-username mode the derived URLs of the
// included platforms come first, followed by the explicit URLs of the remaining
// platforms; each group keeps the declared platform order.
func (r SocialResolver) SiteURLs() []string {
	return r.resolve().urls()
}

// AuthorURLs returns the profiles for an author. Facebook and Twitter follow their
// show-author toggles: when on, the author's own profile replaces the site one if set;
// when off, the platform is left out.
func (r SocialResolver) AuthorURLs(a content.Author) []string {
	p := r.resolve()
	if r.cfg.FacebookShowAuthor {
		p.set(config.PlatformFacebook, a.FacebookURL)
	} else {
		p.remove(config.PlatformFacebook)
	}
	if r.cfg.TwitterShowAuthor {
		p.set(config.PlatformTwitter, a.TwitterURL)
	} else {
		p.remove(config.PlatformTwitter)
	}
	return p.urls()
}

type profile struct {
	platform config.Platform
	url      string
}

type profiles []profile

func (r SocialResolver) resolve() profiles {
	same := r.cfg.SameUsername
	shared := same.Enabled && same.Username != ""
	out := make(profiles, 0, len(config.Platforms))
	if shared {
		for _, p := range config.Platforms {
			if slices.Contains(same.Included, p) {
				out = append(out, profile{p, strings.ReplaceAll(profileTemplates[p], "{u}", same.Username)})
			}
		}
	}
	for _, p := range config.Platforms {
		if shared && slices.Contains(same.Included, p) {
			continue
		}
		if u := r.cfg.Profiles.URL(p); u != "" {
			out = append(out, profile{p, u})
		}
	}
	return out
}

// set replaces the URL of platform in place. An absent platform is inserted before the
// first profile declared after it. Empty URLs are ignored.
func (ps *profiles) set(platform config.Platform, url string) {
	if url == "" {
		return
	}
	for i := range *ps {
		if (*ps)[i].platform == platform {
			(*ps)[i].url = url
			return
		}
	}
	rank := slices.Index(config.Platforms, platform)
	at := slices.IndexFunc(*ps, func(p profile) bool {
		return slices.Index(config.Platforms, p.platform) > rank
	})
	if at < 0 {
		at = len(*ps)
	}
	*ps = slices.Insert(*ps, at, profile{platform, url})
}

func (ps *profiles) remove(platform config.Platform) {
	*ps = slices.DeleteFunc(*ps, func(p profile) bool { return p.platform == platform })
}

func (ps profiles) urls() []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.url)
	}
	return out
}
