package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
)

// Config represents the sitegraph configuration file.
type Config struct {
	Version      string              `yaml:"version"`
	Site         SiteConfig          `yaml:"site"`
	Storage      StorageConfig       `yaml:"storage"`
	Sitemap      SitemapConfig       `yaml:"sitemap"`
	ContentTypes []ContentTypeConfig `yaml:"content_types" validate:"required,min=1,dive"`
	Taxonomies   []string            `yaml:"taxonomies" validate:"dive,required"`
	Commerce     CommerceConfig      `yaml:"commerce"`
	Social       SocialConfig        `yaml:"social"`
	Scheduler    SchedulerConfig     `yaml:"scheduler"`
	HTTP         HTTPConfig          `yaml:"http"`
	Monitoring   MonitoringConfig    `yaml:"monitoring"`
}

// SiteConfig describes the site the graph and sitemap belong to.
type SiteConfig struct {
	URL         string `yaml:"url" validate:"required,url"`
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description,omitempty"`
	Language    string `yaml:"language,omitempty" validate:"omitempty,bcp47_language_tag"`
	// Represents selects whether the site owner node is an Organization or a Person.
	Represents       Represents `yaml:"represents"`
	OrganizationName string     `yaml:"organization_name,omitempty"`
	LogoURL          string     `yaml:"logo_url,omitempty" validate:"omitempty,url"`
	LogoID           int64      `yaml:"logo_id,omitempty" validate:"gte=0"`
	PersonID         int64      `yaml:"person_id,omitempty" validate:"gte=0"`
	ContactPageID    int64      `yaml:"contact_page_id,omitempty" validate:"gte=0"`
	ShowAvatars      bool       `yaml:"show_avatars"`
}

// StorageConfig locates the content database.
type StorageConfig struct {
	DSN string `yaml:"dsn" validate:"required"`
}

// SitemapConfig controls selection windows and exclusions.
type SitemapConfig struct {
	Indexes            bool               `yaml:"indexes"`
	LinksPerIndex      int                `yaml:"links_per_index" validate:"min=1,max=50000"`
	ExcludedPosts      []int64            `yaml:"excluded_posts,omitempty" validate:"dive,gt=0"`
	ExcludedTerms      []int64            `yaml:"excluded_terms,omitempty" validate:"dive,gt=0"`
	AttachmentRedirect AttachmentRedirect `yaml:"attachment_redirect"`
}

// ContentTypeConfig registers a content type with its indexing default and article variant.
type ContentTypeConfig struct {
	Name        string      `yaml:"name" validate:"required"`
	Noindex     bool        `yaml:"noindex"`
	ArticleType ArticleType `yaml:"article_type,omitempty"`
}

// CommerceConfig describes the optional store integration.
type CommerceConfig struct {
	Enabled               bool    `yaml:"enabled"`
	NoindexStorePages     bool    `yaml:"noindex_store_pages"`
	StorePageIDs          []int64 `yaml:"store_page_ids,omitempty" validate:"dive,gt=0"`
	ExcludeHiddenProducts bool    `yaml:"exclude_hidden_products"`
}

// SchedulerConfig controls the periodic bookkeeping cleanup.
type SchedulerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Interval string `yaml:"interval"`
	Group    string `yaml:"group" validate:"required"`
}

// HTTPConfig controls the API server.
type HTTPConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// MonitoringConfig represents metrics and logging configuration.
type MonitoringConfig struct {
	Metrics MonitoringMetrics `yaml:"metrics"`
	Logging MonitoringLogging `yaml:"logging"`
}

// MonitoringMetrics represents metrics configuration.
type MonitoringMetrics struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required,startswith=/"`
}

// MonitoringLogging represents logging configuration.
type MonitoringLogging struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Load reads, expands, defaults and validates the configuration file at path.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", path).Build()
	}
	cfg, err := Parse(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a configuration document on top of the defaults and validates it.
func Parse(r io.Reader) (*Config, error) {
	cfg := Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Build()
	}
	cfg.normalize()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}

	example := Defaults()
	example.Site.URL = "https://example.com"
	example.Site.Name = "Example Site"
	example.Site.Description = "Just another site"
	example.Site.OrganizationName = "Example Inc."
	example.Site.LogoURL = "https://example.com/logo.png"
	example.Sitemap.ExcludedPosts = []int64{42}
	example.Social.Profiles.TwitterURL = "https://twitter.com/example"

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ContentType returns the registration for a content type name.
func (c *Config) ContentType(name string) (ContentTypeConfig, bool) {
	for _, ct := range c.ContentTypes {
		if ct.Name == name {
			return ct, true
		}
	}
	return ContentTypeConfig{}, false
}

// HasTaxonomy reports whether a taxonomy is registered.
func (c *Config) HasTaxonomy(name string) bool {
	return slices.Contains(c.Taxonomies, name)
}

// CleanupInterval returns the parsed scheduler interval.
func (c *Config) CleanupInterval() time.Duration {
	d, err := time.ParseDuration(c.Scheduler.Interval)
	if err != nil || d <= 0 {
		return defaultCleanupInterval
	}
	return d
}

func (c *Config) normalize() {
	c.Site.Represents = NormalizeRepresents(string(c.Site.Represents))
	c.Sitemap.AttachmentRedirect = NormalizeAttachmentRedirect(string(c.Sitemap.AttachmentRedirect))
	c.Monitoring.Logging.Level = NormalizeLogLevel(string(c.Monitoring.Logging.Level))
	c.Monitoring.Logging.Format = NormalizeLogFormat(string(c.Monitoring.Logging.Format))
	for i := range c.ContentTypes {
		c.ContentTypes[i].ArticleType = NormalizeArticleType(string(c.ContentTypes[i].ArticleType))
	}
}
