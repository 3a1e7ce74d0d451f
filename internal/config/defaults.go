package config

import "time"

const (
	defaultLinksPerIndex   = 1000
	defaultCleanupInterval = 24 * time.Hour
	defaultSchedulerGroup  = "sitegraph"
)

// Defaults returns a configuration populated with default values. Loading decodes the
// file on top of these, so any key absent from the file keeps its default.
func Defaults() *Config {
	return &Config{
		Version: "1",
		Site: SiteConfig{
			Language:    "en-US",
			Represents:  RepresentsOrganization,
			ShowAvatars: true,
		},
		Storage: StorageConfig{DSN: "sitegraph.db"},
		Sitemap: SitemapConfig{
			Indexes:            true,
			LinksPerIndex:      defaultLinksPerIndex,
			AttachmentRedirect: AttachmentRedirectAttachment,
		},
		ContentTypes: []ContentTypeConfig{
			{Name: "post", ArticleType: ArticleTypeBlogPosting},
			{Name: "page", ArticleType: ArticleTypeNone},
			{Name: "attachment", ArticleType: ArticleTypeNone},
		},
		Taxonomies: []string{"category", "post_tag"},
		Commerce: CommerceConfig{
			NoindexStorePages:     true,
			ExcludeHiddenProducts: true,
		},
		Scheduler: SchedulerConfig{
			Enabled:  true,
			Interval: defaultCleanupInterval.String(),
			Group:    defaultSchedulerGroup,
		},
		HTTP: HTTPConfig{Addr: ":8080"},
		Monitoring: MonitoringConfig{
			Metrics: MonitoringMetrics{Enabled: true, Path: "/metrics"},
			Logging: MonitoringLogging{Level: LogLevelInfo, Format: LogFormatText},
		},
	}
}
