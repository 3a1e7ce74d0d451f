package config

import "git.home.luguber.info/inful/sitegraph/internal/foundation/normalization"

// Represents selects the kind of node describing the site owner.
type Represents string

const (
	RepresentsOrganization Represents = "organization"
	RepresentsPerson       Represents = "person"
)

var representsNormalizer = normalization.NewNormalizer("site owner kind", map[string]Represents{
	"organization": RepresentsOrganization,
	"person":       RepresentsPerson,
}, RepresentsOrganization)

func NormalizeRepresents(raw string) Represents { return representsNormalizer.Normalize(raw) }

// AttachmentRedirect mirrors how attachment URLs are served. Attachment pages only belong
// in the sitemap when they are not redirected.
type AttachmentRedirect string

const (
	AttachmentRedirectDisabled   AttachmentRedirect = "disabled"
	AttachmentRedirectAttachment AttachmentRedirect = "attachment"
	AttachmentRedirectParent     AttachmentRedirect = "parent"
)

var attachmentRedirectNormalizer = normalization.NewNormalizer("attachment redirect", map[string]AttachmentRedirect{
	"disabled":   AttachmentRedirectDisabled,
	"attachment": AttachmentRedirectAttachment,
	"parent":     AttachmentRedirectParent,
}, AttachmentRedirectAttachment)

func NormalizeAttachmentRedirect(raw string) AttachmentRedirect {
	return attachmentRedirectNormalizer.Normalize(raw)
}

// ArticleType is the structured-data variant emitted for singular content of a type.
type ArticleType string

const (
	ArticleTypeNone        ArticleType = "none"
	ArticleTypeArticle     ArticleType = "Article"
	ArticleTypeBlogPosting ArticleType = "BlogPosting"
	ArticleTypeNewsArticle ArticleType = "NewsArticle"
)

var articleTypeNormalizer = normalization.NewNormalizer("article type", map[string]ArticleType{
	"none":        ArticleTypeNone,
	"article":     ArticleTypeArticle,
	"blogposting": ArticleTypeBlogPosting,
	"newsarticle": ArticleTypeNewsArticle,
}, ArticleTypeNone)

func NormalizeArticleType(raw string) ArticleType { return articleTypeNormalizer.Normalize(raw) }

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer("log level", map[string]LogLevel{
	"debug": LogLevelDebug,
	"info":  LogLevelInfo,
	"warn":  LogLevelWarn,
	"error": LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel { return logLevelNormalizer.Normalize(raw) }

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat { return logFormatNormalizer.Normalize(raw) }
