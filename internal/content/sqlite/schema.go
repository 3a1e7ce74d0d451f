package sqlite

const contentSchema = `
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY,
	post_title TEXT NOT NULL DEFAULT '',
	post_content TEXT NOT NULL DEFAULT '',
	post_excerpt TEXT NOT NULL DEFAULT '',
	post_type TEXT NOT NULL,
	post_status TEXT NOT NULL,
	post_password TEXT NOT NULL DEFAULT '',
	post_parent INTEGER NOT NULL DEFAULT 0,
	post_author INTEGER NOT NULL DEFAULT 0,
	post_date_gmt TEXT NOT NULL DEFAULT '',
	post_modified_gmt TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_posts_type_status ON posts(post_type, post_status);
CREATE INDEX IF NOT EXISTS idx_posts_parent ON posts(post_parent);

CREATE TABLE IF NOT EXISTS seo_posts (
	post_id INTEGER PRIMARY KEY,
	priority REAL,
	frequency TEXT,
	robots_noindex INTEGER,
	robots_default INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS post_meta (
	post_id INTEGER NOT NULL,
	meta_key TEXT NOT NULL,
	meta_value TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (post_id, meta_key)
);

CREATE TABLE IF NOT EXISTS attachment_meta (
	post_id INTEGER PRIMARY KEY,
	url TEXT NOT NULL,
	width INTEGER,
	height INTEGER,
	caption TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_attachment_meta_url ON attachment_meta(url);

CREATE TABLE IF NOT EXISTS terms (
	term_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	slug TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS term_taxonomy (
	term_taxonomy_id INTEGER PRIMARY KEY,
	term_id INTEGER NOT NULL,
	taxonomy TEXT NOT NULL,
	count INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_term_taxonomy_taxonomy ON term_taxonomy(taxonomy);

CREATE TABLE IF NOT EXISTS term_relationships (
	object_id INTEGER NOT NULL,
	term_taxonomy_id INTEGER NOT NULL,
	PRIMARY KEY (object_id, term_taxonomy_id)
);
CREATE INDEX IF NOT EXISTS idx_term_relationships_tt ON term_relationships(term_taxonomy_id);

CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	display_name TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	avatar_url TEXT NOT NULL DEFAULT '',
	avatar_width INTEGER NOT NULL DEFAULT 0,
	avatar_height INTEGER NOT NULL DEFAULT 0,
	facebook_url TEXT NOT NULL DEFAULT '',
	twitter_url TEXT NOT NULL DEFAULT ''
);
`

const schedulerSchema = `
CREATE TABLE IF NOT EXISTS scheduler_groups (
	group_id INTEGER PRIMARY KEY AUTOINCREMENT,
	slug TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS scheduler_actions (
	action_id INTEGER PRIMARY KEY AUTOINCREMENT,
	hook TEXT NOT NULL,
	status TEXT NOT NULL,
	group_id INTEGER NOT NULL DEFAULT 0,
	scheduled_date_gmt TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_scheduler_actions_group_status ON scheduler_actions(group_id, status);
`
