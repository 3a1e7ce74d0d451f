package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegraph/internal/schema"
	"git.home.luguber.info/inful/sitegraph/internal/sitemap"
)

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, "application/json; charset=utf-8", http.StatusOK, Response{Success: true})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.svc.Health != nil {
		if err := s.svc.Health.Ping(r.Context()); err != nil {
			s.adapter.WriteErrorResponse(w, r, err)
			return
		}
	}
	writeJSON(w, "application/json; charset=utf-8", http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleSitemapPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	types := splitList(q.Get("types"))
	opts, err := parseOptions(q, time.Now())
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	items, err := s.svc.Selector.SelectContent(r.Context(), types, opts)
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	s.success(w, items, len(items))
}

func (s *Server) handleSitemapTerms(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r.URL.Query(), time.Now())
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	terms, err := s.svc.Selector.SelectTerms(r.Context(), chi.URLParam(r, "taxonomy"), opts)
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	s.success(w, terms, len(terms))
}

func (s *Server) handleSchemaHome(w http.ResponseWriter, r *http.Request) {
	s.writeGraph(w, r, schema.HomeContext(s.svc.SiteURL))
}

func (s *Server) handleSchemaPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	post, ok, err := s.svc.Posts.Post(r.Context(), id)
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	if !ok {
		s.adapter.WriteErrorResponse(w, r, errors.NotFoundError("post not found").WithContext("id", id).Build())
		return
	}
	s.writeGraph(w, r, schema.PostContext(s.svc.SiteURL, &post, r.URL.Query().Get("url")))
}

func (s *Server) handleSchemaAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	author, ok, err := s.svc.Authors.Author(r.Context(), id)
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	if !ok {
		s.adapter.WriteErrorResponse(w, r, errors.NotFoundError("author not found").WithContext("id", id).Build())
		return
	}
	s.writeGraph(w, r, schema.AuthorContext(s.svc.SiteURL, &author))
}

func (s *Server) handleSchemaSearch(w http.ResponseWriter, r *http.Request) {
	s.writeGraph(w, r, schema.SearchContext(s.svc.SiteURL, r.URL.Query().Get("q")))
}

func (s *Server) writeGraph(w http.ResponseWriter, r *http.Request, pc *schema.PageContext) {
	nodes, err := s.svc.Graph.BuildGraph(r.Context(), pc)
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, contentTypeJSONLD, http.StatusOK, schema.NewGraph(nodes))
}

// parseOptions reads offset, root and max_age.
func parseOptions(q url.Values, now time.Time) (sitemap.Options, error) {
	var opts sitemap.Options
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, errors.ValidationError("offset must be a non-negative integer").WithContext("offset", v).Build()
		}
		opts.Offset = n
	}
	if v := q.Get("root"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.ValidationError("root must be a boolean").WithContext("root", v).Build()
		}
		opts.Root = b
	}
	if v := q.Get("max_age"); v != "" {
		t, err := sitemap.ParseMaxAge(v, now)
		if err != nil {
			return opts, err
		}
		opts.MaxAge = t
	}
	return opts, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ValidationError("id must be a positive integer").WithContext("id", raw).Build()
	}
	return id, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
