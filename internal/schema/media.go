package schema

import (
	"context"

	"git.home.luguber.info/inful/sitegraph/internal/content"
)

// Graph ids of shared image nodes.
const (
	graphIDMainImage        = "mainImage"
	graphIDOrganizationLogo = "organizationLogo"
	graphIDPersonImage      = "personImage"
	graphIDAuthorImage      = "authorImage"
)

// ImageRef addresses an image by attachment id or by URL.
type ImageRef struct {
	ID  int64
	URL string
}

func (r ImageRef) empty() bool { return r.ID <= 0 && r.URL == "" }

// image resolves ref to an ImageObject with id "<home>#<graphID>". Metadata that cannot
// be found is omitted: a URL outside the media library keeps just the URL, and an unknown
// attachment id yields no node.
func (g *Generator) image(ctx context.Context, ref ImageRef, graphID string) (*Node, error) {
	if ref.empty() {
		return nil, nil
	}
	id := ref.ID
	if ref.URL != "" {
		found, ok, err := g.media.AttachmentIDByURL(ctx, ref.URL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return NewNode("ImageObject", siteNodeID(g.site.URL, graphID)).Set("url", ref.URL), nil
		}
		id = found
	}
	att, ok, err := g.media.Attachment(ctx, id)
	if err != nil || !ok {
		return nil, err
	}
	url := att.URL
	if url == "" {
		url = ref.URL
	}
	if url == "" {
		return nil, nil
	}
	n := NewNode("ImageObject", siteNodeID(g.site.URL, graphID)).Set("url", url)
	if att.Width > 0 && att.Height > 0 {
		n.Set("width", att.Width).Set("height", att.Height)
	}
	return n.Set("caption", att.Caption), nil
}

// avatar returns the avatar ImageObject of an author, or nil when avatars are disabled
// or the author has none.
func (g *Generator) avatar(pc *PageContext, a content.Author, graphID string) *Node {
	if !g.site.ShowAvatars || a.AvatarURL == "" {
		return nil
	}
	return NewNode("ImageObject", pc.nodeID(graphID)).
		Set("url", a.AvatarURL).
		Set("width", a.AvatarWidth).
		Set("height", a.AvatarHeight).
		Set("caption", a.FullName())
}

// featuredImage resolves the main image of a post.
func (g *Generator) featuredImage(ctx context.Context, post *content.ContentItem) (*Node, error) {
	if post == nil {
		return nil, nil
	}
	if post.Type == content.TypeAttachment {
		return g.image(ctx, ImageRef{ID: post.ID}, graphIDMainImage)
	}
	id, ok, err := g.media.FeaturedImageID(ctx, post.ID)
	if err != nil || !ok {
		return nil, err
	}
	return g.image(ctx, ImageRef{ID: id}, graphIDMainImage)
}
