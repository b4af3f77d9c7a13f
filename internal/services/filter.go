package services

import "github.com/princeprakhar/partnerhub/internal/models"

// CategorySet is the set of partnership category names selected on the
// listing page.
type CategorySet map[string]struct{}

func NewCategorySet(names ...string) CategorySet {
	set := make(CategorySet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Toggle adds name when absent and removes it when present.
func (s CategorySet) Toggle(name string) {
	if _, ok := s[name]; ok {
		delete(s, name)
		return
	}
	s[name] = struct{}{}
}

func (s CategorySet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// FilterPosts keeps the posts having at least one partnership category in
// selected. An empty selection returns posts as is.
func FilterPosts(posts []models.Post, selected CategorySet) []models.Post {
	if len(selected) == 0 {
		return posts
	}
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		for _, c := range p.PartnershipCategories {
			if selected.Has(c.Name) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
