package admin

import "strings"

// NavItem is one entry of the admin side navigation.
type NavItem struct {
	Name   string `json:"name"`
	Href   string `json:"href"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

var sections = []NavItem{
	{Name: "Dashboard", Href: "/admin", Icon: "layout-dashboard"},
	{Name: "Products", Href: "/admin/products", Icon: "cake"},
	{Name: "Orders", Href: "/admin/orders", Icon: "shopping-cart"},
	{Name: "Categories", Href: "/admin/categories", Icon: "package"},
	{Name: "Tags", Href: "/admin/tags", Icon: "tag"},
	{Name: "Promotions", Href: "/admin/promotions", Icon: "ticket"},
}

// Navigation returns the side navigation with the entry matching path marked
// active. Only an exact match is active.
func Navigation(path string) []NavItem {
	path = strings.TrimSpace(path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	out := make([]NavItem, len(sections))
	copy(out, sections)
	for i := range out {
		out[i].Active = out[i].Href == path
	}
	return out
}
