package enum

// Path returns the URL path the page is served on.
func (p Page) Path() string {
	switch p {
	case PageBooth:
		return "/booth"
	case PageGallery:
		return "/gallery"
	default:
		return "/"
	}
}

// Title returns the human-readable page title.
func (p Page) Title() string {
	switch p {
	case PageBooth:
		return "Booth"
	case PageGallery:
		return "Gallery"
	default:
		return "Snaapy"
	}
}
