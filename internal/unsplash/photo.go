package unsplash

// Photo is the slice of Unsplash photo metadata kept on disk for each
// downloaded image. The JSON field names are part of the metadata file
// format.
type Photo struct {
	ID           string       `json:"id"`
	Color        string       `json:"color"`
	Description  string       `json:"description"`
	URLs         URLs         `json:"urls"`
	Photographer Photographer `json:"photographer"`
}

// URLs are the pre-rendered sizes Unsplash offers for a photo.
type URLs struct {
	Raw     string `json:"raw"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// Photographer credits the photo's author, as required by the Unsplash
// API guidelines.
type Photographer struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Profile  string `json:"profile"`
}

//--------------------------------------------------------------------------------
// private

// searchResponse and apiPhoto mirror the wire format of /search/photos.
type searchResponse struct {
	Results []apiPhoto `json:"results"`
}

type apiPhoto struct {
	ID             string `json:"id"`
	Color          string `json:"color"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	URLs           URLs   `json:"urls"`
	User           struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Links    struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
}

func (p apiPhoto) photo() Photo {
	description := p.Description
	if description == "" {
		description = p.AltDescription
	}

	return Photo{
		ID:          p.ID,
		Color:       p.Color,
		Description: description,
		URLs:        p.URLs,
		Photographer: Photographer{
			Name:     p.User.Name,
			Username: p.User.Username,
			Profile:  p.User.Links.HTML,
		},
	}
}
