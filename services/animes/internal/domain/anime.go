package domain

// Anime is the only persisted resource. ID is zero until the first save.
type Anime struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateRequest is the body of POST /animes.
type CreateRequest struct {
	Name string `json:"name" validate:"required"`
}

// ToAnime maps the request to a new, not yet persisted entity.
func (r CreateRequest) ToAnime() Anime {
	return Anime{Name: r.Name}
}

// UpdateRequest is the body of PUT /animes/{id}.
type UpdateRequest struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name" validate:"required"`
}

func (r UpdateRequest) ToAnime() Anime {
	return Anime{ID: r.ID, Name: r.Name}
}
